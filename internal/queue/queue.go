// Package queue implements the selection and ordering policy for the
// active task pool: which task is "the one to do now".
package queue

import (
	"sort"
	"time"

	"github.com/nowdo/nowdo/internal/task"
)

// Order sorts tasks in place into the canonical queue order:
// priority descending, then tasks with a due timestamp before those
// without, then ascending due timestamp, then ascending creation time.
// The sort is stable, so equal-ranked tasks keep insertion order.
func Order(tasks []*task.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return less(tasks[i], tasks[j])
	})
}

func less(a, b *task.Task) bool {
	if aw, bw := a.Priority.Weight(), b.Priority.Weight(); aw != bw {
		return aw > bw
	}
	switch {
	case a.Due != nil && b.Due == nil:
		return true
	case a.Due == nil && b.Due != nil:
		return false
	case a.Due != nil && b.Due != nil && !a.Due.Equal(*b.Due):
		return a.Due.Before(*b.Due)
	}
	return a.Created.Before(b.Created)
}

// Active returns the tasks eligible for selection right now: not completed
// and not currently snoozed. A snoozed-until timestamp at or before now has
// elapsed, so the task re-enters the pool with no special treatment.
func Active(tasks []*task.Task, now time.Time) []*task.Task {
	var result []*task.Task
	for _, t := range tasks {
		if t.IsCompleted() || t.IsSnoozed(now) {
			continue
		}
		result = append(result, t)
	}
	return result
}

// Next returns the task to do now: the head of the ordered active pool,
// or nil when the pool is empty. An empty pool is a normal state, not an
// error.
func Next(tasks []*task.Task, now time.Time) *task.Task {
	pool := Active(tasks, now)
	if len(pool) == 0 {
		return nil
	}
	Order(pool)
	return pool[0]
}

// Snoozed returns the currently-deferred tasks ordered by snooze count
// descending, most-avoided first. This is deliberately a different order
// from the selection policy: the point of the view is confronting the user
// with what they keep putting off.
func Snoozed(tasks []*task.Task, now time.Time) []*task.Task {
	var result []*task.Task
	for _, t := range tasks {
		if !t.IsCompleted() && t.IsSnoozed(now) {
			result = append(result, t)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].SnoozeCount > result[j].SnoozeCount
	})
	return result
}

// Recommend returns up to n tasks from the head of the ordered active pool.
// The first entry is the current task; the rest are what comes after it.
func Recommend(tasks []*task.Task, now time.Time, n int) []*task.Task {
	pool := Active(tasks, now)
	Order(pool)
	if len(pool) > n {
		pool = pool[:n]
	}
	return pool
}
