package queue

import (
	"testing"
	"time"

	"github.com/nowdo/nowdo/internal/task"
)

var base = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func mkTask(id int64, p task.Priority, due *time.Time, created time.Time) *task.Task {
	return &task.Task{ID: id, Title: "task", Priority: p, Due: due, Created: created}
}

func timePtr(t time.Time) *time.Time { return &t }

func ids(tasks []*task.Task) []int64 {
	out := make([]int64, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func sameIDs(a []int64, b ...int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestOrder(t *testing.T) {
	t.Run("priority outranks everything", func(t *testing.T) {
		tasks := []*task.Task{
			mkTask(1, task.PriorityLow, timePtr(base), base),
			mkTask(2, task.PriorityHigh, nil, base.Add(time.Hour)),
			mkTask(3, task.PriorityMedium, timePtr(base), base),
		}
		Order(tasks)
		if got := ids(tasks); !sameIDs(got, 2, 3, 1) {
			t.Errorf("order = %v, want [2 3 1]", got)
		}
	})

	t.Run("due before no-due within a priority", func(t *testing.T) {
		tasks := []*task.Task{
			mkTask(1, task.PriorityMedium, nil, base),
			mkTask(2, task.PriorityMedium, timePtr(base.Add(48*time.Hour)), base),
			mkTask(3, task.PriorityMedium, timePtr(base.Add(2*time.Hour)), base),
		}
		Order(tasks)
		if got := ids(tasks); !sameIDs(got, 3, 2, 1) {
			t.Errorf("order = %v, want [3 2 1]", got)
		}
	})

	t.Run("created breaks remaining ties", func(t *testing.T) {
		tasks := []*task.Task{
			mkTask(1, task.PriorityMedium, nil, base.Add(time.Hour)),
			mkTask(2, task.PriorityMedium, nil, base),
		}
		Order(tasks)
		if got := ids(tasks); !sameIDs(got, 2, 1) {
			t.Errorf("order = %v, want [2 1]", got)
		}
	})

	t.Run("stable for fully equal keys", func(t *testing.T) {
		tasks := []*task.Task{
			mkTask(1, task.PriorityMedium, timePtr(base), base),
			mkTask(2, task.PriorityMedium, timePtr(base), base),
			mkTask(3, task.PriorityMedium, timePtr(base), base),
		}
		Order(tasks)
		if got := ids(tasks); !sameIDs(got, 1, 2, 3) {
			t.Errorf("order = %v, want insertion order [1 2 3]", got)
		}
	})
}

func TestActive(t *testing.T) {
	now := base
	done := mkTask(1, task.PriorityHigh, nil, base)
	done.Completed = timePtr(base)
	snoozed := mkTask(2, task.PriorityHigh, nil, base)
	snoozed.Snoozed = timePtr(now.Add(30 * time.Minute))
	elapsed := mkTask(3, task.PriorityHigh, nil, base)
	elapsed.Snoozed = timePtr(now.Add(-time.Minute))
	plain := mkTask(4, task.PriorityHigh, nil, base)

	got := ids(Active([]*task.Task{done, snoozed, elapsed, plain}, now))
	if !sameIDs(got, 3, 4) {
		t.Errorf("Active = %v, want [3 4]", got)
	}
}

func TestNext(t *testing.T) {
	t.Run("empty pool yields nil", func(t *testing.T) {
		if got := Next(nil, base); got != nil {
			t.Errorf("Next(nil) = %v, want nil", got)
		}
	})

	t.Run("snoozed task re-enters after the delay", func(t *testing.T) {
		urgent := mkTask(1, task.PriorityHigh, nil, base)
		urgent.Snoozed = timePtr(base.Add(30 * time.Minute))
		other := mkTask(2, task.PriorityLow, nil, base)
		tasks := []*task.Task{urgent, other}

		if got := Next(tasks, base); got.ID != 2 {
			t.Fatalf("Next before delay = #%d, want #2", got.ID)
		}
		if got := Next(tasks, base.Add(31*time.Minute)); got.ID != 1 {
			t.Fatalf("Next after delay = #%d, want #1", got.ID)
		}
	})
}

func TestSnoozed(t *testing.T) {
	now := base
	mk := func(id int64, count int) *task.Task {
		tk := mkTask(id, task.PriorityMedium, nil, base)
		tk.Snoozed = timePtr(now.Add(time.Hour))
		tk.SnoozeCount = count
		return tk
	}
	active := mkTask(4, task.PriorityMedium, nil, base)

	got := ids(Snoozed([]*task.Task{mk(1, 2), mk(2, 5), mk(3, 2), active}, now))
	if !sameIDs(got, 2, 1, 3) {
		t.Errorf("Snoozed = %v, want [2 1 3] (count desc, stable)", got)
	}
}

func TestRecommend(t *testing.T) {
	tasks := []*task.Task{
		mkTask(1, task.PriorityLow, nil, base),
		mkTask(2, task.PriorityHigh, nil, base),
		mkTask(3, task.PriorityMedium, nil, base),
	}
	got := ids(Recommend(tasks, base, 2))
	if !sameIDs(got, 2, 3) {
		t.Errorf("Recommend = %v, want [2 3]", got)
	}
}

func TestFilter(t *testing.T) {
	a := mkTask(1, task.PriorityHigh, nil, base)
	a.Label = &task.Label{Name: "work", Icon: "💼"}
	a.Steps = []task.Step{{ID: 1, Title: "Write the report"}}
	b := mkTask(2, task.PriorityLow, nil, base)
	b.Description = "water the plants"
	b.Pomodoro = true
	tasks := []*task.Task{a, b}

	t.Run("priority", func(t *testing.T) {
		got := ids(Filter(tasks, FilterOptions{Priorities: []task.Priority{task.PriorityHigh}}))
		if !sameIDs(got, 1) {
			t.Errorf("filtered = %v, want [1]", got)
		}
	})

	t.Run("label", func(t *testing.T) {
		got := ids(Filter(tasks, FilterOptions{Label: "work"}))
		if !sameIDs(got, 1) {
			t.Errorf("filtered = %v, want [1]", got)
		}
	})

	t.Run("search matches step titles", func(t *testing.T) {
		got := ids(Filter(tasks, FilterOptions{Search: "REPORT"}))
		if !sameIDs(got, 1) {
			t.Errorf("filtered = %v, want [1]", got)
		}
	})

	t.Run("search matches description", func(t *testing.T) {
		got := ids(Filter(tasks, FilterOptions{Search: "plants"}))
		if !sameIDs(got, 2) {
			t.Errorf("filtered = %v, want [2]", got)
		}
	})

	t.Run("pomodoro", func(t *testing.T) {
		v := true
		got := ids(Filter(tasks, FilterOptions{Pomodoro: &v}))
		if !sameIDs(got, 2) {
			t.Errorf("filtered = %v, want [2]", got)
		}
	})

	t.Run("criteria AND together", func(t *testing.T) {
		got := Filter(tasks, FilterOptions{Label: "work", Search: "plants"})
		if len(got) != 0 {
			t.Errorf("filtered = %v, want empty", ids(got))
		}
	})
}
