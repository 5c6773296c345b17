// Package task defines the task model and its persistent store.
package task

import (
	"time"
)

// DeadlineLead is how far ahead of the user-entered due timestamp the
// internal deadline sits. Finishing a day early leaves slack for overruns.
const DeadlineLead = 24 * time.Hour

// Priority is a task's urgency level.
type Priority string

const (
	// PriorityHigh sorts before all other priorities.
	PriorityHigh Priority = "high"

	// PriorityMedium is the default for new tasks.
	PriorityMedium Priority = "medium"

	// PriorityLow sorts last.
	PriorityLow Priority = "low"
)

// Priorities returns all valid priority values, highest first.
func Priorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow}
}

// IsValid returns true if the priority is a known valid value.
func (p Priority) IsValid() bool {
	for _, valid := range Priorities() {
		if p == valid {
			return true
		}
	}
	return false
}

// Weight returns the sort weight of a priority; higher weighs more.
func (p Priority) Weight() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// Step is one checklist entry of a task.
type Step struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Done  bool   `json:"done"`
	Order int    `json:"order"`
}

// Label is a descriptive tag a task can carry. Tasks embed a copy, so
// removing a label from the label set never touches existing tasks.
type Label struct {
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color,omitempty"`
}

// Record captures the user's reflection on a completed task. The store
// treats it as opaque.
type Record struct {
	ActualMinutes int    `json:"actual_minutes,omitempty"`
	Difficulty    int    `json:"difficulty,omitempty"`
	Satisfaction  int    `json:"satisfaction,omitempty"`
	Note          string `json:"note,omitempty"`
}

// Task is a single to-do item with its checklist.
type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Priority    Priority   `json:"priority"`
	Duration    int        `json:"duration"` // estimated minutes
	Buffer      int        `json:"buffer"`   // slack minutes on top of the estimate
	Label       *Label     `json:"label,omitempty"`
	Created     time.Time  `json:"created"`
	Due         *time.Time `json:"due,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"` // Due minus DeadlineLead, fixed at creation
	Snoozed     *time.Time `json:"snoozed_until,omitempty"`
	LastSnoozed *time.Time `json:"last_snoozed,omitempty"`
	SnoozeCount int        `json:"snooze_count"`
	Completed   *time.Time `json:"completed,omitempty"`
	Pomodoro    bool       `json:"pomodoro"`
	Steps       []Step     `json:"steps"`
	Record      *Record    `json:"record,omitempty"`
}

// IsCompleted returns true once the task has a completion timestamp.
func (t *Task) IsCompleted() bool {
	return t.Completed != nil
}

// IsSnoozed returns true while the task's snoozed-until timestamp is in the
// future. A zero or past timestamp means the task is immediately eligible.
func (t *Task) IsSnoozed(now time.Time) bool {
	return t.Snoozed != nil && t.Snoozed.After(now)
}

// EstimatedTotal is the declared duration plus buffer. It bounds how long
// the pomodoro timer will cycle for this task.
func (t *Task) EstimatedTotal() time.Duration {
	return time.Duration(t.Duration+t.Buffer) * time.Minute
}

// DoneSteps returns the number of completed checklist steps.
func (t *Task) DoneSteps() int {
	n := 0
	for _, s := range t.Steps {
		if s.Done {
			n++
		}
	}
	return n
}

// Progress returns checklist completion as a fraction in [0, 1].
// A task without steps reports 0.
func (t *Task) Progress() float64 {
	if len(t.Steps) == 0 {
		return 0
	}
	return float64(t.DoneSteps()) / float64(len(t.Steps))
}

// AllStepsDone returns true when the task has steps and every one is done.
func (t *Task) AllStepsDone() bool {
	if len(t.Steps) == 0 {
		return false
	}
	return t.DoneSteps() == len(t.Steps)
}

// DeadlineFor derives the internal deadline from a user-entered due timestamp.
func DeadlineFor(due time.Time) time.Time {
	return due.Add(-DeadlineLead)
}
