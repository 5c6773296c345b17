package queue

import (
	"strings"

	"github.com/nowdo/nowdo/internal/task"
)

// FilterOptions defines which tasks to include.
type FilterOptions struct {
	Priorities []task.Priority
	Label      string
	Search     string // case-insensitive substring match across title, description, and steps
	Pomodoro   *bool  // nil=no filter, true=only pomodoro tasks, false=only plain tasks
}

// Filter returns tasks matching all specified criteria (AND logic).
func Filter(tasks []*task.Task, opts FilterOptions) []*task.Task {
	var result []*task.Task
	for _, t := range tasks {
		if matchesFilter(t, opts) {
			result = append(result, t)
		}
	}
	return result
}

func matchesFilter(t *task.Task, opts FilterOptions) bool {
	if len(opts.Priorities) > 0 && !containsPriority(opts.Priorities, t.Priority) {
		return false
	}
	if opts.Label != "" && (t.Label == nil || t.Label.Name != opts.Label) {
		return false
	}
	if opts.Pomodoro != nil && t.Pomodoro != *opts.Pomodoro {
		return false
	}
	if opts.Search != "" && !matchesSearch(t, opts.Search) {
		return false
	}
	return true
}

// matchesSearch performs case-insensitive substring matching across title,
// description, and step titles.
func matchesSearch(t *task.Task, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(t.Title), q) {
		return true
	}
	if strings.Contains(strings.ToLower(t.Description), q) {
		return true
	}
	for _, s := range t.Steps {
		if strings.Contains(strings.ToLower(s.Title), q) {
			return true
		}
	}
	return false
}

func containsPriority(list []task.Priority, p task.Priority) bool {
	for _, x := range list {
		if x == p {
			return true
		}
	}
	return false
}
