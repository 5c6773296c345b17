package task

import (
	"strings"
	"time"

	"github.com/nowdo/nowdo/internal/clierr"
)

// AddStep appends a checklist step at the next order index.
func (t *Task) AddStep(title string, now time.Time) *Step {
	id := now.UnixMilli()
	for t.findStep(id) != nil {
		id++
	}
	t.Steps = append(t.Steps, Step{
		ID:    id,
		Title: strings.TrimSpace(title),
		Order: len(t.Steps),
	})
	return &t.Steps[len(t.Steps)-1]
}

// SetStepDone marks a step complete or incomplete.
func (t *Task) SetStepDone(stepID int64, done bool) error {
	s := t.findStep(stepID)
	if s == nil {
		return stepNotFound(t.ID, stepID)
	}
	s.Done = done
	return nil
}

// RemoveStep deletes a step by identity. Remaining order indices are left
// untouched; progress is computed from counts, not indices.
func (t *Task) RemoveStep(stepID int64) error {
	for i := range t.Steps {
		if t.Steps[i].ID == stepID {
			t.Steps = append(t.Steps[:i], t.Steps[i+1:]...)
			return nil
		}
	}
	return stepNotFound(t.ID, stepID)
}

// ReorderSteps replaces the step order with the given full ID sequence and
// reassigns order indices to match. The sequence must be a permutation of
// the current steps.
func (t *Task) ReorderSteps(ids []int64) error {
	if len(ids) != len(t.Steps) {
		return clierr.Newf(clierr.InvalidInput,
			"reorder needs all %d step IDs, got %d", len(t.Steps), len(ids))
	}
	reordered := make([]Step, 0, len(ids))
	seen := make(map[int64]bool, len(ids))
	for i, id := range ids {
		if seen[id] {
			return clierr.Newf(clierr.InvalidInput, "duplicate step ID %d in reorder", id)
		}
		seen[id] = true
		s := t.findStep(id)
		if s == nil {
			return stepNotFound(t.ID, id)
		}
		step := *s
		step.Order = i
		reordered = append(reordered, step)
	}
	t.Steps = reordered
	return nil
}

// StepByOrdinal returns the step at the given 1-based display position.
func (t *Task) StepByOrdinal(n int) (*Step, error) {
	if n < 1 || n > len(t.Steps) {
		return nil, clierr.Newf(clierr.StepNotFound,
			"task has no step %d (1-%d)", n, len(t.Steps))
	}
	return &t.Steps[n-1], nil
}

func (t *Task) findStep(stepID int64) *Step {
	for i := range t.Steps {
		if t.Steps[i].ID == stepID {
			return &t.Steps[i]
		}
	}
	return nil
}

func stepNotFound(taskID, stepID int64) *clierr.Error {
	return clierr.Newf(clierr.StepNotFound, "step %d not found on task %d", stepID, taskID).
		WithDetails(map[string]any{"task": taskID, "step": stepID})
}
