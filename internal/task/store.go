package task

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/nowdo/nowdo/internal/clierr"
)

// Collection file names within the data directory.
const (
	TasksFile   = "tasks.json"
	HistoryFile = "history.json"
	LabelsFile  = "labels.json"
)

// Store owns the persisted task collections. Every mutating method rewrites
// the affected file wholesale before returning; there is exactly one writer
// (the invoking command), so no finer-grained persistence is needed.
type Store struct {
	dir     string
	tasks   []*Task // active pool, including currently-snoozed tasks
	history []*Task // completed tasks, most recent first
	labels  []Label
}

// Warning describes a collection file that could not be parsed during Open.
type Warning struct {
	File string
	Err  error
}

// Open loads the store from the given data directory. Absent files yield
// empty collections; malformed files yield empty collections plus a warning
// rather than an error, so a corrupt file never bricks the tool.
func Open(dir string) (*Store, []Warning, error) {
	s := &Store{dir: dir}
	var warnings []Warning

	load := func(file string, v any) {
		if _, err := readCollection(filepath.Join(dir, file), v); err != nil {
			warnings = append(warnings, Warning{File: file, Err: err})
		}
	}
	load(TasksFile, &s.tasks)
	load(HistoryFile, &s.history)
	load(LabelsFile, &s.labels)

	return s, warnings, nil
}

// Dir returns the data directory the store persists into.
func (s *Store) Dir() string { return s.dir }

// Tasks returns the active pool, including currently-snoozed tasks.
func (s *Store) Tasks() []*Task { return s.tasks }

// History returns completed tasks, most recent first.
func (s *Store) History() []*Task { return s.history }

// Labels returns the label set.
func (s *Store) Labels() []Label { return s.labels }

// Get finds an active task by ID.
func (s *Store) Get(id int64) (*Task, error) {
	for _, t := range s.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, clierr.Newf(clierr.TaskNotFound, "task not found: %d", id).
		WithDetails(map[string]any{"id": id})
}

// Add validates nothing; callers validate first. It assigns a
// creation-timestamp ID (bumped past any collision), appends the task, and
// persists the active pool.
func (s *Store) Add(t *Task, now time.Time) error {
	id := now.UnixMilli()
	for s.hasID(id) {
		id++
	}
	t.ID = id
	t.Created = now
	if t.Due != nil && t.Deadline == nil {
		d := DeadlineFor(*t.Due)
		t.Deadline = &d
	}
	s.tasks = append(s.tasks, t)
	return s.saveTasks()
}

// Remove drops a task from the active pool entirely.
func (s *Store) Remove(id int64) (*Task, error) {
	for i, t := range s.tasks {
		if t.ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return t, s.saveTasks()
		}
	}
	return nil, clierr.Newf(clierr.TaskNotFound, "task not found: %d", id)
}

// Snooze defers a task for the given delay, bumping its snooze counter.
// A zero or negative delay leaves the task immediately eligible but still
// counts as a snooze.
func (s *Store) Snooze(id int64, delay time.Duration, now time.Time) (*Task, error) {
	t, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	until := now.Add(delay)
	t.Snoozed = &until
	t.LastSnoozed = &now
	t.SnoozeCount++
	return t, s.saveTasks()
}

// Resume clears a task's snooze so it is immediately eligible again.
func (s *Store) Resume(id int64) (*Task, error) {
	t, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if t.Snoozed == nil {
		return nil, clierr.Newf(clierr.NoChanges, "task %d is not snoozed", id)
	}
	t.Snoozed = nil
	return t, s.saveTasks()
}

// Complete finalizes a task: stamps the completion time, attaches the
// optional record, removes it from the active pool, and prepends it to
// history. The snooze count rides along into history.
func (s *Store) Complete(id int64, rec *Record, now time.Time) (*Task, error) {
	t, err := s.Remove(id)
	if err != nil {
		return nil, err
	}
	t.Completed = &now
	t.Record = rec
	s.history = append([]*Task{t}, s.history...)
	return t, s.saveHistory()
}

// AppendStep adds a checklist step to an active task and persists.
func (s *Store) AppendStep(id int64, title string, now time.Time) (*Step, error) {
	t, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	step := t.AddStep(title, now)
	return step, s.saveTasks()
}

// SetStepDone marks a step complete or incomplete. When autoComplete is on
// and the step just checked was the last one remaining, the task itself is
// completed and moved to history; the returned task is non-nil in that case.
func (s *Store) SetStepDone(id, stepID int64, done, autoComplete bool, now time.Time) (*Task, error) {
	t, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := t.SetStepDone(stepID, done); err != nil {
		return nil, err
	}
	if done && autoComplete && t.AllStepsDone() {
		return s.Complete(id, nil, now)
	}
	return nil, s.saveTasks()
}

// RemoveStep deletes a step from an active task and persists.
func (s *Store) RemoveStep(id, stepID int64) error {
	t, err := s.Get(id)
	if err != nil {
		return err
	}
	if err := t.RemoveStep(stepID); err != nil {
		return err
	}
	return s.saveTasks()
}

// ReorderSteps replaces a task's step order and persists.
func (s *Store) ReorderSteps(id int64, stepIDs []int64) error {
	t, err := s.Get(id)
	if err != nil {
		return err
	}
	if err := t.ReorderSteps(stepIDs); err != nil {
		return err
	}
	return s.saveTasks()
}

// SaveTasks persists the active pool. Exposed for callers that mutate a
// task in place (the TUI) and need the change flushed.
func (s *Store) SaveTasks() error { return s.saveTasks() }

// LabelByName finds a label in the set by name.
func (s *Store) LabelByName(name string) (Label, bool) {
	for _, l := range s.labels {
		if l.Name == name {
			return l, true
		}
	}
	return Label{}, false
}

// AddLabel adds a label to the set. Names are unique.
func (s *Store) AddLabel(l Label) error {
	if err := ValidateLabel(l.Name, l.Icon); err != nil {
		return err
	}
	if _, ok := s.LabelByName(l.Name); ok {
		return clierr.Newf(clierr.LabelExists, "label %q already exists", l.Name)
	}
	s.labels = append(s.labels, l)
	return s.saveLabels()
}

// RemoveLabel deletes a label from the set. Tasks referencing it keep their
// embedded copy; there is no cascade.
func (s *Store) RemoveLabel(name string) error {
	for i, l := range s.labels {
		if l.Name == name {
			s.labels = append(s.labels[:i], s.labels[i+1:]...)
			return s.saveLabels()
		}
	}
	return clierr.Newf(clierr.LabelNotFound, "label %q not found", name)
}

// ParseID parses a task ID argument.
func ParseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id < 1 {
		return 0, ValidateTaskID(arg)
	}
	return id, nil
}

func (s *Store) hasID(id int64) bool {
	for _, t := range s.tasks {
		if t.ID == id {
			return true
		}
	}
	for _, t := range s.history {
		if t.ID == id {
			return true
		}
	}
	return false
}

func (s *Store) saveTasks() error {
	if s.tasks == nil {
		s.tasks = []*Task{}
	}
	return writeCollection(filepath.Join(s.dir, TasksFile), s.tasks)
}

func (s *Store) saveHistory() error {
	if s.history == nil {
		s.history = []*Task{}
	}
	return writeCollection(filepath.Join(s.dir, HistoryFile), s.history)
}

func (s *Store) saveLabels() error {
	if s.labels == nil {
		s.labels = []Label{}
	}
	return writeCollection(filepath.Join(s.dir, LabelsFile), s.labels)
}
