package task

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nowdo/nowdo/internal/clierr"
)

func openEmpty(t *testing.T) *Store {
	t.Helper()
	s, warnings, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("warnings on empty dir: %v", warnings)
	}
	return s
}

func addTask(t *testing.T, s *Store, title string, at time.Time) *Task {
	t.Helper()
	tk := &Task{Title: title, Priority: PriorityMedium, Duration: 25, Buffer: 5}
	tk.AddStep("step", at)
	if err := s.Add(tk, at); err != nil {
		t.Fatalf("Add: %v", err)
	}
	return tk
}

func TestStoreOpenAbsentFiles(t *testing.T) {
	s := openEmpty(t)
	if len(s.Tasks()) != 0 || len(s.History()) != 0 || len(s.Labels()) != 0 {
		t.Error("absent files should yield empty collections")
	}
}

func TestStoreAddRoundTrip(t *testing.T) {
	s := openEmpty(t)
	due := now.Add(72 * time.Hour)
	tk := &Task{Title: "write report", Priority: PriorityHigh, Duration: 25, Buffer: 5, Due: &due}
	tk.AddStep("outline", now)

	if err := s.Add(tk, now); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if tk.ID == 0 {
		t.Fatal("Add did not assign an ID")
	}
	if tk.Deadline == nil || !tk.Deadline.Equal(due.Add(-DeadlineLead)) {
		t.Errorf("deadline = %v, want due-24h", tk.Deadline)
	}

	reopened, warnings, err := Open(s.Dir())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("warnings: %v", warnings)
	}
	got, err := reopened.Get(tk.ID)
	if err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
	if got.Title != "write report" || got.Priority != PriorityHigh {
		t.Errorf("reopened task = %+v", got)
	}
	if len(got.Steps) != 1 || got.Steps[0].Title != "outline" {
		t.Errorf("reopened steps = %+v", got.Steps)
	}
	if got.Due == nil || !got.Due.Equal(due) {
		t.Errorf("reopened due = %v, want %v", got.Due, due)
	}
}

func TestStoreAddUniqueIDs(t *testing.T) {
	s := openEmpty(t)
	a := addTask(t, s, "a", now)
	b := addTask(t, s, "b", now) // same clock reading must not collide
	if a.ID == b.ID {
		t.Fatalf("colliding task IDs: %d", a.ID)
	}
}

func TestStoreComplete(t *testing.T) {
	s := openEmpty(t)
	first := addTask(t, s, "first", now)
	second := addTask(t, s, "second", now.Add(time.Minute))

	done := now.Add(time.Hour)
	rec := &Record{ActualMinutes: 40, Difficulty: 3, Satisfaction: 5}
	completed, err := s.Complete(second.ID, rec, done)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if completed.Completed == nil || !completed.Completed.Equal(done) {
		t.Errorf("completion time = %v, want %v", completed.Completed, done)
	}
	if completed.Record == nil || completed.Record.ActualMinutes != 40 {
		t.Errorf("record = %+v", completed.Record)
	}

	if _, err := s.Get(second.ID); err == nil {
		t.Error("completed task still in active pool")
	}
	if _, err := s.Get(first.ID); err != nil {
		t.Errorf("unrelated task missing: %v", err)
	}

	// Most recent first.
	if _, err := s.Complete(first.ID, nil, done.Add(time.Minute)); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	history := s.History()
	if len(history) != 2 {
		t.Fatalf("history length = %d, want 2", len(history))
	}
	if history[0].ID != first.ID {
		t.Errorf("history head = #%d, want most recent #%d", history[0].ID, first.ID)
	}

	// Completing again must fail, not duplicate history.
	if _, err := s.Complete(second.ID, nil, done); err == nil {
		t.Error("double completion accepted")
	}
	if len(s.History()) != 2 {
		t.Errorf("history length after double complete = %d, want 2", len(s.History()))
	}
}

func TestStoreSnoozeResume(t *testing.T) {
	s := openEmpty(t)
	tk := addTask(t, s, "dreaded chore", now)

	for i := 1; i <= 3; i++ {
		if _, err := s.Snooze(tk.ID, 30*time.Minute, now); err != nil {
			t.Fatalf("Snooze: %v", err)
		}
	}
	if tk.SnoozeCount != 3 {
		t.Errorf("snooze count = %d, want 3", tk.SnoozeCount)
	}
	if tk.Snoozed == nil || !tk.Snoozed.Equal(now.Add(30*time.Minute)) {
		t.Errorf("snoozed until = %v", tk.Snoozed)
	}

	if _, err := s.Resume(tk.ID); err != nil {
		t.Fatalf("Resume: %v", err)
	}
	if tk.Snoozed != nil {
		t.Error("Resume did not clear the snooze")
	}
	if tk.SnoozeCount != 3 {
		t.Errorf("Resume changed the snooze count: %d", tk.SnoozeCount)
	}

	_, err := s.Resume(tk.ID)
	var cliErr *clierr.Error
	if !errors.As(err, &cliErr) || cliErr.Code != clierr.NoChanges {
		t.Errorf("Resume on active task = %v, want NO_CHANGES", err)
	}
}

func TestStoreSetStepDoneAutoComplete(t *testing.T) {
	t.Run("last step completes the task", func(t *testing.T) {
		s := openEmpty(t)
		tk := addTask(t, s, "two-step", now)
		if _, err := s.AppendStep(tk.ID, "second", now.Add(time.Second)); err != nil {
			t.Fatalf("AppendStep: %v", err)
		}

		done, err := s.SetStepDone(tk.ID, tk.Steps[0].ID, true, true, now)
		if err != nil {
			t.Fatalf("SetStepDone: %v", err)
		}
		if done != nil {
			t.Fatal("task completed with one step still open")
		}

		done, err = s.SetStepDone(tk.ID, tk.Steps[1].ID, true, true, now)
		if err != nil {
			t.Fatalf("SetStepDone: %v", err)
		}
		if done == nil {
			t.Fatal("last step did not complete the task")
		}
		if len(s.History()) != 1 {
			t.Errorf("history length = %d, want exactly 1", len(s.History()))
		}
		if _, err := s.Get(tk.ID); err == nil {
			t.Error("auto-completed task still active")
		}
	})

	t.Run("disabled policy leaves the task active", func(t *testing.T) {
		s := openEmpty(t)
		tk := addTask(t, s, "one-step", now)

		done, err := s.SetStepDone(tk.ID, tk.Steps[0].ID, true, false, now)
		if err != nil {
			t.Fatalf("SetStepDone: %v", err)
		}
		if done != nil {
			t.Error("task completed despite disabled auto-complete")
		}
		if _, err := s.Get(tk.ID); err != nil {
			t.Errorf("task missing from active pool: %v", err)
		}
	})

	t.Run("unchecking never completes", func(t *testing.T) {
		s := openEmpty(t)
		tk := addTask(t, s, "one-step", now)
		if _, err := s.SetStepDone(tk.ID, tk.Steps[0].ID, true, false, now); err != nil {
			t.Fatalf("SetStepDone: %v", err)
		}

		done, err := s.SetStepDone(tk.ID, tk.Steps[0].ID, false, true, now)
		if err != nil {
			t.Fatalf("SetStepDone: %v", err)
		}
		if done != nil {
			t.Error("unchecking completed the task")
		}
	})
}

func TestStoreOpenMalformedFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, TasksFile), []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	s, warnings, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if len(warnings) != 1 || warnings[0].File != TasksFile {
		t.Fatalf("warnings = %v, want one for %s", warnings, TasksFile)
	}
	if len(s.Tasks()) != 0 {
		t.Error("malformed file should yield an empty collection")
	}
}

func TestStoreLabels(t *testing.T) {
	s := openEmpty(t)
	l := Label{Name: "work", Icon: "💼"}
	if err := s.AddLabel(l); err != nil {
		t.Fatalf("AddLabel: %v", err)
	}
	if err := s.AddLabel(l); err == nil {
		t.Error("duplicate label accepted")
	}
	if err := s.AddLabel(Label{Name: "broken"}); err == nil {
		t.Error("label without icon accepted")
	}

	got, ok := s.LabelByName("work")
	if !ok || got.Icon != "💼" {
		t.Errorf("LabelByName = %+v, %v", got, ok)
	}

	if err := s.RemoveLabel("work"); err != nil {
		t.Fatalf("RemoveLabel: %v", err)
	}
	if err := s.RemoveLabel("work"); err == nil {
		t.Error("removing a missing label succeeded")
	}
}

func TestParseID(t *testing.T) {
	if _, err := ParseID("abc"); err == nil {
		t.Error("ParseID accepted non-numeric input")
	}
	if _, err := ParseID("0"); err == nil {
		t.Error("ParseID accepted zero")
	}
	if _, err := ParseID("-3"); err == nil {
		t.Error("ParseID accepted a negative ID")
	}
	got, err := ParseID(" 42 ")
	if err != nil || got != 42 {
		t.Errorf("ParseID(\" 42 \") = %d, %v", got, err)
	}
}
