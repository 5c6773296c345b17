package tui

import (
	"testing"
	"time"

	"github.com/nowdo/nowdo/internal/config"
	"github.com/nowdo/nowdo/internal/session"
	"github.com/nowdo/nowdo/internal/task"
)

func newTestApp(t *testing.T) (*App, *time.Time) {
	t.Helper()
	dir := t.TempDir()
	cfg := config.NewDefault()
	cfg.SetDir(dir)

	store, warnings, err := task.Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("warnings: %v", warnings)
	}

	cur := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	tk := &task.Task{Title: "deep work", Priority: task.PriorityHigh, Duration: 25, Buffer: 5, Pomodoro: true}
	tk.AddStep("think", cur)
	if err := store.Add(tk, cur); err != nil {
		t.Fatalf("Add: %v", err)
	}

	a := New(cfg, store)
	a.SetNow(func() time.Time { return cur })
	return a, &cur
}

// tick advances the wall clock one second and delivers the tick message.
func tick(a *App, cur *time.Time) {
	*cur = cur.Add(time.Second)
	a.handleTick(TickMsg{gen: a.tickGen})
}

func TestSessionExcludesPauseGap(t *testing.T) {
	a, cur := newTestApp(t)
	if a.clock == nil {
		t.Fatal("no timer for a pomodoro task")
	}

	a.toggleTimer()
	if !a.clock.Running() {
		t.Fatal("timer not running after start")
	}

	for range 60 {
		tick(a, cur)
	}

	// Pause, walk away, resume.
	a.toggleTimer()
	if a.clock.Running() {
		t.Fatal("timer still running after pause")
	}
	*cur = cur.Add(10 * time.Minute)
	a.toggleTimer()
	if !a.clock.Running() {
		t.Fatal("timer not running after resume")
	}

	// Finish the remaining work phase; the boundary logs the work session.
	for range 25*60 - 60 {
		tick(a, cur)
	}

	sessions, err := session.List(a.cfg.Dir())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("sessions = %d, want 1", len(sessions))
	}
	got := sessions[0]
	if got.Kind != session.KindWork {
		t.Errorf("kind = %q, want %q", got.Kind, session.KindWork)
	}
	if got.Minutes != 25 {
		t.Errorf("minutes = %d, want 25 (pause gap must not count)", got.Minutes)
	}
	if got.TaskID != a.current.ID {
		t.Errorf("task id = %d, want %d", got.TaskID, a.current.ID)
	}
}

func TestPauseStampClearedOnTaskChange(t *testing.T) {
	a, cur := newTestApp(t)

	a.toggleTimer()
	tick(a, cur)
	a.toggleTimer() // pause
	if a.pausedAt.IsZero() {
		t.Fatal("pause did not stamp the time")
	}

	if _, err := a.store.Complete(a.current.ID, nil, *cur); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	a.recompute()
	if !a.pausedAt.IsZero() {
		t.Error("pause stamp survived a task change")
	}
}
