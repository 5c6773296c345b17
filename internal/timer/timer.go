// Package timer implements the pomodoro countdown for a single task:
// alternating work and break phases, bounded by the task's estimated
// total duration.
package timer

import "fmt"

// State is the timer's lifecycle state.
type State int

const (
	// StateIdle means no countdown is running. Covers both "never started"
	// and "paused"; a paused timer resumes from its exact remaining time.
	StateIdle State = iota

	// StateWorking counts down a work phase.
	StateWorking

	// StateOnBreak counts down a break phase.
	StateOnBreak

	// StateFinished means the estimated total duration is exhausted.
	// A finished timer cannot be restarted; build a new one.
	StateFinished
)

// String returns a display name for the state.
func (s State) String() string {
	switch s {
	case StateWorking:
		return "working"
	case StateOnBreak:
		return "on break"
	case StateFinished:
		return "finished"
	default:
		return "idle"
	}
}

// Event reports what happened during a tick, so callers can log sessions
// and ring the bell on phase boundaries.
type Event int

const (
	// EventNone means the countdown simply advanced.
	EventNone Event = iota

	// EventBreakStarted means a work phase ended and a break began.
	EventBreakStarted

	// EventWorkStarted means a break ended and the next work phase began.
	EventWorkStarted

	// EventFinished means the estimated total duration is exhausted.
	EventFinished
)

// Timer is the pomodoro state machine. It has no clock of its own: the
// owner calls Tick once per elapsed second while the timer runs, which
// keeps the machine deterministic and trivially testable.
type Timer struct {
	state     State
	workSec   int
	breakSec  int
	totalSec  int // estimated total duration: task minutes + buffer minutes
	remaining int // seconds left in the current phase
	phase     int // 1-based work/break cycle count; 0 before the first start
	onBreak   bool
}

// New builds a timer for a task. workMin and breakMin come from settings;
// durationMin and bufferMin from the task.
func New(workMin, breakMin, durationMin, bufferMin int) *Timer {
	return &Timer{
		workSec:  workMin * 60,
		breakSec: breakMin * 60,
		totalSec: (durationMin + bufferMin) * 60,
	}
}

// Start begins or resumes the countdown. Starting is refused (returns
// false) when the configuration is unusable — zero work, break, or total
// duration — or when the timer has already finished.
func (t *Timer) Start() bool {
	if t.workSec <= 0 || t.breakSec <= 0 || t.totalSec <= 0 {
		return false
	}
	if t.state == StateFinished {
		return false
	}
	if t.phase == 0 {
		t.phase = 1
		t.onBreak = false
		t.remaining = t.workSec
	}
	if t.onBreak {
		t.state = StateOnBreak
	} else {
		t.state = StateWorking
	}
	return true
}

// Pause halts the countdown, preserving the remaining time. Resumable
// with Start.
func (t *Timer) Pause() {
	if t.state == StateWorking || t.state == StateOnBreak {
		t.state = StateIdle
	}
}

// Running reports whether the countdown is ticking.
func (t *Timer) Running() bool {
	return t.state == StateWorking || t.state == StateOnBreak
}

// Tick advances the countdown by one second. It does nothing while idle
// or finished.
func (t *Timer) Tick() Event {
	if !t.Running() {
		return EventNone
	}

	t.remaining--
	if t.remaining > 0 {
		return EventNone
	}

	if !t.onBreak {
		// Work phase done; the break begins immediately.
		t.onBreak = true
		t.state = StateOnBreak
		t.remaining = t.breakSec
		return EventBreakStarted
	}

	// Break phase done. Another work phase only fits if the elapsed time so
	// far plus one more full work phase stays within the estimated total.
	elapsed := t.phase * (t.workSec + t.breakSec)
	if elapsed+t.workSec <= t.totalSec {
		t.phase++
		t.onBreak = false
		t.state = StateWorking
		t.remaining = t.workSec
		return EventWorkStarted
	}

	t.state = StateFinished
	t.remaining = 0
	return EventFinished
}

// Clock formats the remaining phase time as MM:SS.
func (t *Timer) Clock() string {
	return fmt.Sprintf("%02d:%02d", t.remaining/60, t.remaining%60)
}

// State returns the current lifecycle state.
func (t *Timer) State() State { return t.state }

// Phase returns the 1-based work/break cycle count, or 0 before the
// first start.
func (t *Timer) Phase() int { return t.phase }

// Remaining returns the seconds left in the current phase.
func (t *Timer) Remaining() int { return t.remaining }

// OnBreak reports whether the current (possibly paused) phase is a break.
func (t *Timer) OnBreak() bool { return t.onBreak }

// elapsedInPhase is how far into the current work+break cycle the
// countdown has progressed, in seconds.
func (t *Timer) elapsedInPhase() int {
	if t.phase == 0 {
		return 0
	}
	if t.onBreak {
		return t.workSec + (t.breakSec - t.remaining)
	}
	return t.workSec - t.remaining
}

// Progress returns overall progress through the estimated total duration
// as a percentage, for the segment marker in the UI.
func (t *Timer) Progress() float64 {
	if t.totalSec == 0 {
		return 0
	}
	if t.state == StateFinished {
		return 100
	}
	elapsed := (t.phase-1)*(t.workSec+t.breakSec) + t.elapsedInPhase()
	pct := float64(elapsed) / float64(t.totalSec) * 100
	if pct > 100 {
		pct = 100
	}
	if pct < 0 {
		pct = 0
	}
	return pct
}
