// Package tui implements the terminal UI for nowdo: one task at a time,
// with the pomodoro countdown, snoozed and history views, and settings.
package tui

import (
	"os"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"

	"github.com/nowdo/nowdo/internal/config"
	"github.com/nowdo/nowdo/internal/queue"
	"github.com/nowdo/nowdo/internal/session"
	"github.com/nowdo/nowdo/internal/task"
	"github.com/nowdo/nowdo/internal/timer"
)

// screen represents the current tab.
type screen int

const (
	screenHome screen = iota
	screenSnoozed
	screenHistory
	screenSettings

	screenCount
)

const (
	keyEsc = "esc"

	// nextTaskDelay is the auto-advance countdown after completing a task.
	nextTaskDelay = 5

	// upNextCount is how many queued tasks to preview below the current one.
	upNextCount = 4
)

// App is the top-level bubbletea model.
type App struct {
	cfg   *config.Config
	store *task.Store

	current *task.Task
	upNext  []*task.Task
	snoozed []*task.Task

	clock      *timer.Timer
	phaseStart time.Time
	pausedAt   time.Time // set while paused; shifts phaseStart on resume so sessions exclude the gap
	tickGen    int       // bumped whenever the ticker must restart; stale ticks are dropped

	countdown int // seconds until the next task auto-starts; 0 = inactive

	screen     screen
	stepCursor int
	listCursor int
	setCursor  int

	width  int
	height int
	err    error
	now    func() time.Time // clock for display and persistence; defaults to time.Now

	motivation string
}

// New creates the App model from a loaded config and store.
func New(cfg *config.Config, store *task.Store) *App {
	a := &App{cfg: cfg, store: store, now: time.Now}
	a.recompute()
	return a
}

// SetNow overrides the clock function (for testing).
func (a *App) SetNow(fn func() time.Time) {
	a.now = fn
}

// WatchPaths returns the paths that should be watched for file changes.
func (a *App) WatchPaths() []string {
	return []string{a.cfg.Dir()}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	a.setWindowTitle()
	return nil
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(msg)
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil
	case ReloadMsg:
		a.reload()
		return a, nil
	case TickMsg:
		return a.handleTick(msg)
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys.
	if key.Matches(msg, key.NewBinding(key.WithKeys("ctrl+c"))) {
		return a, tea.Quit
	}

	switch msg.String() {
	case "q", keyEsc:
		return a, tea.Quit
	case "tab":
		a.switchScreen((a.screen + 1) % screenCount)
		return a, nil
	case "1":
		a.switchScreen(screenHome)
		return a, nil
	case "2":
		a.switchScreen(screenSnoozed)
		return a, nil
	case "3":
		a.switchScreen(screenHistory)
		return a, nil
	case "4":
		a.switchScreen(screenSettings)
		return a, nil
	}

	switch a.screen {
	case screenHome:
		return a.handleHomeKey(msg)
	case screenSnoozed:
		return a.handleSnoozedKey(msg)
	case screenHistory:
		return a.handleHistoryKey(msg)
	case screenSettings:
		return a.handleSettingsKey(msg)
	}
	return a, nil
}

func (a *App) switchScreen(s screen) {
	a.screen = s
	a.listCursor = 0
}

func (a *App) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case " ", "space":
		return a, a.toggleTimer()
	case "j", "down":
		if a.current != nil && a.stepCursor < len(a.current.Steps)-1 {
			a.stepCursor++
		}
	case "k", "up":
		if a.stepCursor > 0 {
			a.stepCursor--
		}
	case "x":
		return a, a.toggleStep()
	case "c":
		return a, a.completeCurrent()
	case "s":
		return a, a.snoozeCurrent()
	}
	return a, nil
}

func (a *App) handleSnoozedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if a.listCursor < len(a.snoozed)-1 {
			a.listCursor++
		}
	case "k", "up":
		if a.listCursor > 0 {
			a.listCursor--
		}
	case "r":
		a.resumeSelected()
	}
	return a, nil
}

func (a *App) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if a.listCursor < len(a.store.History())-1 {
			a.listCursor++
		}
	case "k", "up":
		if a.listCursor > 0 {
			a.listCursor--
		}
	}
	return a, nil
}

func (a *App) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := config.Keys()
	switch msg.String() {
	case "j", "down":
		if a.setCursor < len(keys)-1 {
			a.setCursor++
		}
	case "k", "up":
		if a.setCursor > 0 {
			a.setCursor--
		}
	case " ", "space", "x", "enter":
		a.adjustSetting(keys[a.setCursor], 0)
	case "l", "right", "+":
		a.adjustSetting(keys[a.setCursor], 1)
	case "h", "left", "-":
		a.adjustSetting(keys[a.setCursor], -1)
	}
	return a, nil
}

// adjustSetting toggles a boolean setting (any delta) or shifts a numeric
// one by delta minutes. Changes are persisted immediately.
func (a *App) adjustSetting(key string, delta int) {
	switch key {
	case "timer_enabled":
		a.cfg.TimerEnabled = !a.cfg.TimerEnabled
	case "auto_start_next":
		a.cfg.AutoStartNext = !a.cfg.AutoStartNext
	case "motivation":
		a.cfg.Motivation = !a.cfg.Motivation
	case "sound":
		a.cfg.Sound = !a.cfg.Sound
	case "music":
		a.cfg.Music = !a.cfg.Music
	case "auto_complete_steps":
		a.cfg.AutoCompleteSteps = !a.cfg.AutoCompleteSteps
	case "work_minutes":
		if a.cfg.WorkMinutes+delta >= 1 {
			a.cfg.WorkMinutes += delta
		}
	case "break_minutes":
		if a.cfg.BreakMinutes+delta >= 1 {
			a.cfg.BreakMinutes += delta
		}
	case "snooze_minutes":
		if a.cfg.SnoozeMinutes+delta >= 1 {
			a.cfg.SnoozeMinutes += delta
		}
	}
	if err := a.cfg.Save(); err != nil {
		a.err = err
	}

	// Timer parameters may have changed; rebuild from scratch.
	if key == "timer_enabled" || key == "work_minutes" || key == "break_minutes" {
		a.resetTimer()
	}
}

// toggleTimer starts or pauses the pomodoro countdown.
func (a *App) toggleTimer() tea.Cmd {
	if a.clock == nil {
		return nil
	}
	if a.clock.Running() {
		a.clock.Pause()
		a.pausedAt = a.now()
		a.tickGen++
		return nil
	}
	first := a.clock.Phase() == 0
	if !a.clock.Start() {
		return nil
	}
	if first {
		a.phaseStart = a.now()
	} else if !a.pausedAt.IsZero() {
		// The session span is counted time only, so the pause gap moves
		// the phase start forward.
		a.phaseStart = a.phaseStart.Add(a.now().Sub(a.pausedAt))
	}
	a.pausedAt = time.Time{}
	a.tickGen++
	return tickCmd(a.tickGen)
}

func (a *App) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if msg.gen != a.tickGen {
		return a, nil // stale ticker from a previous timer or countdown
	}

	if a.countdown > 0 {
		a.countdown--
		if a.countdown > 0 {
			return a, tickCmd(a.tickGen)
		}
		// Countdown elapsed: auto-start the new current task's timer.
		if a.clock != nil && a.clock.Start() {
			a.phaseStart = a.now()
			a.tickGen++
			return a, tickCmd(a.tickGen)
		}
		return a, nil
	}

	if a.clock == nil || !a.clock.Running() {
		return a, nil
	}

	current := a.current
	switch a.clock.Tick() {
	case timer.EventBreakStarted:
		a.bell()
		if current != nil {
			session.Record(a.cfg.Dir(), current.ID, session.KindWork, a.phaseStart, a.now())
		}
		a.phaseStart = a.now()
	case timer.EventWorkStarted:
		a.bell()
		if current != nil {
			session.Record(a.cfg.Dir(), current.ID, session.KindBreak, a.phaseStart, a.now())
		}
		a.phaseStart = a.now()
	case timer.EventFinished:
		a.bell()
		if current != nil {
			session.Record(a.cfg.Dir(), current.ID, session.KindBreak, a.phaseStart, a.now())
		}
		return a, nil
	}

	return a, tickCmd(a.tickGen)
}

// toggleStep flips the selected checklist step. Checking the last remaining
// step completes the task when the auto-complete setting is on.
func (a *App) toggleStep() tea.Cmd {
	t := a.current
	if t == nil || len(t.Steps) == 0 {
		return nil
	}
	if a.stepCursor >= len(t.Steps) {
		a.stepCursor = len(t.Steps) - 1
	}
	step := t.Steps[a.stepCursor]

	completed, err := a.store.SetStepDone(t.ID, step.ID, !step.Done, a.cfg.AutoCompleteSteps, a.now())
	if err != nil {
		a.err = err
		return nil
	}
	if completed != nil {
		return a.afterCompletion()
	}
	return nil
}

// completeCurrent finishes the current task explicitly.
func (a *App) completeCurrent() tea.Cmd {
	if a.current == nil {
		return nil
	}
	if _, err := a.store.Complete(a.current.ID, nil, a.now()); err != nil {
		a.err = err
		return nil
	}
	return a.afterCompletion()
}

// afterCompletion rings the bell, moves to the new queue head, and arms the
// auto-start countdown when configured.
func (a *App) afterCompletion() tea.Cmd {
	a.bell()
	a.recompute()
	if a.cfg.AutoStartNext && a.current != nil && a.clock != nil {
		a.countdown = nextTaskDelay
		a.tickGen++
		return tickCmd(a.tickGen)
	}
	return nil
}

func (a *App) snoozeCurrent() tea.Cmd {
	if a.current == nil {
		return nil
	}
	delay := time.Duration(a.cfg.SnoozeMinutes) * time.Minute
	if _, err := a.store.Snooze(a.current.ID, delay, a.now()); err != nil {
		a.err = err
		return nil
	}
	a.recompute()
	return nil
}

func (a *App) resumeSelected() {
	if a.listCursor >= len(a.snoozed) {
		return
	}
	if _, err := a.store.Resume(a.snoozed[a.listCursor].ID); err != nil {
		a.err = err
		return
	}
	a.recompute()
	if a.listCursor >= len(a.snoozed) && a.listCursor > 0 {
		a.listCursor--
	}
}

// reload re-reads the store from disk (external change via the watcher).
func (a *App) reload() {
	store, _, err := task.Open(a.cfg.Dir())
	if err != nil {
		a.err = err
		return
	}
	a.err = nil
	a.store = store
	a.recompute()
}

// recompute rebuilds the derived views from the store. Any current-task
// change resets the timer and cancels the running ticker.
func (a *App) recompute() {
	now := a.now()
	prevID := int64(0)
	if a.current != nil {
		prevID = a.current.ID
	}

	a.current = queue.Next(a.store.Tasks(), now)
	pool := queue.Recommend(a.store.Tasks(), now, upNextCount+1)
	if len(pool) > 1 {
		a.upNext = pool[1:]
	} else {
		a.upNext = nil
	}
	a.snoozed = queue.Snoozed(a.store.Tasks(), now)

	curID := int64(0)
	if a.current != nil {
		curID = a.current.ID
	}
	if curID != prevID {
		a.stepCursor = 0
		a.countdown = 0
		a.motivation = randomMotivation()
		a.resetTimer()
		a.setWindowTitle()
	}
	if a.current != nil && a.stepCursor >= len(a.current.Steps) && a.stepCursor > 0 {
		a.stepCursor = len(a.current.Steps) - 1
	}
}

// resetTimer rebuilds the countdown for the current task and invalidates
// any running ticker.
func (a *App) resetTimer() {
	a.tickGen++
	a.pausedAt = time.Time{}
	if a.current == nil || !a.current.Pomodoro || !a.cfg.TimerEnabled {
		a.clock = nil
		return
	}
	a.clock = timer.New(a.cfg.WorkMinutes, a.cfg.BreakMinutes, a.current.Duration, a.current.Buffer)
}

// bell rings the terminal bell when sound is enabled. Best-effort; failures
// are swallowed.
func (a *App) bell() {
	if !a.cfg.Sound {
		return
	}
	_, _ = os.Stdout.WriteString("\a")
}

func (a *App) setWindowTitle() {
	title := "nowdo"
	if a.current != nil {
		title = "nowdo · " + a.current.Title
	}
	termenv.SetWindowTitle(title)
}

// --- Messages ---

// ReloadMsg is sent by the file watcher to trigger a store refresh.
type ReloadMsg struct{}

// TickMsg advances the timer or the next-task countdown by one second.
// The generation stamp lets Update discard ticks from cancelled tickers.
type TickMsg struct{ gen int }

func tickCmd(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return TickMsg{gen: gen} })
}
