package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nowdo/nowdo/internal/config"
	"github.com/nowdo/nowdo/internal/date"
	"github.com/nowdo/nowdo/internal/task"
	"github.com/nowdo/nowdo/internal/timer"
)

// --- Styles ---

var (
	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("246")).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().Bold(true)

	priorityStyles = map[task.Priority]lipgloss.Style{
		task.PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		task.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
		task.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
	}

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	workStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	breakStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("78")).Bold(true)
	doneStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))

	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))
	snoozeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))

	motivationStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("213")).Italic(true)

	statusBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

const progressBarWidth = 30

// View implements tea.Model.
func (a *App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	var body string
	switch a.screen {
	case screenSnoozed:
		body = a.viewSnoozed()
	case screenHistory:
		body = a.viewHistory()
	case screenSettings:
		body = a.viewSettings()
	default:
		body = a.viewHome()
	}

	parts := []string{a.renderTabs(), "", body, ""}
	if a.err != nil {
		parts = append(parts, errorStyle.Render(truncate("Error: "+a.err.Error(), a.width)))
	}
	parts = append(parts, a.renderStatusBar())

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (a *App) renderTabs() string {
	names := []string{"1 Now", "2 Snoozed", "3 History", "4 Settings"}
	tabs := make([]string, len(names))
	for i, name := range names {
		if screen(i) == a.screen {
			tabs[i] = activeTabStyle.Render(name)
		} else {
			tabs[i] = tabStyle.Render(name)
		}
	}
	if a.cfg.Music {
		tabs = append(tabs, dimStyle.Render(" ♪"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// --- Home ---

func (a *App) viewHome() string {
	t := a.current
	if t == nil {
		return cardStyle.Render(dimStyle.Render("All clear — nothing to do right now."))
	}

	var lines []string

	prio := string(t.Priority)
	if st, ok := priorityStyles[t.Priority]; ok {
		prio = st.Render(prio)
	}
	header := titleStyle.Render(truncate(t.Title, a.width-20)) + "  " + prio //nolint:mnd // room for priority suffix
	lines = append(lines, header)

	meta := a.renderMeta(t)
	if meta != "" {
		lines = append(lines, meta)
	}

	if t.Description != "" {
		lines = append(lines, "", dimStyle.Render(truncate(t.Description, a.width-6))) //nolint:mnd // card chrome
	}

	if len(t.Steps) > 0 {
		lines = append(lines, "", a.renderSteps(t))
	}

	if a.clock != nil {
		lines = append(lines, "", a.renderTimer())
	}

	if a.countdown > 0 {
		lines = append(lines, "", snoozeStyle.Render(fmt.Sprintf("Starting in %d...", a.countdown)))
	}

	if a.cfg.Motivation && a.motivation != "" {
		lines = append(lines, "", motivationStyle.Render(a.motivation))
	}

	card := cardStyle.Width(min(a.width-2, 76)).Render(strings.Join(lines, "\n")) //nolint:mnd // border width, card cap

	if len(a.upNext) == 0 {
		return card
	}

	next := []string{dimStyle.Render("Up next:")}
	for _, u := range a.upNext {
		next = append(next, "  "+dimStyle.Render(truncate(u.Title, a.width-4))) //nolint:mnd // indent
	}
	return lipgloss.JoinVertical(lipgloss.Left, card, "", strings.Join(next, "\n"))
}

func (a *App) renderMeta(t *task.Task) string {
	var parts []string
	parts = append(parts, fmt.Sprintf("%dm + %dm", t.Duration, t.Buffer))
	if t.Label != nil {
		parts = append(parts, labelStyle.Render(t.Label.Icon+" "+t.Label.Name))
	}
	if t.Due != nil {
		parts = append(parts, "due "+date.FormatDue(*t.Due))
	}
	if t.SnoozeCount > 0 {
		parts = append(parts, snoozeStyle.Render(fmt.Sprintf("snoozed x%d", t.SnoozeCount)))
	}
	return dimStyle.Render(strings.Join(parts, "  ·  "))
}

func (a *App) renderSteps(t *task.Task) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Steps %d/%d  %s\n",
		t.DoneSteps(), len(t.Steps),
		renderBar(t.Progress()*100, progressBarWidth/2)) //nolint:mnd // half-width step bar
	for i, s := range t.Steps {
		cursor := "  "
		if a.screen == screenHome && i == a.stepCursor {
			cursor = "› "
		}
		mark := "[ ]"
		title := s.Title
		if s.Done {
			mark = doneStyle.Render("[x]")
			title = dimStyle.Render(title)
		}
		fmt.Fprintf(&b, "%s%s %s\n", cursor, mark, truncate(title, a.width-10)) //nolint:mnd // cursor and mark width
	}
	return strings.TrimRight(b.String(), "\n")
}

func (a *App) renderTimer() string {
	var phase string
	switch a.clock.State() {
	case timer.StateWorking:
		phase = workStyle.Render("WORK")
	case timer.StateOnBreak:
		phase = breakStyle.Render("BREAK")
	case timer.StateFinished:
		phase = doneStyle.Render("TIME'S UP")
	default:
		if a.clock.Phase() == 0 {
			phase = dimStyle.Render("READY")
		} else {
			phase = dimStyle.Render("PAUSED")
		}
	}

	clock := lipgloss.NewStyle().Bold(true).Render(a.clock.Clock())
	bar := renderBar(a.clock.Progress(), progressBarWidth)
	pct := fmt.Sprintf("%3.0f%%", a.clock.Progress())

	return fmt.Sprintf("%s  %s  cycle %d\n%s %s", phase, clock, max(a.clock.Phase(), 1), bar, dimStyle.Render(pct))
}

// renderBar draws a horizontal progress bar for a 0-100 percentage.
func renderBar(pct float64, width int) string {
	if width < 1 {
		width = 1
	}
	filled := int(pct / 100 * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + dimStyle.Render(strings.Repeat("░", width-filled))
}

// --- Snoozed ---

func (a *App) viewSnoozed() string {
	if len(a.snoozed) == 0 {
		return dimStyle.Render("No snoozed tasks.")
	}

	var b strings.Builder
	for i, t := range a.snoozed {
		cursor := "  "
		if i == a.listCursor {
			cursor = "› "
		}
		until := ""
		if t.Snoozed != nil {
			until = t.Snoozed.Format("15:04")
		}
		line := fmt.Sprintf("%s%s %s %s",
			cursor,
			snoozeStyle.Render(fmt.Sprintf("x%-2d", t.SnoozeCount)),
			truncate(t.Title, a.width-20), //nolint:mnd // room for annotations
			dimStyle.Render("until "+until))
		b.WriteString(line + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// --- History ---

func (a *App) viewHistory() string {
	history := a.store.History()
	if len(history) == 0 {
		return dimStyle.Render("No completed tasks yet.")
	}

	var b strings.Builder
	for i, t := range history {
		cursor := "  "
		if i == a.listCursor {
			cursor = "› "
		}
		when := ""
		if t.Completed != nil {
			when = t.Completed.Format("2006-01-02 15:04")
		}
		spent := ""
		if t.Record != nil && t.Record.ActualMinutes > 0 {
			spent = "  " + strconv.Itoa(t.Record.ActualMinutes) + "m"
		}
		line := fmt.Sprintf("%s%s  %s%s",
			cursor, dimStyle.Render(when), truncate(t.Title, a.width-26), dimStyle.Render(spent)) //nolint:mnd // room for timestamp
		b.WriteString(line + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// --- Settings ---

func (a *App) viewSettings() string {
	var b strings.Builder
	for i, key := range config.Keys() {
		cursor := "  "
		if i == a.setCursor {
			cursor = "› "
		}
		value, err := a.cfg.Get(key)
		if err != nil {
			continue
		}
		switch value {
		case "true":
			value = doneStyle.Render("on")
		case "false":
			value = dimStyle.Render("off")
		}
		fmt.Fprintf(&b, "%s%-22s %s\n", cursor, key, value)
	}
	return strings.TrimRight(b.String(), "\n")
}

// --- Status bar ---

func (a *App) renderStatusBar() string {
	var hints string
	switch a.screen {
	case screenSnoozed:
		hints = "j/k:move r:resume tab:screen q:quit"
	case screenHistory:
		hints = "j/k:move tab:screen q:quit"
	case screenSettings:
		hints = "j/k:move space:toggle h/l:adjust tab:screen q:quit"
	default:
		hints = "space:timer x:step c:done s:snooze j/k:move tab:screen q:quit"
	}
	return statusBarStyle.Render(truncate(" "+hints, a.width))
}

func truncate(s string, maxLen int) string {
	if maxLen < 4 { //nolint:mnd // minimum length for truncation
		maxLen = 4
	}
	if lipgloss.Width(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	target := maxLen - 3 //nolint:mnd // room for "..."
	if target > len(runes) {
		target = len(runes)
	}
	for target > 0 && lipgloss.Width(string(runes[:target])) > maxLen-3 {
		target--
	}
	return string(runes[:target]) + "..."
}
