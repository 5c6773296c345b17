package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/nowdo/nowdo/internal/config"
	"github.com/nowdo/nowdo/internal/date"
	"github.com/nowdo/nowdo/internal/session"
	"github.com/nowdo/nowdo/internal/task"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("244"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	// Priority colors matching the TUI palette.
	priorityStyles = map[string]lipgloss.Style{
		"high":   lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		"medium": lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
		"low":    lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
	}

	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))
	snoozeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
)

// DisableColor strips all styling from table output.
func DisableColor() {
	headerStyle = lipgloss.NewStyle()
	dimStyle = lipgloss.NewStyle()
	priorityStyles = map[string]lipgloss.Style{}
	labelStyle = lipgloss.NewStyle()
	snoozeStyle = lipgloss.NewStyle()
	doneStyle = lipgloss.NewStyle()
}

// TaskTable renders a list of tasks as a formatted table.
func TaskTable(w io.Writer, tasks []*task.Task, now time.Time) {
	if len(tasks) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found.")
		return
	}

	// Calculate column widths.
	const pad = 2
	idW, prioW, titleW, stepsW, dueW, labelW := 15, 8, 7, 7, 18, 7
	for _, t := range tasks {
		idW = max(idW, len(strconv.FormatInt(t.ID, 10))+pad)
		prioW = max(prioW, len(t.Priority)+pad)
		titleW = max(titleW, min(len(t.Title)+pad, 50)) //nolint:mnd // max title column width
		labelW = max(labelW, len(labelDisplay(t))+pad)
	}

	header := fmt.Sprintf("%-*s %-*s %-*s %-*s %-*s %-*s %s",
		idW, "ID", prioW, "PRI", titleW, "TITLE",
		stepsW, "STEPS", dueW, "DUE", labelW, "LABEL", "SNOOZED")
	fmt.Fprintln(w, headerStyle.Render(strings.TrimRight(header, " ")))

	for _, t := range tasks {
		title := t.Title
		const maxTitle = 48
		if len(title) > maxTitle {
			title = title[:maxTitle-3] + "..."
		}

		steps := dimStyle.Render("--")
		if len(t.Steps) > 0 {
			steps = fmt.Sprintf("%d/%d", t.DoneSteps(), len(t.Steps))
		}
		due := dimStyle.Render("--")
		if t.Due != nil {
			due = date.FormatDue(*t.Due)
		}
		label := labelDisplay(t)
		if label == "" {
			label = dimStyle.Render("--")
		} else {
			label = labelStyle.Render(label)
		}
		snoozed := dimStyle.Render("--")
		if t.IsSnoozed(now) {
			snoozed = snoozeStyle.Render(fmt.Sprintf("until %s (x%d)",
				t.Snoozed.Format("15:04"), t.SnoozeCount))
		}

		row := fmt.Sprintf("%-*d %s %s %s %s %s %s",
			idW, t.ID,
			padRight(styledValue(string(t.Priority), priorityStyles), prioW),
			padRight(title, titleW),
			padRight(steps, stepsW),
			padRight(due, dueW),
			padRight(label, labelW),
			snoozed)
		fmt.Fprintln(w, strings.TrimRight(row, " "))
	}
}

// TaskDetail renders a single task with full detail. The description body is
// rendered by the caller (markdown), so it is not printed here.
func TaskDetail(w io.Writer, t *task.Task, now time.Time) {
	titleLine := fmt.Sprintf("Task #%d: %s", t.ID, t.Title)
	fmt.Fprintln(w, lipgloss.NewStyle().Bold(true).Render(titleLine))
	fmt.Fprintln(w, strings.Repeat("─", lipgloss.Width(titleLine)))

	printField(w, "Priority", styledValue(string(t.Priority), priorityStyles))
	printField(w, "Estimate", fmt.Sprintf("%dm + %dm buffer", t.Duration, t.Buffer))
	if t.Pomodoro {
		printField(w, "Timer", "pomodoro")
	}
	if t.Label != nil {
		printField(w, "Label", labelStyle.Render(t.Label.Icon+" "+t.Label.Name))
	} else {
		printField(w, "Label", dimStyle.Render("--"))
	}
	if t.Due != nil {
		printField(w, "Due", date.FormatDue(*t.Due))
	} else {
		printField(w, "Due", dimStyle.Render("--"))
	}
	if t.Deadline != nil {
		printField(w, "Deadline", t.Deadline.Format("2006-01-02 15:04"))
	}
	printField(w, "Created", t.Created.Format("2006-01-02 15:04"))
	if t.IsSnoozed(now) {
		printField(w, "Snoozed", snoozeStyle.Render("until "+t.Snoozed.Format("2006-01-02 15:04")))
	}
	if t.SnoozeCount > 0 {
		printField(w, "Snoozes", strconv.Itoa(t.SnoozeCount))
	}
	if t.Completed != nil {
		printField(w, "Completed", doneStyle.Render(t.Completed.Format("2006-01-02 15:04")))
	}
	if t.Record != nil {
		if t.Record.ActualMinutes > 0 {
			printField(w, "Time spent", strconv.Itoa(t.Record.ActualMinutes)+"m")
		}
		if t.Record.Difficulty > 0 {
			printField(w, "Difficulty", ratingDisplay(t.Record.Difficulty))
		}
		if t.Record.Satisfaction > 0 {
			printField(w, "Satisfaction", ratingDisplay(t.Record.Satisfaction))
		}
		if t.Record.Note != "" {
			printField(w, "Note", t.Record.Note)
		}
	}

	if len(t.Steps) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "  Steps (%d/%d):\n", t.DoneSteps(), len(t.Steps))
		for i, s := range t.Steps {
			mark := "[ ]"
			title := s.Title
			if s.Done {
				mark = doneStyle.Render("[x]")
				title = dimStyle.Render(title)
			}
			fmt.Fprintf(w, "  %2d. %s %s\n", i+1, mark, title)
		}
	}
}

// SnoozedTable renders the snoozed view, ordered most-avoided first.
func SnoozedTable(w io.Writer, tasks []*task.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(os.Stderr, "No snoozed tasks.")
		return
	}

	const idW, countW, untilW = 15, 9, 18
	header := fmt.Sprintf("%-*s %-*s %-*s %s", idW, "ID", countW, "SNOOZES", untilW, "UNTIL", "TITLE")
	fmt.Fprintln(w, headerStyle.Render(strings.TrimRight(header, " ")))

	for _, t := range tasks {
		until := ""
		if t.Snoozed != nil {
			until = t.Snoozed.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%-*d %s %-*s %s\n",
			idW, t.ID,
			padRight(snoozeStyle.Render(strconv.Itoa(t.SnoozeCount)), countW),
			untilW, until, t.Title)
	}
}

// HistoryTable renders completed tasks, most recent first.
func HistoryTable(w io.Writer, tasks []*task.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(os.Stderr, "No completed tasks.")
		return
	}

	const idW, doneW, spentW = 15, 18, 7
	header := fmt.Sprintf("%-*s %-*s %-*s %s", idW, "ID", doneW, "COMPLETED", spentW, "SPENT", "TITLE")
	fmt.Fprintln(w, headerStyle.Render(strings.TrimRight(header, " ")))

	for _, t := range tasks {
		done := dimStyle.Render("--")
		if t.Completed != nil {
			done = t.Completed.Format("2006-01-02 15:04")
		}
		spent := dimStyle.Render("--")
		if t.Record != nil && t.Record.ActualMinutes > 0 {
			spent = strconv.Itoa(t.Record.ActualMinutes) + "m"
		}
		fmt.Fprintf(w, "%-*d %-*s %s %s\n",
			idW, t.ID, doneW, done, padRight(spent, spentW), t.Title)
	}
}

// SessionTable renders logged pomodoro sessions, oldest first.
func SessionTable(w io.Writer, sessions []session.Session) {
	if len(sessions) == 0 {
		fmt.Fprintln(os.Stderr, "No sessions logged.")
		return
	}

	const taskW, kindW, startW, minW = 15, 7, 18, 5
	header := fmt.Sprintf("%-*s %-*s %-*s %s", taskW, "TASK", kindW, "KIND", startW, "START", "MIN")
	fmt.Fprintln(w, headerStyle.Render(strings.TrimRight(header, " ")))

	for _, s := range sessions {
		kind := string(s.Kind)
		if s.Kind == session.KindBreak {
			kind = dimStyle.Render(kind)
		}
		fmt.Fprintf(w, "%-*d %s %-*s %*d\n",
			taskW, s.TaskID,
			padRight(kind, kindW),
			startW, s.Start.Format("2006-01-02 15:04"),
			minW, s.Minutes)
	}
}

// LabelTable renders the label set.
func LabelTable(w io.Writer, labels []task.Label) {
	if len(labels) == 0 {
		fmt.Fprintln(os.Stderr, "No labels defined.")
		return
	}

	const iconW = 5
	header := fmt.Sprintf("%-*s %s", iconW, "ICON", "NAME")
	fmt.Fprintln(w, headerStyle.Render(header))
	for _, l := range labels {
		fmt.Fprintf(w, "%-*s %s\n", iconW, l.Icon, labelStyle.Render(l.Name))
	}
}

// SettingsTable renders the settings record as key/value rows.
func SettingsTable(w io.Writer, cfg *config.Config) {
	for _, key := range config.Keys() {
		value, err := cfg.Get(key)
		if err != nil {
			continue
		}
		fmt.Fprintf(w, "  %-22s %s\n", key, value)
	}
}

// Messagef prints a simple formatted message line.
func Messagef(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, format+"\n", args...)
}

func printField(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %-14s %s\n", label+":", value)
}

// ratingDisplay renders a 1-5 rating as filled and empty stars.
func ratingDisplay(n int) string {
	const maxRating = 5
	if n < 1 || n > maxRating {
		return strconv.Itoa(n)
	}
	return strings.Repeat("★", n) + dimStyle.Render(strings.Repeat("☆", maxRating-n))
}

// padRight pads s with spaces to the given visible width, accounting for ANSI
// escape codes that are invisible but consume bytes.
func padRight(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

func labelDisplay(t *task.Task) string {
	if t.Label == nil {
		return ""
	}
	if t.Label.Icon != "" {
		return t.Label.Icon + " " + t.Label.Name
	}
	return t.Label.Name
}

// styledValue renders s using a matching style from the map, or returns s unchanged.
func styledValue(s string, styles map[string]lipgloss.Style) string {
	if st, ok := styles[s]; ok {
		return st.Render(s)
	}
	return s
}
