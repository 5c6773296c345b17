package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/nowdo/nowdo/internal/date"
	"github.com/nowdo/nowdo/internal/task"
)

// TaskCompact renders a list of tasks in one-line-per-record compact format.
func TaskCompact(w io.Writer, tasks []*task.Task, now time.Time) {
	if len(tasks) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found.")
		return
	}

	for _, t := range tasks {
		fmt.Fprintln(w, formatTaskLine(t, now))
	}
}

// TaskDetailCompact renders a single task with detail in compact format.
func TaskDetailCompact(w io.Writer, t *task.Task, now time.Time) {
	line := formatTaskLine(t, now)
	line += " est:" + strconv.Itoa(t.Duration) + "m+" + strconv.Itoa(t.Buffer) + "m"
	fmt.Fprintln(w, line)

	ts := "  created:" + t.Created.Format("2006-01-02")
	if t.Completed != nil {
		ts += " completed:" + t.Completed.Format("2006-01-02")
	}
	if t.SnoozeCount > 0 {
		ts += " snoozes:" + strconv.Itoa(t.SnoozeCount)
	}
	fmt.Fprintln(w, ts)

	for _, s := range t.Steps {
		mark := "[ ]"
		if s.Done {
			mark = "[x]"
		}
		fmt.Fprintln(w, "  "+mark+" "+s.Title)
	}

	if t.Description != "" {
		for _, bodyLine := range strings.Split(t.Description, "\n") {
			fmt.Fprintln(w, "  "+bodyLine)
		}
	}
}

// formatTaskLine builds the one-line representation of a task.
func formatTaskLine(t *task.Task, now time.Time) string {
	line := "#" + strconv.FormatInt(t.ID, 10) + " [" + string(t.Priority) + "] " + t.Title

	if len(t.Steps) > 0 {
		line += " " + strconv.Itoa(t.DoneSteps()) + "/" + strconv.Itoa(len(t.Steps))
	}
	if t.Label != nil {
		line += " (" + t.Label.Name + ")"
	}
	if t.Due != nil {
		line += " due:" + date.FormatDue(*t.Due)
	}
	if t.IsSnoozed(now) {
		line += " snoozed:" + t.Snoozed.Format("15:04")
	}

	return line
}
