// Package session records completed pomodoro phases in an append-only log.
package session

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	logFileName   = "sessions.jsonl"
	logFileMode   = 0o600
	maxLogEntries = 10000 // truncate oldest entries when the log exceeds this size
)

// Kind distinguishes work phases from breaks.
type Kind string

const (
	// KindWork is a completed work phase.
	KindWork Kind = "work"

	// KindBreak is a completed break phase.
	KindBreak Kind = "break"
)

// Session is one completed timer phase. Entries are never mutated after
// being written.
type Session struct {
	ID      int64     `json:"id"`
	TaskID  int64     `json:"task_id"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	Minutes int       `json:"minutes"`
	Kind    Kind      `json:"kind"`
}

// Append writes a session entry to the log file. If the log exceeds
// maxLogEntries, the oldest entries are truncated.
func Append(dataDir string, s Session) error {
	path := filepath.Join(dataDir, logFileName)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, logFileMode) //nolint:gosec // log path from trusted data dir
	if err != nil {
		return fmt.Errorf("opening session log: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshaling session: %w", err)
	}

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}

	// Truncate if needed (best-effort; errors are non-fatal).
	_ = truncateIfNeeded(path)

	return nil
}

// Record appends a session entry. Errors are silently discarded because
// session logging must never interrupt the timer.
func Record(dataDir string, taskID int64, kind Kind, start, end time.Time) {
	minutes := int(end.Sub(start).Round(time.Minute) / time.Minute)
	_ = Append(dataDir, Session{
		ID:      end.UnixMilli(),
		TaskID:  taskID,
		Start:   start,
		End:     end,
		Minutes: minutes,
		Kind:    kind,
	})
}

// List reads all sessions from the log, oldest first. A missing log file
// yields an empty list. Malformed lines are skipped.
func List(dataDir string) ([]Session, error) {
	path := filepath.Join(dataDir, logFileName)
	f, err := os.Open(path) //nolint:gosec // trusted path
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening session log: %w", err)
	}
	defer f.Close()

	var sessions []Session
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var s Session
		if err := json.Unmarshal(scanner.Bytes(), &s); err != nil {
			continue
		}
		sessions = append(sessions, s)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading session log: %w", err)
	}
	return sessions, nil
}

// truncateIfNeeded reads the log file and, if it exceeds maxLogEntries,
// rewrites it keeping only the most recent entries.
func truncateIfNeeded(path string) error {
	f, err := os.Open(path) //nolint:gosec // trusted path
	if err != nil {
		return err
	}

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	_ = f.Close()

	if err := scanner.Err(); err != nil {
		return err
	}

	if len(lines) <= maxLogEntries {
		return nil
	}

	lines = lines[len(lines)-maxLogEntries:]

	var buf strings.Builder
	for _, line := range lines {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}

	return os.WriteFile(path, []byte(buf.String()), logFileMode)
}
