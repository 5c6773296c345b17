package session

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"
)

var start = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func TestAppendAndList(t *testing.T) {
	dir := t.TempDir()

	first := Session{ID: 1, TaskID: 7, Start: start, End: start.Add(25 * time.Minute), Minutes: 25, Kind: KindWork}
	second := Session{ID: 2, TaskID: 7, Start: start.Add(25 * time.Minute), End: start.Add(30 * time.Minute), Minutes: 5, Kind: KindBreak}
	for _, s := range []Session{first, second} {
		if err := Append(dir, s); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	got, err := List(dir)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].TaskID != 7 || got[0].Kind != KindWork || got[0].Minutes != 25 {
		t.Errorf("first entry = %+v", got[0])
	}
	if got[1].Kind != KindBreak {
		t.Errorf("second entry = %+v", got[1])
	}
	if !got[0].Start.Equal(start) {
		t.Errorf("start = %v, want %v", got[0].Start, start)
	}
}

func TestListMissingFile(t *testing.T) {
	got, err := List(t.TempDir())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}

func TestListSkipsMalformedLines(t *testing.T) {
	dir := t.TempDir()
	if err := Append(dir, Session{ID: 1, TaskID: 3, Kind: KindWork}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	path := filepath.Join(dir, logFileName)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, logFileMode)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString("{broken\n"); err != nil {
		t.Fatal(err)
	}
	_ = f.Close()
	if err := Append(dir, Session{ID: 2, TaskID: 3, Kind: KindBreak}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	got, err := List(dir)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2 (malformed line skipped)", len(got))
	}
	if got[0].ID != 1 || got[1].ID != 2 {
		t.Errorf("ids = %d, %d; want 1, 2", got[0].ID, got[1].ID)
	}
}

func TestRecordRoundsMinutes(t *testing.T) {
	dir := t.TempDir()
	Record(dir, 9, KindWork, start, start.Add(24*time.Minute+40*time.Second))

	got, err := List(dir)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].Minutes != 25 {
		t.Errorf("minutes = %d, want 25", got[0].Minutes)
	}
	if got[0].TaskID != 9 {
		t.Errorf("task id = %d, want 9", got[0].TaskID)
	}
}

func TestAppendTruncatesOldEntries(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, logFileName)

	// Pre-fill the log beyond the cap so the next Append triggers a trim.
	var buf strings.Builder
	for i := range maxLogEntries + 5 {
		buf.WriteString(`{"id":`)
		buf.WriteString(strconv.Itoa(i))
		buf.WriteString(`,"task_id":1,"minutes":1,"kind":"work"}`)
		buf.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(buf.String()), logFileMode); err != nil {
		t.Fatal(err)
	}

	last := Session{ID: 999999, TaskID: 2, Kind: KindBreak}
	if err := Append(dir, last); err != nil {
		t.Fatalf("Append: %v", err)
	}

	got, err := List(dir)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != maxLogEntries {
		t.Fatalf("len = %d, want %d", len(got), maxLogEntries)
	}
	if got[len(got)-1].ID != last.ID {
		t.Errorf("newest entry id = %d, want %d", got[len(got)-1].ID, last.ID)
	}
}
