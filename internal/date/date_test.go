package date

import (
	"testing"
	"time"
)

func TestParseDue(t *testing.T) {
	t.Run("date with time", func(t *testing.T) {
		got, err := ParseDue("2026-03-10 18:30")
		if err != nil {
			t.Fatalf("ParseDue: %v", err)
		}
		want := time.Date(2026, 3, 10, 18, 30, 0, 0, time.Local)
		if !got.Equal(want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("bare date means end of day", func(t *testing.T) {
		got, err := ParseDue("2026-03-10")
		if err != nil {
			t.Fatalf("ParseDue: %v", err)
		}
		want := time.Date(2026, 3, 10, 23, 59, 0, 0, time.Local)
		if !got.Equal(want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("rejects garbage", func(t *testing.T) {
		for _, s := range []string{"", "tomorrow", "10-03-2026", "2026-03-10T18:30"} {
			if _, err := ParseDue(s); err == nil {
				t.Errorf("ParseDue(%q) succeeded, want error", s)
			}
		}
	})
}

func TestFormatDue(t *testing.T) {
	withTime := time.Date(2026, 3, 10, 18, 30, 0, 0, time.Local)
	if got := FormatDue(withTime); got != "2026-03-10 18:30" {
		t.Errorf("FormatDue = %q, want %q", got, "2026-03-10 18:30")
	}

	midnight := time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local)
	if got := FormatDue(midnight); got != "2026-03-10" {
		t.Errorf("FormatDue = %q, want %q", got, "2026-03-10")
	}
}
