package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestInitAndLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), DefaultDir)

	cfg, err := Init(dir)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if _, err := os.Stat(cfg.ConfigPath()); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	// Re-initializing the same directory must fail.
	if _, err := Init(dir); err == nil {
		t.Error("double Init accepted")
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.WorkMinutes != DefaultWorkMinutes {
		t.Errorf("work_minutes = %d, want %d", loaded.WorkMinutes, DefaultWorkMinutes)
	}
	if loaded.SnoozeMinutes != DefaultSnoozeMinutes {
		t.Errorf("snooze_minutes = %d, want %d", loaded.SnoozeMinutes, DefaultSnoozeMinutes)
	}
	if !loaded.TimerEnabled || !loaded.Sound || !loaded.AutoCompleteSteps {
		t.Error("default toggles wrong")
	}
	if loaded.AutoStartNext || loaded.Motivation || loaded.Music {
		t.Error("default-off toggles wrong")
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(t.TempDir())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Load on empty dir = %v, want ErrNotFound", err)
	}
}

func TestSetAndGet(t *testing.T) {
	cfg := NewDefault()

	tests := []struct {
		key, value, want string
	}{
		{"timer_enabled", "false", "false"},
		{"auto_start_next", "true", "true"},
		{"motivation", "1", "true"},
		{"sound", "false", "false"},
		{"music", "true", "true"},
		{"auto_complete_steps", "false", "false"},
		{"work_minutes", "50", "50"},
		{"break_minutes", "10", "10"},
		{"snooze_minutes", "15", "15"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if err := cfg.Set(tt.key, tt.value); err != nil {
				t.Fatalf("Set(%q, %q): %v", tt.key, tt.value, err)
			}
			got, err := cfg.Get(tt.key)
			if err != nil {
				t.Fatalf("Get(%q): %v", tt.key, err)
			}
			if got != tt.want {
				t.Errorf("Get(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}

	if err := cfg.Set("work_minutes", "0"); err == nil {
		t.Error("zero work_minutes accepted")
	}
	if err := cfg.Set("sound", "loud"); err == nil {
		t.Error("non-boolean value accepted")
	}
	if err := cfg.Set("unknown_key", "1"); err == nil {
		t.Error("unknown key accepted")
	}
	if _, err := cfg.Get("unknown_key"); err == nil {
		t.Error("unknown key readable")
	}
}

func TestSetRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), DefaultDir)
	cfg, err := Init(dir)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}

	if err := cfg.Set("work_minutes", "50"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.WorkMinutes != 50 {
		t.Errorf("work_minutes after reload = %d, want 50", loaded.WorkMinutes)
	}
}

func TestMigrateV1(t *testing.T) {
	dir := t.TempDir()
	v1 := `version: 1
timer_enabled: true
sound: true
work_minutes: 25
break_minutes: 5
`
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(v1), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load v1 config: %v", err)
	}
	if cfg.Version != CurrentVersion {
		t.Errorf("version = %d, want %d", cfg.Version, CurrentVersion)
	}
	if cfg.SnoozeMinutes != DefaultSnoozeMinutes {
		t.Errorf("snooze_minutes = %d, want migrated default %d", cfg.SnoozeMinutes, DefaultSnoozeMinutes)
	}
	if !cfg.AutoCompleteSteps {
		t.Error("auto_complete_steps not defaulted by migration")
	}

	// Migration persists, so a reload needs no migration.
	again, err := Load(dir)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if again.Version != CurrentVersion {
		t.Errorf("persisted version = %d, want %d", again.Version, CurrentVersion)
	}
}

func TestMigrateNewerVersionRejected(t *testing.T) {
	dir := t.TempDir()
	data := "version: 99\nwork_minutes: 25\nbreak_minutes: 5\nsnooze_minutes: 30\n"
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(dir); !errors.Is(err, ErrInvalid) {
		t.Errorf("Load newer version = %v, want ErrInvalid", err)
	}
}

func TestValidate(t *testing.T) {
	cfg := NewDefault()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}

	cfg.WorkMinutes = 0
	if err := cfg.Validate(); err == nil {
		t.Error("zero work_minutes validated")
	}

	cfg = NewDefault()
	cfg.BreakMinutes = -1
	if err := cfg.Validate(); err == nil {
		t.Error("negative break_minutes validated")
	}
}

func TestFindDir(t *testing.T) {
	root := t.TempDir()
	dataDir := filepath.Join(root, DefaultDir)
	if _, err := Init(dataDir); err != nil {
		t.Fatalf("Init: %v", err)
	}
	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o750); err != nil {
		t.Fatal(err)
	}

	t.Run("walks up from nested directories", func(t *testing.T) {
		got, err := FindDir(nested)
		if err != nil {
			t.Fatalf("FindDir: %v", err)
		}
		if got != dataDir {
			t.Errorf("FindDir = %q, want %q", got, dataDir)
		}
	})

	t.Run("finds the data directory itself", func(t *testing.T) {
		got, err := FindDir(dataDir)
		if err != nil {
			t.Fatalf("FindDir: %v", err)
		}
		if got != dataDir {
			t.Errorf("FindDir = %q, want %q", got, dataDir)
		}
	})

	t.Run("reports missing data directory", func(t *testing.T) {
		if _, err := FindDir(t.TempDir()); err == nil {
			t.Error("FindDir on bare tree succeeded")
		}
	})
}
