package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"go.yaml.in/yaml/v3"

	"github.com/nowdo/nowdo/internal/clierr"
)

const (
	fileMode = 0o600
	dirMode  = 0o750
)

// Sentinel errors.
var (
	ErrNotFound = errors.New("no data directory found (run 'nowdo init' to create one)")
	ErrInvalid  = errors.New("invalid config")
)

// Config is the persisted settings record. All fields are written on every
// Save, so absent fields only matter during migration.
type Config struct {
	Version           int  `yaml:"version" json:"version"`
	TimerEnabled      bool `yaml:"timer_enabled" json:"timer_enabled"`
	AutoStartNext     bool `yaml:"auto_start_next" json:"auto_start_next"`
	Motivation        bool `yaml:"motivation" json:"motivation"`
	Sound             bool `yaml:"sound" json:"sound"`
	Music             bool `yaml:"music" json:"music"`
	WorkMinutes       int  `yaml:"work_minutes" json:"work_minutes"`
	BreakMinutes      int  `yaml:"break_minutes" json:"break_minutes"`
	AutoCompleteSteps bool `yaml:"auto_complete_steps" json:"auto_complete_steps"`
	SnoozeMinutes     int  `yaml:"snooze_minutes" json:"snooze_minutes"`

	// dir is the absolute path to the data directory (not serialized).
	dir string `yaml:"-"`
}

// NewDefault creates a Config with default values.
func NewDefault() *Config {
	return &Config{
		Version:           CurrentVersion,
		TimerEnabled:      true,
		AutoStartNext:     false,
		Motivation:        false,
		Sound:             true,
		Music:             false,
		WorkMinutes:       DefaultWorkMinutes,
		BreakMinutes:      DefaultBreakMinutes,
		AutoCompleteSteps: true,
		SnoozeMinutes:     DefaultSnoozeMinutes,
	}
}

// Dir returns the absolute path to the data directory.
func (c *Config) Dir() string { return c.dir }

// SetDir sets the data directory path on the config.
func (c *Config) SetDir(dir string) { c.dir = dir }

// ConfigPath returns the absolute path to the config file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.dir, ConfigFileName)
}

// Validate checks the config for errors.
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("%w: unsupported version %d (expected %d)", ErrInvalid, c.Version, CurrentVersion)
	}
	if c.WorkMinutes < 1 {
		return fmt.Errorf("%w: work_minutes must be >= 1", ErrInvalid)
	}
	if c.BreakMinutes < 1 {
		return fmt.Errorf("%w: break_minutes must be >= 1", ErrInvalid)
	}
	if c.SnoozeMinutes < 1 {
		return fmt.Errorf("%w: snooze_minutes must be >= 1", ErrInvalid)
	}
	return nil
}

// Keys returns the settable keys in display order.
func Keys() []string {
	return []string{
		"timer_enabled",
		"auto_start_next",
		"motivation",
		"sound",
		"music",
		"work_minutes",
		"break_minutes",
		"auto_complete_steps",
		"snooze_minutes",
	}
}

// Get returns the current value of a key as a display string.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "timer_enabled":
		return strconv.FormatBool(c.TimerEnabled), nil
	case "auto_start_next":
		return strconv.FormatBool(c.AutoStartNext), nil
	case "motivation":
		return strconv.FormatBool(c.Motivation), nil
	case "sound":
		return strconv.FormatBool(c.Sound), nil
	case "music":
		return strconv.FormatBool(c.Music), nil
	case "work_minutes":
		return strconv.Itoa(c.WorkMinutes), nil
	case "break_minutes":
		return strconv.Itoa(c.BreakMinutes), nil
	case "auto_complete_steps":
		return strconv.FormatBool(c.AutoCompleteSteps), nil
	case "snooze_minutes":
		return strconv.Itoa(c.SnoozeMinutes), nil
	}
	return "", clierr.Newf(clierr.InvalidSetting, "unknown setting: %s", key)
}

// Set parses and assigns a value to a key. The caller saves afterwards.
func (c *Config) Set(key, value string) error {
	switch key {
	case "timer_enabled":
		return setBool(&c.TimerEnabled, key, value)
	case "auto_start_next":
		return setBool(&c.AutoStartNext, key, value)
	case "motivation":
		return setBool(&c.Motivation, key, value)
	case "sound":
		return setBool(&c.Sound, key, value)
	case "music":
		return setBool(&c.Music, key, value)
	case "auto_complete_steps":
		return setBool(&c.AutoCompleteSteps, key, value)
	case "work_minutes":
		return setMinutes(&c.WorkMinutes, key, value)
	case "break_minutes":
		return setMinutes(&c.BreakMinutes, key, value)
	case "snooze_minutes":
		return setMinutes(&c.SnoozeMinutes, key, value)
	}
	return clierr.Newf(clierr.InvalidSetting, "unknown setting: %s", key)
}

func setBool(dst *bool, key, value string) error {
	v, err := strconv.ParseBool(value)
	if err != nil {
		return clierr.Newf(clierr.InvalidSetting, "%s must be true or false, got %q", key, value)
	}
	*dst = v
	return nil
}

func setMinutes(dst *int, key, value string) error {
	v, err := strconv.Atoi(value)
	if err != nil || v < 1 {
		return clierr.Newf(clierr.InvalidSetting, "%s must be a positive number of minutes, got %q", key, value)
	}
	*dst = v
	return nil
}

// Init creates a new data directory with default settings.
func Init(dir string) (*Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	if _, err := os.Stat(filepath.Join(absDir, ConfigFileName)); err == nil {
		return nil, clierr.Newf(clierr.StoreAlreadyExists, "data directory already initialized: %s", absDir)
	}

	cfg := NewDefault()
	cfg.SetDir(absDir)

	if err := os.MkdirAll(absDir, dirMode); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	if err := cfg.Save(); err != nil {
		return nil, fmt.Errorf("writing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to its config file.
func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(c.ConfigPath(), data, fileMode)
}

// Load reads and validates a config from the given data directory.
func Load(dir string) (*Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	path := filepath.Join(absDir, ConfigFileName)
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted source
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.dir = absDir

	// Migrate old config versions forward before validating.
	oldVersion := cfg.Version
	if err := migrate(&cfg); err != nil {
		return nil, err
	}

	// Persist migrated config so future loads skip re-migration.
	if cfg.Version != oldVersion {
		if err := cfg.Save(); err != nil {
			return nil, fmt.Errorf("saving migrated config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// FindDir walks upward from startDir looking for a data directory
// containing config.yml. Returns the absolute path to the data directory.
func FindDir(startDir string) (string, error) {
	absStart, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	dir := absStart
	for {
		candidate := filepath.Join(dir, DefaultDir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return filepath.Join(dir, DefaultDir), nil
		}

		// Also check if we're inside the data directory itself.
		candidate = filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", clierr.New(clierr.StoreNotFound,
				"no data directory found (run 'nowdo init' to create one)")
		}
		dir = parent
	}
}

// FindOrInitDir resolves the data directory for a command run: walk-up
// discovery first, then the per-user fallback under the OS config
// directory, created on first use so the tool works out of the box.
func FindOrInitDir(startDir string) (string, error) {
	if dir, err := FindDir(startDir); err == nil {
		return dir, nil
	}

	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving user config directory: %w", err)
	}
	dir := filepath.Join(base, "nowdo")

	if _, err := os.Stat(filepath.Join(dir, ConfigFileName)); err == nil {
		return dir, nil
	}

	if _, err := Init(dir); err != nil {
		return "", err
	}
	return dir, nil
}
