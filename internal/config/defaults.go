// Package config handles the persisted settings record.
package config

const (
	// DefaultDir is the default data directory name.
	DefaultDir = ".nowdo"

	// ConfigFileName is the name of the config file within the data directory.
	ConfigFileName = "config.yml"

	// CurrentVersion is the current config schema version.
	CurrentVersion = 2

	// DefaultWorkMinutes is the default length of a pomodoro work phase.
	DefaultWorkMinutes = 25
	// DefaultBreakMinutes is the default length of a pomodoro break phase.
	DefaultBreakMinutes = 5
	// DefaultSnoozeMinutes is the default snooze delay.
	DefaultSnoozeMinutes = 30
	// DefaultBufferMinutes is the default buffer added to a task's estimate.
	DefaultBufferMinutes = 5
)
