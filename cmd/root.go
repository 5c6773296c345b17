// Package cmd implements the nowdo CLI commands.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/nowdo/nowdo/internal/clierr"
	"github.com/nowdo/nowdo/internal/config"
	"github.com/nowdo/nowdo/internal/output"
	"github.com/nowdo/nowdo/internal/queue"
	"github.com/nowdo/nowdo/internal/task"
)

// version is set at build time via ldflags.
var version = "dev"

// Global flags.
var (
	flagJSON    bool
	flagTable   bool
	flagCompact bool
	flagDir     string
	flagNoColor bool
)

var rootCmd = &cobra.Command{
	Use:   "nowdo",
	Short: "One task at a time, with a pomodoro timer",
	Long: `nowdo shows the single task you should be doing right now.
Run nowdo with no arguments to open the TUI. Subcommands manage tasks,
steps, labels, snoozes, and settings from scripts or the shell.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runTUI,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if flagNoColor || os.Getenv("NO_COLOR") != "" {
			output.DisableColor()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagTable, "table", false, "output as table")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "compact", false, "compact one-line-per-record output")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "oneline", false, "alias for --compact")
	rootCmd.PersistentFlags().StringVar(&flagDir, "dir", "", "path to data directory")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable color output")
}

// Execute runs the root command.
func Execute() {
	_, err := rootCmd.ExecuteC()
	if err == nil {
		return
	}

	// Handle SilentError — exit with code, no output.
	var silent *clierr.SilentError
	if errors.As(err, &silent) {
		os.Exit(silent.Code)
	}

	// Determine if JSON mode is active.
	jsonMode := flagJSON
	if !jsonMode {
		jsonMode = os.Getenv("NOWDO_OUTPUT") == "json"
	}

	if jsonMode {
		var cliErr *clierr.Error
		if errors.As(err, &cliErr) {
			output.JSONError(os.Stdout, cliErr.Code, cliErr.Message, cliErr.Details)
			os.Exit(cliErr.ExitCode())
		}
		// Unknown error — wrap as INTERNAL_ERROR.
		output.JSONError(os.Stdout, clierr.InternalError, err.Error(), nil)
		os.Exit(2) //nolint:mnd // exit code 2 for internal errors
	}

	// Non-JSON mode: print to stderr.
	fmt.Fprintln(os.Stderr, err)
	var cliErr *clierr.Error
	if errors.As(err, &cliErr) {
		os.Exit(cliErr.ExitCode())
	}
	os.Exit(1)
}

// resolveDir returns the absolute path to the data directory. Walk-up
// discovery from the working directory, then the per-user fallback under
// the OS config directory (auto-created on first use).
func resolveDir() (string, error) {
	if flagDir != "" {
		return flagDir, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}

	return config.FindOrInitDir(cwd)
}

// loadConfig finds and loads the settings record.
func loadConfig() (*config.Config, error) {
	dir, err := resolveDir()
	if err != nil {
		return nil, err
	}
	return config.Load(dir)
}

// openStore loads the task collections, printing warnings for any
// malformed files that were skipped.
func openStore(cfg *config.Config) (*task.Store, error) {
	store, warnings, err := task.Open(cfg.Dir())
	if err != nil {
		return nil, err
	}
	printWarnings(warnings)
	return store, nil
}

// printWarnings writes collection read warnings to stderr.
func printWarnings(warnings []task.Warning) {
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "Warning: skipping malformed file %s: %v\n", w.File, w.Err)
	}
}

// outputFormat returns the detected output format from flags/env.
func outputFormat() output.Format {
	return output.Detect(flagJSON, flagTable, flagCompact)
}

// resolveTaskID returns the task ID from the first positional argument, or
// the current queue head when no argument is given.
func resolveTaskID(store *task.Store, args []string, now time.Time) (int64, error) {
	if len(args) > 0 {
		return task.ParseID(args[0])
	}
	t := queue.Next(store.Tasks(), now)
	if t == nil {
		return 0, clierr.New(clierr.NoCurrentTask, "no current task (queue is empty)")
	}
	return t.ID, nil
}
