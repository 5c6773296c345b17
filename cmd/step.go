package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/nowdo/nowdo/internal/clierr"
	"github.com/nowdo/nowdo/internal/config"
	"github.com/nowdo/nowdo/internal/filelock"
	"github.com/nowdo/nowdo/internal/output"
	"github.com/nowdo/nowdo/internal/task"
)

var stepCmd = &cobra.Command{
	Use:   "step",
	Short: "Manage a task's checklist steps",
	Long: `Manages checklist steps. Subcommands take an optional task ID before
their own arguments; without one they operate on the current queue head.
Steps are addressed by their 1-based position as shown by 'show'.`,
}

var stepAddCmd = &cobra.Command{
	Use:   "add [ID] TITLE",
	Short: "Append a checklist step",
	Args:  cobra.RangeArgs(1, 2), //nolint:mnd // optional ID plus title
	RunE:  runStepAdd,
}

var stepCheckCmd = &cobra.Command{
	Use:   "check [ID] N",
	Short: "Mark a step as done",
	Long: `Marks the Nth step as done. Checking the last remaining step completes
the task when the auto_complete_steps setting is on.`,
	Args: cobra.RangeArgs(1, 2), //nolint:mnd // optional ID plus ordinal
	RunE: runStepCheck,
}

var stepUncheckCmd = &cobra.Command{
	Use:   "uncheck [ID] N",
	Short: "Mark a step as not done",
	Args:  cobra.RangeArgs(1, 2), //nolint:mnd // optional ID plus ordinal
	RunE:  runStepUncheck,
}

var stepRmCmd = &cobra.Command{
	Use:   "rm [ID] N",
	Short: "Remove a step",
	Args:  cobra.RangeArgs(1, 2), //nolint:mnd // optional ID plus ordinal
	RunE:  runStepRm,
}

func init() {
	stepCmd.AddCommand(stepAddCmd, stepCheckCmd, stepUncheckCmd, stepRmCmd)
	rootCmd.AddCommand(stepCmd)
}

// stepTarget resolves the optional leading task ID: with two args the first
// is the task ID, with one the current queue head is used.
func stepTarget(store *task.Store, args []string, now time.Time) (int64, string, error) {
	if len(args) == 2 { //nolint:mnd // ID plus argument form
		id, err := task.ParseID(args[0])
		if err != nil {
			return 0, "", err
		}
		return id, args[1], nil
	}
	id, err := resolveTaskID(store, nil, now)
	if err != nil {
		return 0, "", err
	}
	return id, args[0], nil
}

func withLockedStore(fn func(cfg *config.Config, store *task.Store) error) error {
	dir, err := resolveDir()
	if err != nil {
		return err
	}
	unlock, err := filelock.Lock(filepath.Join(dir, ".lock"))
	if err != nil {
		return fmt.Errorf("acquiring lock: %w", err)
	}
	defer unlock() //nolint:errcheck // best-effort unlock on exit

	cfg, err := config.Load(dir)
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	return fn(cfg, store)
}

func runStepAdd(_ *cobra.Command, args []string) error {
	return withLockedStore(func(_ *config.Config, store *task.Store) error {
		now := time.Now()
		id, title, err := stepTarget(store, args, now)
		if err != nil {
			return err
		}
		if title == "" {
			return clierr.New(clierr.InvalidInput, "step title must not be empty")
		}

		step, err := store.AppendStep(id, title, now)
		if err != nil {
			return err
		}

		if outputFormat() == output.FormatJSON {
			return output.JSON(os.Stdout, step)
		}
		output.Messagef(os.Stdout, "Added step to task #%d: %s", id, step.Title)
		return nil
	})
}

func runStepCheck(_ *cobra.Command, args []string) error {
	return setStepDone(args, true)
}

func runStepUncheck(_ *cobra.Command, args []string) error {
	return setStepDone(args, false)
}

func setStepDone(args []string, done bool) error {
	return withLockedStore(func(cfg *config.Config, store *task.Store) error {
		now := time.Now()
		id, ordArg, err := stepTarget(store, args, now)
		if err != nil {
			return err
		}
		step, err := stepByOrdinalArg(store, id, ordArg)
		if err != nil {
			return err
		}

		completed, err := store.SetStepDone(id, step.ID, done, cfg.AutoCompleteSteps, now)
		if err != nil {
			return err
		}

		if completed != nil {
			if outputFormat() == output.FormatJSON {
				return output.JSON(os.Stdout, completed)
			}
			output.Messagef(os.Stdout, "Checked step: %s", step.Title)
			output.Messagef(os.Stdout, "All steps done — completed task #%d: %s", completed.ID, completed.Title)
			return nil
		}

		if outputFormat() == output.FormatJSON {
			return output.JSON(os.Stdout, step)
		}
		verb := "Checked"
		if !done {
			verb = "Unchecked"
		}
		output.Messagef(os.Stdout, "%s step on task #%d: %s", verb, id, step.Title)
		return nil
	})
}

func runStepRm(_ *cobra.Command, args []string) error {
	return withLockedStore(func(_ *config.Config, store *task.Store) error {
		now := time.Now()
		id, ordArg, err := stepTarget(store, args, now)
		if err != nil {
			return err
		}
		step, err := stepByOrdinalArg(store, id, ordArg)
		if err != nil {
			return err
		}

		if err := store.RemoveStep(id, step.ID); err != nil {
			return err
		}

		if outputFormat() == output.FormatJSON {
			return output.JSON(os.Stdout, map[string]any{"removed": step.Title})
		}
		output.Messagef(os.Stdout, "Removed step from task #%d: %s", id, step.Title)
		return nil
	})
}

func stepByOrdinalArg(store *task.Store, id int64, arg string) (*task.Step, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return nil, clierr.Newf(clierr.InvalidInput, "step number must be a positive integer, got %q", arg)
	}
	t, err := store.Get(id)
	if err != nil {
		return nil, err
	}
	return t.StepByOrdinal(n)
}
