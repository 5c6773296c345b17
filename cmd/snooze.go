package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/nowdo/nowdo/internal/clierr"
	"github.com/nowdo/nowdo/internal/config"
	"github.com/nowdo/nowdo/internal/filelock"
	"github.com/nowdo/nowdo/internal/output"
)

var snoozeCmd = &cobra.Command{
	Use:   "snooze [ID]",
	Short: "Defer a task for a while",
	Long: `Defers a task so it leaves the queue until the delay elapses. Without
an ID the current queue head is snoozed. Each snooze bumps the task's
snooze counter.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSnooze,
}

func init() {
	snoozeCmd.Flags().Int("for", 0, "delay in minutes (default from settings)")
	rootCmd.AddCommand(snoozeCmd)
}

func runSnooze(cmd *cobra.Command, args []string) error {
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

	minutes, _ := cmd.Flags().GetInt("for")
	if minutes == 0 {
		minutes = cfg.SnoozeMinutes
	}
	if minutes < 0 {
		return clierr.Newf(clierr.InvalidDuration, "snooze delay must be positive, got %d", minutes)
	}

	now := time.Now()
	id, err := resolveTaskID(store, args, now)
	if err != nil {
		return err
	}

	t, err := store.Snooze(id, time.Duration(minutes)*time.Minute, now)
	if err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, t)
	}
	output.Messagef(os.Stdout, "Snoozed task #%d until %s (snooze #%d): %s",
		t.ID, t.Snoozed.Format("15:04"), t.SnoozeCount, t.Title)
	return nil
}
