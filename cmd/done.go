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
	"github.com/nowdo/nowdo/internal/task"
)

var doneCmd = &cobra.Command{
	Use:   "done [ID]",
	Short: "Complete a task",
	Long: `Completes a task and moves it to history. Without an ID the current
queue head is completed. The optional flags attach a completion record.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDone,
}

func init() {
	doneCmd.Flags().Int("time-spent", 0, "actual minutes spent")
	doneCmd.Flags().Int("difficulty", 0, "difficulty rating (1-5)")
	doneCmd.Flags().Int("satisfaction", 0, "satisfaction rating (1-5)")
	doneCmd.Flags().String("note", "", "free-text completion note")
	rootCmd.AddCommand(doneCmd)
}

func runDone(cmd *cobra.Command, args []string) error {
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

	now := time.Now()
	id, err := resolveTaskID(store, args, now)
	if err != nil {
		return err
	}

	rec, err := completionRecord(cmd)
	if err != nil {
		return err
	}

	if done := findInHistory(store, id); done != nil {
		return clierr.Newf(clierr.TaskCompleted, "task %d is already completed", id)
	}

	t, err := store.Complete(id, rec, now)
	if err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, t)
	}
	output.Messagef(os.Stdout, "Completed task #%d: %s", t.ID, t.Title)
	return nil
}

func completionRecord(cmd *cobra.Command) (*task.Record, error) {
	spent, _ := cmd.Flags().GetInt("time-spent")
	difficulty, _ := cmd.Flags().GetInt("difficulty")
	satisfaction, _ := cmd.Flags().GetInt("satisfaction")
	note, _ := cmd.Flags().GetString("note")

	if spent == 0 && difficulty == 0 && satisfaction == 0 && note == "" {
		return nil, nil
	}

	if difficulty != 0 {
		if err := task.ValidateRating("difficulty", difficulty); err != nil {
			return nil, err
		}
	}
	if satisfaction != 0 {
		if err := task.ValidateRating("satisfaction", satisfaction); err != nil {
			return nil, err
		}
	}

	return &task.Record{
		ActualMinutes: spent,
		Difficulty:    difficulty,
		Satisfaction:  satisfaction,
		Note:          note,
	}, nil
}
