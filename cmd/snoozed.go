package cmd

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/nowdo/nowdo/internal/output"
	"github.com/nowdo/nowdo/internal/queue"
	"github.com/nowdo/nowdo/internal/task"
)

var snoozedCmd = &cobra.Command{
	Use:   "snoozed",
	Short: "List currently-snoozed tasks",
	Long:  `Lists currently-deferred tasks, most-snoozed first.`,
	RunE:  runSnoozed,
}

func init() {
	rootCmd.AddCommand(snoozedCmd)
}

func runSnoozed(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}

	now := time.Now()
	tasks := queue.Snoozed(store.Tasks(), now)

	format := outputFormat()
	if format == output.FormatJSON {
		if tasks == nil {
			tasks = []*task.Task{}
		}
		return output.JSON(os.Stdout, tasks)
	}
	if format == output.FormatCompact {
		output.TaskCompact(os.Stdout, tasks, now)
		return nil
	}
	output.SnoozedTable(os.Stdout, tasks)
	return nil
}
