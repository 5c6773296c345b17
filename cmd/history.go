package cmd

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/nowdo/nowdo/internal/output"
	"github.com/nowdo/nowdo/internal/task"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List completed tasks",
	Long:  `Lists completed tasks, most recent first.`,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 0, "limit number of results")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}

	tasks := store.History()
	limit, _ := cmd.Flags().GetInt("limit")
	if limit > 0 && len(tasks) > limit {
		tasks = tasks[:limit]
	}

	format := outputFormat()
	if format == output.FormatJSON {
		if tasks == nil {
			tasks = []*task.Task{}
		}
		return output.JSON(os.Stdout, tasks)
	}
	if format == output.FormatCompact {
		output.TaskCompact(os.Stdout, tasks, time.Now())
		return nil
	}
	output.HistoryTable(os.Stdout, tasks)
	return nil
}
