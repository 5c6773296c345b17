package cmd

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/nowdo/nowdo/internal/output"
	"github.com/nowdo/nowdo/internal/queue"
)

var currentCmd = &cobra.Command{
	Use:     "current",
	Aliases: []string{"now"},
	Short:   "Show the task to do right now",
	Long: `Shows the head of the queue: the highest-priority, most urgent active
task. An empty queue is reported as such, not as an error.`,
	RunE: runCurrent,
}

func init() {
	rootCmd.AddCommand(currentCmd)
}

func runCurrent(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}

	now := time.Now()
	t := queue.Next(store.Tasks(), now)

	format := outputFormat()
	if t == nil {
		if format == output.FormatJSON {
			return output.JSON(os.Stdout, nil)
		}
		output.Messagef(os.Stdout, "All clear — nothing to do right now.")
		return nil
	}

	switch format {
	case output.FormatJSON:
		return output.JSON(os.Stdout, t)
	case output.FormatCompact:
		output.TaskDetailCompact(os.Stdout, t, now)
	default:
		output.TaskDetail(os.Stdout, t, now)
	}
	return nil
}
