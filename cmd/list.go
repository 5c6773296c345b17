package cmd

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/nowdo/nowdo/internal/output"
	"github.com/nowdo/nowdo/internal/queue"
	"github.com/nowdo/nowdo/internal/task"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List active tasks in queue order",
	Long:    `Lists active tasks in queue order with optional filtering.`,
	RunE:    runList,
}

func init() {
	listCmd.Flags().StringSlice("priority", nil, "filter by priority (comma-separated)")
	listCmd.Flags().String("label", "", "filter by label name")
	listCmd.Flags().StringP("search", "s", "", "search title, description, and steps (case-insensitive)")
	listCmd.Flags().Bool("pomodoro", false, "show only pomodoro tasks")
	listCmd.Flags().BoolP("all", "a", false, "include currently-snoozed tasks")
	listCmd.Flags().BoolP("reverse", "r", false, "reverse the order")
	listCmd.Flags().IntP("limit", "n", 0, "limit number of results")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}

	priorities, _ := cmd.Flags().GetStringSlice("priority")
	label, _ := cmd.Flags().GetString("label")
	search, _ := cmd.Flags().GetString("search")
	all, _ := cmd.Flags().GetBool("all")
	reverse, _ := cmd.Flags().GetBool("reverse")
	limit, _ := cmd.Flags().GetInt("limit")

	filter := queue.FilterOptions{Label: label, Search: search}
	for _, p := range priorities {
		prio := task.Priority(p)
		if err := task.ValidatePriority(prio); err != nil {
			return err
		}
		filter.Priorities = append(filter.Priorities, prio)
	}
	if cmd.Flags().Changed("pomodoro") {
		v, _ := cmd.Flags().GetBool("pomodoro")
		filter.Pomodoro = &v
	}

	now := time.Now()
	tasks := store.Tasks()
	if !all {
		tasks = queue.Active(tasks, now)
	}
	tasks = queue.Filter(tasks, filter)
	queue.Order(tasks)

	if reverse {
		for i, j := 0, len(tasks)-1; i < j; i, j = i+1, j-1 {
			tasks[i], tasks[j] = tasks[j], tasks[i]
		}
	}
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
		output.TaskCompact(os.Stdout, tasks, now)
		return nil
	}
	output.TaskTable(os.Stdout, tasks, now)
	return nil
}
