package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/nowdo/nowdo/internal/output"
	"github.com/nowdo/nowdo/internal/session"
	"github.com/nowdo/nowdo/internal/task"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List logged timer sessions",
	Long:  `Lists completed pomodoro work and break phases, oldest first.`,
	RunE:  runSessions,
}

func init() {
	sessionsCmd.Flags().String("task", "", "filter by task ID")
	rootCmd.AddCommand(sessionsCmd)
}

func runSessions(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	sessions, err := session.List(cfg.Dir())
	if err != nil {
		return err
	}

	if v, _ := cmd.Flags().GetString("task"); v != "" {
		id, err := task.ParseID(v)
		if err != nil {
			return err
		}
		var filtered []session.Session
		for _, s := range sessions {
			if s.TaskID == id {
				filtered = append(filtered, s)
			}
		}
		sessions = filtered
	}

	if outputFormat() == output.FormatJSON {
		if sessions == nil {
			sessions = []session.Session{}
		}
		return output.JSON(os.Stdout, sessions)
	}
	output.SessionTable(os.Stdout, sessions)
	return nil
}
