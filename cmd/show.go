package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/nowdo/nowdo/internal/clierr"
	"github.com/nowdo/nowdo/internal/output"
	"github.com/nowdo/nowdo/internal/task"
)

var showCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show full task detail",
	Long:  `Shows a task's full detail. Completed tasks are looked up in history.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}

	id, err := task.ParseID(args[0])
	if err != nil {
		return err
	}

	t, err := store.Get(id)
	if err != nil {
		t = findInHistory(store, id)
		if t == nil {
			return clierr.Newf(clierr.TaskNotFound, "task not found: %d", id)
		}
	}

	now := time.Now()
	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, t)
	case output.FormatCompact:
		output.TaskDetailCompact(os.Stdout, t, now)
		return nil
	}

	output.TaskDetail(os.Stdout, t, now)
	if t.Description != "" {
		fmt.Fprintln(os.Stdout)
		fmt.Fprint(os.Stdout, renderMarkdown(t.Description))
	}
	return nil
}

func findInHistory(store *task.Store, id int64) *task.Task {
	for _, t := range store.History() {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// renderMarkdown renders the description with glamour, falling back to the
// raw text when the renderer is unavailable (dumb terminals, pipes).
func renderMarkdown(md string) string {
	const wrapWidth = 80
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(wrapWidth))
	if err != nil {
		return md + "\n"
	}
	out, err := r.Render(md)
	if err != nil {
		return md + "\n"
	}
	return out
}
