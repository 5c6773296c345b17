package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nowdo/nowdo/internal/config"
	"github.com/nowdo/nowdo/internal/task"
)

func TestCreateValidation(t *testing.T) {
	dir := t.TempDir()
	if _, err := config.Init(dir); err != nil {
		t.Fatalf("Init: %v", err)
	}
	prevDir := flagDir
	flagDir = dir
	defer func() { flagDir = prevDir }()

	// Ordered subtests: the rejected create runs first so no step flag
	// value lingers on the shared command.
	t.Run("rejected create leaves nothing persisted", func(t *testing.T) {
		rootCmd.SetArgs([]string{"create", "write report", "--duration", "25", "--label", "work:W"})
		if _, err := rootCmd.ExecuteC(); err == nil {
			t.Fatal("create without steps succeeded")
		}

		for _, file := range []string{task.LabelsFile, task.TasksFile} {
			if _, err := os.Stat(filepath.Join(dir, file)); !os.IsNotExist(err) {
				t.Errorf("%s written by a rejected create", file)
			}
		}
	})

	t.Run("valid create persists the inline label", func(t *testing.T) {
		rootCmd.SetArgs([]string{"create", "write report", "--duration", "25", "--label", "work:W", "--step", "outline"})
		if _, err := rootCmd.ExecuteC(); err != nil {
			t.Fatalf("create: %v", err)
		}

		store, warnings, err := task.Open(dir)
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		if len(warnings) != 0 {
			t.Fatalf("warnings: %v", warnings)
		}
		if len(store.Tasks()) != 1 {
			t.Fatalf("tasks = %d, want 1", len(store.Tasks()))
		}
		if _, ok := store.LabelByName("work"); !ok {
			t.Error("inline label not persisted")
		}
	})
}
