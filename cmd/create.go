package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/nowdo/nowdo/internal/clierr"
	"github.com/nowdo/nowdo/internal/config"
	"github.com/nowdo/nowdo/internal/date"
	"github.com/nowdo/nowdo/internal/filelock"
	"github.com/nowdo/nowdo/internal/output"
	"github.com/nowdo/nowdo/internal/task"
)

var createCmd = &cobra.Command{
	Use:     "create [TITLE]",
	Aliases: []string{"add"},
	Short:   "Create a new task",
	Long: `Creates a new task with the given title and optional fields.

Title can be provided as a positional argument or via --title flag.
At least one checklist step is required (repeat --step).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCreate,
}

func init() {
	createCmd.Flags().String("title", "", "task title (alternative to positional argument)")
	createCmd.Flags().String("desc", "", "task description (markdown)")
	createCmd.Flags().String("priority", "", "task priority (high, medium, low; default medium)")
	createCmd.Flags().Int("duration", 0, "estimated duration in minutes (required)")
	createCmd.Flags().Int("buffer", config.DefaultBufferMinutes, "buffer minutes added to the estimate")
	createCmd.Flags().String("due", "", "due date (YYYY-MM-DD or \"YYYY-MM-DD HH:MM\")")
	createCmd.Flags().String("label", "", "label name, or NAME:ICON to define one inline")
	createCmd.Flags().Bool("pomodoro", false, "run the pomodoro timer for this task")
	createCmd.Flags().StringArray("step", nil, "checklist step (repeatable; at least one required)")
	createCmd.Flags().SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		switch name {
		case "description":
			name = "desc"
		case "steps":
			name = "step"
		}
		return pflag.NormalizedName(name)
	})
	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	// Exclusive lock: creation reads and rewrites the whole active pool.
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

	title, err := resolveCreateTitle(cmd, args)
	if err != nil {
		return err
	}
	if err := task.ValidateTitle(title); err != nil {
		return err
	}

	t := &task.Task{
		Title:    strings.TrimSpace(title),
		Priority: task.PriorityMedium,
		Pomodoro: false,
	}

	if err := applyCreateFlags(cmd, t); err != nil {
		return err
	}

	// Validation must reject the task before anything is persisted.
	steps, _ := cmd.Flags().GetStringArray("step")
	cleaned, err := task.ValidateSteps(steps)
	if err != nil {
		return err
	}
	if err := task.ValidateDuration(t.Duration, t.Buffer); err != nil {
		return err
	}

	// Label resolution comes after all validation: defining one inline
	// persists it to the label set immediately.
	if v, _ := cmd.Flags().GetString("label"); v != "" {
		l, err := resolveLabel(store, v)
		if err != nil {
			return err
		}
		t.Label = &l
	}

	now := time.Now()
	for _, s := range cleaned {
		t.AddStep(s, now)
	}

	if err := store.Add(t, now); err != nil {
		return err
	}

	return outputCreateResult(t)
}

func outputCreateResult(t *task.Task) error {
	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, t)
	}

	output.Messagef(os.Stdout, "Created task #%d: %s", t.ID, t.Title)
	output.Messagef(os.Stdout, "  Priority: %s | Estimate: %dm + %dm", t.Priority, t.Duration, t.Buffer)
	if t.Label != nil {
		output.Messagef(os.Stdout, "  Label: %s %s", t.Label.Icon, t.Label.Name)
	}
	if t.Due != nil {
		output.Messagef(os.Stdout, "  Due: %s", date.FormatDue(*t.Due))
	}
	output.Messagef(os.Stdout, "  Steps: %d", len(t.Steps))
	return nil
}

// resolveCreateTitle returns the task title from either the positional arg or --title flag.
func resolveCreateTitle(cmd *cobra.Command, args []string) (string, error) {
	flagTitle, _ := cmd.Flags().GetString("title")
	hasPositional := len(args) > 0
	hasFlag := flagTitle != ""

	switch {
	case hasPositional && hasFlag:
		return "", clierr.New(clierr.InvalidInput,
			"title provided both as argument and --title flag; use one or the other")
	case hasPositional:
		return args[0], nil
	case hasFlag:
		return flagTitle, nil
	default:
		return "", errors.New("title is required: provide it as an argument or with --title")
	}
}

func applyCreateFlags(cmd *cobra.Command, t *task.Task) error {
	if v, _ := cmd.Flags().GetString("desc"); v != "" {
		t.Description = v
	}
	if v, _ := cmd.Flags().GetString("priority"); v != "" {
		p := task.Priority(v)
		if err := task.ValidatePriority(p); err != nil {
			return err
		}
		t.Priority = p
	}
	if v, _ := cmd.Flags().GetInt("duration"); v != 0 {
		t.Duration = v
	}
	if v, _ := cmd.Flags().GetInt("buffer"); cmd.Flags().Changed("buffer") || v != 0 {
		t.Buffer = v
	}
	if v, _ := cmd.Flags().GetString("due"); v != "" {
		d, err := date.ParseDue(v)
		if err != nil {
			return task.ValidateDate("due", v, err)
		}
		t.Due = &d
	}
	if v, _ := cmd.Flags().GetBool("pomodoro"); v {
		t.Pomodoro = true
	}
	return nil
}

// resolveLabel finds an existing label by name, or defines one inline from
// a NAME:ICON argument and adds it to the label set.
func resolveLabel(store *task.Store, arg string) (task.Label, error) {
	if name, icon, ok := strings.Cut(arg, ":"); ok {
		l := task.Label{Name: strings.TrimSpace(name), Icon: strings.TrimSpace(icon)}
		if err := store.AddLabel(l); err != nil {
			// An existing identical label is fine to reuse.
			if existing, found := store.LabelByName(l.Name); found {
				return existing, nil
			}
			return task.Label{}, err
		}
		return l, nil
	}

	l, ok := store.LabelByName(arg)
	if !ok {
		return task.Label{}, clierr.Newf(clierr.LabelNotFound,
			"label %q not found (define one inline with NAME:ICON)", arg)
	}
	return l, nil
}
