package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/nowdo/nowdo/internal/config"
	"github.com/nowdo/nowdo/internal/output"
	"github.com/nowdo/nowdo/internal/task"
)

var labelCmd = &cobra.Command{
	Use:   "label",
	Short: "Manage the label set",
	Long: `Manages the reusable label set. Removing a label does not touch tasks
that already carry it; they keep their embedded copy.`,
}

var labelAddCmd = &cobra.Command{
	Use:   "add NAME ICON",
	Short: "Add a label",
	Args:  cobra.ExactArgs(2), //nolint:mnd // name and icon
	RunE:  runLabelAdd,
}

var labelLsCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List labels",
	RunE:    runLabelLs,
}

var labelRmCmd = &cobra.Command{
	Use:   "rm NAME",
	Short: "Remove a label",
	Args:  cobra.ExactArgs(1),
	RunE:  runLabelRm,
}

func init() {
	labelAddCmd.Flags().String("color", "", "display color hint")
	labelCmd.AddCommand(labelAddCmd, labelLsCmd, labelRmCmd)
	rootCmd.AddCommand(labelCmd)
}

func runLabelAdd(cmd *cobra.Command, args []string) error {
	return withLockedStore(func(_ *config.Config, store *task.Store) error {
		color, _ := cmd.Flags().GetString("color")
		l := task.Label{Name: args[0], Icon: args[1], Color: color}

		if err := store.AddLabel(l); err != nil {
			return err
		}

		if outputFormat() == output.FormatJSON {
			return output.JSON(os.Stdout, l)
		}
		output.Messagef(os.Stdout, "Added label %s %s", l.Icon, l.Name)
		return nil
	})
}

func runLabelLs(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}

	labels := store.Labels()
	if outputFormat() == output.FormatJSON {
		if labels == nil {
			labels = []task.Label{}
		}
		return output.JSON(os.Stdout, labels)
	}
	output.LabelTable(os.Stdout, labels)
	return nil
}

func runLabelRm(_ *cobra.Command, args []string) error {
	return withLockedStore(func(_ *config.Config, store *task.Store) error {
		if err := store.RemoveLabel(args[0]); err != nil {
			return err
		}

		if outputFormat() == output.FormatJSON {
			return output.JSON(os.Stdout, map[string]any{"removed": args[0]})
		}
		output.Messagef(os.Stdout, "Removed label %s", args[0])
		return nil
	})
}
