package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/nowdo/nowdo/internal/clierr"
	"github.com/nowdo/nowdo/internal/config"
	"github.com/nowdo/nowdo/internal/output"
	"github.com/nowdo/nowdo/internal/task"
)

var deleteCmd = &cobra.Command{
	Use:     "delete ID",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Long: `Deletes a task from the active pool without recording it in history.
Prompts for confirmation on a terminal; use --yes in scripts.`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().BoolP("yes", "y", false, "skip confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	yes, _ := cmd.Flags().GetBool("yes")

	return withLockedStore(func(_ *config.Config, store *task.Store) error {
		id, err := task.ParseID(args[0])
		if err != nil {
			return err
		}
		t, err := store.Get(id)
		if err != nil {
			return err
		}

		// Require confirmation in TTY mode unless --yes.
		if !yes {
			if !term.IsTerminal(int(os.Stdin.Fd())) {
				return clierr.New(clierr.ConfirmationReq,
					"cannot prompt for confirmation (not a terminal); use --yes")
			}
			fmt.Fprintf(os.Stderr, "Delete task #%d %q? [y/N] ", t.ID, t.Title)
			reader := bufio.NewReader(os.Stdin)
			answer, _ := reader.ReadString('\n')
			answer = strings.TrimSpace(strings.ToLower(answer))
			if answer != "y" && answer != "yes" {
				fmt.Fprintln(os.Stderr, "Canceled.")
				return nil
			}
		}

		if _, err := store.Remove(id); err != nil {
			return err
		}

		if outputFormat() == output.FormatJSON {
			return output.JSON(os.Stdout, map[string]any{"status": "deleted", "id": id})
		}
		output.Messagef(os.Stdout, "Deleted task #%d: %s", t.ID, t.Title)
		return nil
	})
}
