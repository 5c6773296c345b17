package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nowdo/nowdo/internal/config"
	"github.com/nowdo/nowdo/internal/output"
)

var initCmd = &cobra.Command{
	Use:   "init [DIR]",
	Short: "Create a data directory with default settings",
	Long: `Creates the data directory (default: .nowdo in the current directory)
with a default settings file. Task collections are created lazily on first write.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(_ *cobra.Command, args []string) error {
	dir := flagDir
	if len(args) > 0 {
		dir = args[0]
	}
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		dir = filepath.Join(cwd, config.DefaultDir)
	}

	cfg, err := config.Init(dir)
	if err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]any{"dir": cfg.Dir()})
	}
	output.Messagef(os.Stdout, "Initialized data directory: %s", cfg.Dir())
	return nil
}
