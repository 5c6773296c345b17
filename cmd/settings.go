package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/nowdo/nowdo/internal/output"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show the current settings",
	RunE:  runSettings,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Change a setting",
	Long: `Changes one setting and persists the settings file. Booleans take
true/false; the minute values take positive integers.`,
	Args: cobra.ExactArgs(2), //nolint:mnd // key and value
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettings(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, cfg)
	}
	output.SettingsTable(os.Stdout, cfg)
	return nil
}

func runSettingsSet(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	key, value := args[0], args[1]
	if err := cfg.Set(key, value); err != nil {
		return err
	}
	if err := cfg.Save(); err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, cfg)
	}
	current, _ := cfg.Get(key)
	output.Messagef(os.Stdout, "Set %s = %s", key, current)
	return nil
}
