package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/linescope/linescope/internal/config"
)

var settingsCmd = &cobra.Command{
	Use:       "settings [path|show|reset]",
	Short:     "Show or reset the saved settings",
	Long:      `settings prints the settings file location (path), its effective content (show, the default) or restores the defaults (reset).`,
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"path", "show", "reset"},
	Run: func(cmd *cobra.Command, args []string) {
		action := "show"
		if len(args) == 1 {
			action = args[0]
		}
		exitOnError(runSettings(action, os.Stdout))
	},
}

func runSettings(action string, w io.Writer) error {
	switch action {
	case "path":
		_, err := fmt.Fprintln(w, config.GetSettingsPath())
		return err

	case "show":
		settings, err := config.LoadSettings()
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(settings, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err

	case "reset":
		if err := config.SaveSettings(config.DefaultSettings()); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		_, err := fmt.Fprintf(w, "Settings reset to defaults: %s\n", config.GetSettingsPath())
		return err
	}
	return fmt.Errorf("unknown action %q", action)
}

func init() {
	rootCmd.AddCommand(settingsCmd)
}
