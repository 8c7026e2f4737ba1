package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/linescope/linescope/internal/tui"
	"github.com/linescope/linescope/internal/utils"
)

// Version information - set via ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "linescope [file|url]",
	Short:   "Interactive multi-series line charts in the terminal",
	Long:    `linescope plots time series from JSON, CSV or SQLite sources and lets you inspect them point by point.`,
	Version: Version,
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		setup, err := resolveSetup(cmd)
		exitOnError(err)

		watch := setup.Settings.General.WatchFiles
		if cmd.Flags().Changed("watch") {
			watch, _ = cmd.Flags().GetBool("watch")
		}
		if watch && utils.IsURL(args[0]) {
			fmt.Fprintln(os.Stderr, "Warning: --watch is ignored for URL sources")
		}

		tui.ApplyTheme(setup.Settings.Display.Theme)
		m := tui.InitialRootModel(tui.Options{
			Source:   args[0],
			Load:     setup.Load,
			Chart:    setup.Chart,
			Settings: setup.Settings,
			Watch:    watch,
			Debounce: setup.Settings.General.ReloadDebounce,
		})
		utils.Debug("linescope %s (built %s) starting on %s", Version, BuildTime, args[0])

		p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
		if _, err := p.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
			os.Exit(1)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	addChartFlags(rootCmd)
	rootCmd.Flags().BoolP("watch", "w", false, "reload when the source file changes")
	rootCmd.SetVersionTemplate("linescope version {{.Version}}\n")
}
