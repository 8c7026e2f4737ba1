package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/linescope/linescope/internal/engine/events"
	"github.com/linescope/linescope/internal/render"
)

var renderCmd = &cobra.Command{
	Use:   "render <file|url>",
	Short: "Render a chart as SVG or a JSON frame",
	Long: `render loads a source and writes a static SVG document or the chart
frame as JSON. With --series and --at the bisector is placed before rendering.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		out, _ := cmd.Flags().GetString("out")
		w, err := openOutput(out)
		exitOnError(err)
		defer func() { _ = w.Close() }()

		exitOnError(runRender(cmd, args[0], w))
	},
}

func runRender(cmd *cobra.Command, src string, w io.Writer) error {
	setup, err := resolveSetup(cmd)
	if err != nil {
		return err
	}
	format, _ := cmd.Flags().GetString("format")
	if format != "svg" && format != "json" {
		return fmt.Errorf("unknown output format %q (want svg or json)", format)
	}

	c, err := loadChart(contextOf(cmd), src, setup)
	if err != nil {
		return err
	}

	hide, _ := cmd.Flags().GetIntSlice("hide")
	for _, i := range hide {
		if !c.Apply(events.ToggleSeriesMsg{Series: i - 1, Visible: false}) {
			return fmt.Errorf("no series %d", i)
		}
	}

	if cmd.Flags().Changed("series") {
		series, _ := cmd.Flags().GetInt("series")
		if err := placeBisector(cmd, c, series); err != nil {
			return err
		}
	}

	if format == "json" {
		return render.JSON(w, c.Frame())
	}
	return render.SVG(w, c.Frame())
}

func addRenderFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", "svg", "output format: svg or json")
	cmd.Flags().StringP("out", "o", "", "output file (default: stdout)")
	cmd.Flags().IntSlice("hide", nil, "series to hide, 1-based")
	addBisectorFlags(cmd)
}

func init() {
	addRenderFlags(renderCmd)
	rootCmd.AddCommand(renderCmd)
}
