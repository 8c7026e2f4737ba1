package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/linescope/linescope/internal/engine"
	"github.com/linescope/linescope/internal/engine/events"
	"github.com/linescope/linescope/internal/engine/types"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file|url>",
	Short: "Run the bisector on one series and print the match",
	Long: `inspect selects a series at an x value (--at, read like the data) or at
an outer-box pixel (--pixel) and prints the nearest record as JSON.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		exitOnError(runInspect(cmd, args[0], os.Stdout))
	},
}

// inspectResult is the printed bisector match.
type inspectResult struct {
	Series  int           `json:"series"`
	Name    string        `json:"name"`
	Pointer float64       `json:"pointer"`
	Matched bool          `json:"matched"`
	Index   int           `json:"index"`
	X       float64       `json:"x"`
	Y       float64       `json:"y"`
	Date    string        `json:"date,omitempty"`
	Value   string        `json:"value,omitempty"`
	Record  *types.Record `json:"record,omitempty"`
}

func runInspect(cmd *cobra.Command, src string, w io.Writer) error {
	if !cmd.Flags().Changed("series") {
		return fmt.Errorf("--series is required")
	}
	setup, err := resolveSetup(cmd)
	if err != nil {
		return err
	}
	c, err := loadChart(contextOf(cmd), src, setup)
	if err != nil {
		return err
	}

	series, _ := cmd.Flags().GetInt("series")
	if err := placeBisector(cmd, c, series); err != nil {
		return err
	}

	f := c.Frame()
	res := inspectResult{
		Series:  series,
		Name:    c.SeriesName(series - 1),
		Pointer: pointerOf(cmd, c),
		Index:   f.Bisector.Index,
		X:       f.Bisector.X,
		Y:       f.Bisector.Y,
	}
	if t := f.Tooltip; t != nil {
		res.Matched = true
		res.Date = t.Date
		res.Value = t.Value
		res.Record = t.Record
	} else {
		res.Index = -1
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// addBisectorFlags registers --series, --at and --pixel.
func addBisectorFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("series", "s", 0, "series to select, 1-based")
	cmd.Flags().String("at", "", "x value to inspect, read like the data")
	cmd.Flags().Float64("pixel", 0, "outer-box pixel to inspect")
	cmd.MarkFlagsMutuallyExclusive("at", "pixel")
}

// pointerOf returns the pointer pixel given by --at or --pixel.
func pointerOf(cmd *cobra.Command, c *engine.Chart) float64 {
	if cmd.Flags().Changed("pixel") {
		px, _ := cmd.Flags().GetFloat64("pixel")
		return px
	}
	at, _ := cmd.Flags().GetString("at")
	px, _ := c.PixelAt(at)
	return px
}

// placeBisector selects series (1-based) at the pointer from --at or --pixel.
func placeBisector(cmd *cobra.Command, c *engine.Chart, series int) error {
	var px float64
	switch {
	case cmd.Flags().Changed("pixel"):
		px, _ = cmd.Flags().GetFloat64("pixel")
	case cmd.Flags().Changed("at"):
		at, _ := cmd.Flags().GetString("at")
		var err error
		if px, err = c.PixelAt(at); err != nil {
			return err
		}
	default:
		return fmt.Errorf("one of --at or --pixel is required")
	}

	if !c.Apply(events.SelectLineMsg{Series: series - 1, X: px}) {
		if series < 1 || series > len(c.Data()) {
			return fmt.Errorf("no series %d", series)
		}
		return fmt.Errorf("series %d is hidden", series)
	}
	return nil
}

func init() {
	addBisectorFlags(inspectCmd)
	rootCmd.AddCommand(inspectCmd)
}
