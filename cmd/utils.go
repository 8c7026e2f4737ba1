package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/linescope/linescope/internal/config"
	"github.com/linescope/linescope/internal/engine"
	"github.com/linescope/linescope/internal/engine/events"
	"github.com/linescope/linescope/internal/engine/types"
	"github.com/linescope/linescope/internal/source"
	"github.com/linescope/linescope/internal/utils"
)

// addChartFlags registers the flags that shape how a source is read and
// charted. Unset flags fall back to settings.json.
func addChartFlags(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.String("x", "", "record field plotted on the x axis")
	f.String("y", "", "record field plotted on the y axis")
	f.String("date-format", "", "strftime pattern of the x field (\"\" for numeric x)")
	f.String("point-date-format", "", "strftime pattern for the matched date")
	f.String("category", "", "record field used to colour series")
	f.String("series-by", "", "field used to split a flat table into series")
	f.StringSlice("colors", nil, "palette colours, cycled when exhausted")
	f.Float64("width", 0, "outer chart width in pixels")
	f.Float64("height", 0, "outer chart height in pixels")
	f.Int("x-ticks", 0, "approximate number of x axis ticks")
	f.Int("y-ticks", 0, "approximate number of y axis ticks")
	f.StringSlice("x-tick-values", nil, "explicit x tick values, read like the data")
	f.StringSlice("y-tick-values", nil, "explicit y tick values")
	f.String("table", "", "table to read from a SQLite source")
	f.String("query", "", "SQL query to run against a SQLite source")
	f.String("input-format", "", "source format: json, csv or sqlite (default: detect)")
	f.Bool("debug", false, "write a debug log to the state directory")
}

// chartSetup is everything a command needs to load and chart a source.
type chartSetup struct {
	Settings *config.Settings
	Chart    types.ChartConfig
	Load     source.Options
}

// resolveSetup loads settings.json and applies the command line on top.
func resolveSetup(cmd *cobra.Command) (*chartSetup, error) {
	settings, err := config.LoadSettings()
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("x") {
		settings.Data.XKey, _ = flags.GetString("x")
	}
	if flags.Changed("y") {
		settings.Data.YKey, _ = flags.GetString("y")
	}
	if flags.Changed("date-format") {
		settings.Data.DateFormat, _ = flags.GetString("date-format")
	}
	if flags.Changed("point-date-format") {
		settings.Data.PointDateFormat, _ = flags.GetString("point-date-format")
	}
	if flags.Changed("category") {
		settings.Data.CategoryKey, _ = flags.GetString("category")
	}
	if flags.Changed("series-by") {
		settings.Data.SeriesBy, _ = flags.GetString("series-by")
	}
	if flags.Changed("table") {
		settings.Data.Table, _ = flags.GetString("table")
	}
	if flags.Changed("colors") {
		settings.Display.Colors, _ = flags.GetStringSlice("colors")
	}
	if flags.Changed("width") {
		settings.Chart.Width, _ = flags.GetFloat64("width")
	}
	if flags.Changed("height") {
		settings.Chart.Height, _ = flags.GetFloat64("height")
	}
	if flags.Changed("x-ticks") {
		settings.Chart.XTicks, _ = flags.GetInt("x-ticks")
	}
	if flags.Changed("y-ticks") {
		settings.Chart.YTicks, _ = flags.GetInt("y-ticks")
	}
	if flags.Changed("debug") {
		settings.General.Debug, _ = flags.GetBool("debug")
	}
	utils.ConfigureDebug(settings.General.Debug, config.GetStateDir())

	cc := settings.ToChartConfig()
	cc.XTickValues, _ = flags.GetStringSlice("x-tick-values")
	cc.YTickValues, _ = flags.GetStringSlice("y-tick-values")

	load := source.Options{
		SeriesBy: settings.Data.SeriesBy,
		Table:    settings.Data.Table,
		Timeout:  settings.General.FetchTimeout,
	}
	load.Query, _ = flags.GetString("query")
	if name, _ := flags.GetString("input-format"); name != "" {
		format, err := source.ParseFormat(name)
		if err != nil {
			return nil, err
		}
		load.Format = format
	}

	return &chartSetup{
		Settings: settings,
		Chart:    *types.ConvertChartConfig(cc),
		Load:     load,
	}, nil
}

// loadChart reads src and returns a chart session holding its data.
func loadChart(ctx context.Context, src string, setup *chartSetup) (*engine.Chart, error) {
	ds, err := source.Load(ctx, src, setup.Load)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", utils.SourceName(src), err)
	}
	c := engine.NewChart(setup.Chart)
	c.Apply(events.DataLoadedMsg{Source: src, Dataset: ds})
	utils.Debug("cmd: loaded %d records in %d series from %s", ds.Len(), len(ds), src)
	return c, nil
}

// openOutput returns stdout for "" or "-", otherwise a created file.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// contextOf returns the command context, which is nil when a command is run
// directly in tests.
func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// exitOnError prints err the way every command reports failures.
func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
