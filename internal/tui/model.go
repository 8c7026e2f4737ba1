package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/linescope/linescope/internal/config"
	"github.com/linescope/linescope/internal/engine"
	"github.com/linescope/linescope/internal/engine/types"
	"github.com/linescope/linescope/internal/source"
	"github.com/linescope/linescope/internal/utils"
)

type UIState int

const (
	ChartState    UIState = iota // Plot, legend and info box
	SettingsState                // Read-only settings overlay
)

// Options configure a terminal chart session.
type Options struct {
	Source   string
	Load     source.Options
	Chart    types.ChartConfig
	Settings *config.Settings
	Watch    bool
	Debounce time.Duration
}

type RootModel struct {
	chart *engine.Chart
	opts  Options

	width  int
	height int
	state  UIState
	keys   KeyMap
	help   help.Model

	// Plot area in cells and its top-left corner on screen
	cols, rows   int
	plotX, plotY int
	cursor       int // pointer column, -1 before the first move

	loading  bool
	loadedAt time.Time
	status   string

	events chan tea.Msg // Watcher notifications
	ctx    context.Context
	cancel context.CancelFunc

	SettingsActiveTab   int
	SettingsSelectedRow int
}

// InitialRootModel creates the model. The chart is drawn without margins:
// axes and labels are laid out around the plot by the view.
func InitialRootModel(opts Options) RootModel {
	cfg := opts.Chart
	cfg.Dimensions = types.Dimensions{}
	if opts.Settings == nil {
		opts.Settings = config.DefaultSettings()
	}

	ctx, cancel := context.WithCancel(context.Background())
	m := RootModel{
		chart:   engine.NewChart(cfg),
		opts:    opts,
		state:   ChartState,
		keys:    Keys,
		help:    help.New(),
		cursor:  -1,
		loading: true,
		events:  make(chan tea.Msg, EventChannelBuffer),
		ctx:     ctx,
		cancel:  cancel,
	}
	utils.Debug("tui: session %s for %s", m.chart.ID, opts.Source)
	return m
}

func (m RootModel) Init() tea.Cmd {
	cmds := []tea.Cmd{loadCmd(m.ctx, m.opts.Source, m.opts.Load)}
	if m.opts.Watch && !utils.IsURL(m.opts.Source) {
		cmds = append(cmds, watchCmd(m.ctx, m.opts.Source, m.opts.Debounce, m.events))
		cmds = append(cmds, listenForActivity(m.events))
	}
	return tea.Batch(cmds...)
}

// Chart exposes the chart session.
func (m RootModel) Chart() *engine.Chart { return m.chart }

// layout sizes the plot from the terminal size.
func (m *RootModel) layout() {
	m.cols = m.width - 2*DefaultPaddingX - YAxisWidth - LegendWidth
	m.rows = m.height - HeaderHeight - XAxisHeight - StatusBarHeight - 1 // help line
	m.cols = max(m.cols, MinPlotCols)
	m.rows = max(m.rows, MinPlotRows)
	m.plotX = DefaultPaddingX + YAxisWidth
	m.plotY = HeaderHeight
	m.cursor = utils.Clamp(m.cursor, -1, m.cols-1)
}
