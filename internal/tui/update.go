package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/linescope/linescope/internal/config"
	"github.com/linescope/linescope/internal/engine/events"
	"github.com/linescope/linescope/internal/tui/components"
	"github.com/linescope/linescope/internal/utils"
)

// hitTolerance is how far from a line, in chart pixels, a click still
// selects it.
const hitTolerance = 1.5 * DotsPerRow

// Update handles messages and updates the model
func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.chart.Apply(events.ResizeMsg{
			Width:  float64(m.cols * DotsPerCol),
			Height: float64(m.rows * DotsPerRow),
		})
		return m, nil

	case events.DataLoadedMsg:
		m.loading = false
		m.loadedAt = msg.LoadedAt
		m.chart.Apply(msg)
		m.status = fmt.Sprintf("%d records in %d series", msg.Dataset.Len(), len(msg.Dataset))
		return m, nil

	case events.DataErrorMsg:
		m.loading = false
		m.chart.Apply(msg)
		m.status = ""
		return m, nil

	case events.SourceChangedMsg:
		utils.Debug("tui: %s changed, reloading", msg.Source)
		m.loading = true
		return m, tea.Batch(loadCmd(m.ctx, m.opts.Source, m.opts.Load), listenForActivity(m.events))

	case watchFailedMsg:
		m.status = "watch failed: " + msg.err.Error()
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.status = "copy failed: " + msg.err.Error()
		} else {
			m.status = "copied record " + msg.id
		}
		return m, nil

	case tea.MouseMsg:
		if m.state != ChartState {
			return m, nil
		}
		return m.handleMouse(msg)

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) && m.state == ChartState || msg.String() == "ctrl+c" {
			m.cancel()
			return m, tea.Quit
		}
		if m.state == SettingsState {
			return m.updateSettings(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m RootModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Left):
		m.moveCursor(-1)

	case key.Matches(msg, m.keys.Right):
		m.moveCursor(1)

	case key.Matches(msg, m.keys.NextSeries):
		m.cycleSeries(1)

	case key.Matches(msg, m.keys.PrevSeries):
		m.cycleSeries(-1)

	case key.Matches(msg, m.keys.Toggle):
		i := int(msg.String()[0] - '1')
		if !m.chart.Apply(events.ToggleSeriesMsg{Series: i, Visible: !m.chart.Visible(i)}) {
			m.status = fmt.Sprintf("no series %d", i+1)
		}

	case key.Matches(msg, m.keys.Reset):
		m.chart.Apply(events.ResetBisectorMsg{})

	case key.Matches(msg, m.keys.Copy):
		r := m.chart.Bisector()
		if !r.Active || r.Record == nil {
			m.status = "nothing selected"
			return m, nil
		}
		return m, copyRecordCmd(*r.Record)

	case key.Matches(msg, m.keys.Reload):
		m.loading = true
		return m, loadCmd(m.ctx, m.opts.Source, m.opts.Load)

	case key.Matches(msg, m.keys.Settings):
		m.state = SettingsState
		m.SettingsActiveTab = 0
		m.SettingsSelectedRow = 0
	}
	return m, nil
}

// pointerX is the chart pixel under the cursor column.
func (m RootModel) pointerX() float64 {
	return components.PixelAtColumn(m.chart.Dimensions(), m.cursor, m.cols)
}

func (m *RootModel) moveCursor(delta int) {
	if m.cursor < 0 {
		m.cursor = m.cols / 2
	} else {
		m.cursor = utils.Clamp(m.cursor+delta, 0, m.cols-1)
	}
	m.chart.Apply(events.PointerMoveMsg{X: m.pointerX()})
}

// cycleSeries targets the next visible series in direction dir.
func (m *RootModel) cycleSeries(dir int) {
	n := len(m.chart.Data())
	if n == 0 {
		return
	}
	if m.cursor < 0 {
		m.cursor = m.cols / 2
	}

	start := m.chart.Bisector().Series
	if !m.chart.Bisector().Active || start < 0 {
		start = -1
		if dir < 0 {
			start = n
		}
	}
	for step := 1; step <= n; step++ {
		i := ((start+dir*step)%n + n) % n
		if m.chart.Apply(events.SelectLineMsg{Series: i, X: m.pointerX()}) {
			return
		}
	}
	m.status = "all series hidden"
}

func (m RootModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	col, row := msg.X-m.plotX, msg.Y-m.plotY
	if col < 0 || col >= m.cols || row < 0 || row >= m.rows {
		return m, nil
	}
	dims := m.chart.Dimensions()
	px := components.PixelAtColumn(dims, col, m.cols)

	switch {
	case msg.Action == tea.MouseActionMotion:
		m.cursor = col
		m.chart.Apply(events.PointerMoveMsg{X: px})

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.cursor = col
		py := components.PixelAtRow(dims, row, m.rows)
		if i := components.HitTest(m.chart.Frame(), px, py, hitTolerance); i >= 0 {
			m.chart.Apply(events.SelectLineMsg{Series: i, X: px})
		} else {
			m.chart.Apply(events.ResetBisectorMsg{})
		}
	}
	return m, nil
}

func (m RootModel) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	categories := config.CategoryOrder()
	switch {
	case key.Matches(msg, SettingsKeys.Close):
		m.state = ChartState

	case key.Matches(msg, SettingsKeys.Tab):
		if msg.String() == "tab" {
			m.SettingsActiveTab = (m.SettingsActiveTab + 1) % len(categories)
		} else {
			m.SettingsActiveTab = utils.Clamp(int(msg.String()[0]-'1'), 0, len(categories)-1)
		}
		m.SettingsSelectedRow = 0

	case key.Matches(msg, SettingsKeys.Up):
		if m.SettingsSelectedRow > 0 {
			m.SettingsSelectedRow--
		}

	case key.Matches(msg, SettingsKeys.Down):
		if m.SettingsSelectedRow < m.getSettingsCount()-1 {
			m.SettingsSelectedRow++
		}
	}
	return m, nil
}
