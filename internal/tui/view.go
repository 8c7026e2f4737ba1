package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/linescope/linescope/internal/tui/components"
	"github.com/linescope/linescope/internal/utils"
)

func (m RootModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.state == SettingsState {
		return m.viewSettings()
	}

	f := m.chart.Frame()

	// --- HEADER ---
	stats := utils.SourceName(m.opts.Source)
	switch {
	case m.loading:
		stats += " · loading…"
	case !m.loadedAt.IsZero():
		stats += fmt.Sprintf(" · %d series · %s", len(f.Series), m.loadedAt.Format("15:04:05"))
	}
	header := HeaderStyle.Width(m.width - 2*DefaultPaddingX).Render(
		lipgloss.JoinHorizontal(lipgloss.Left, "linescope", StatsStyle.Render(stats)),
	)

	// --- PLOT WITH AXES ---
	yAxis := components.YAxisView(f.YTicks, f.Dimensions.BoundedHeight, m.rows, YAxisWidth, AxisLabelStyle, AxisStyle)
	plot := components.NewPlotModel(f, m.cols, m.rows, m.cursor).View()
	xAxis := components.XAxisView(f.XTicks, f.Dimensions.BoundedWidth, m.cols, AxisLabelStyle, AxisStyle)
	chart := lipgloss.JoinHorizontal(lipgloss.Top, yAxis, plot)
	chart = lipgloss.JoinVertical(lipgloss.Left, chart, lipgloss.NewStyle().PaddingLeft(YAxisWidth).Render(xAxis))

	// --- SIDEBAR: LEGEND + INFO BOX ---
	legend := PanelStyle.Width(LegendWidth - 2).Render(components.NewLegendModel(f, LegendWidth-4).View())
	tooltip := components.TooltipModel{Tooltip: f.Tooltip, Width: LegendWidth}.View()
	sidebar := lipgloss.JoinVertical(lipgloss.Left, legend, tooltip)

	body := lipgloss.JoinHorizontal(lipgloss.Top, chart, sidebar)

	// --- STATUS + HELP ---
	status := StatusBarStyle.Render(m.status)
	if f.Err != nil {
		status = ErrorStyle.Render("error: " + f.Err.Error())
	} else if f.Degenerate {
		status = StatusBarStyle.Render("window too small to plot")
	}

	return AppStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		header,
		body,
		status,
		m.help.View(m.keys),
	))
}

// renderBtopBox draws content in a rounded box with the title set into the
// top border.
func renderBtopBox(title, content string, width, height int, color lipgloss.TerminalColor) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Width(width - 2).
		Height(height - 2).
		Render(content)

	lines := strings.Split(box, "\n")
	label := " " + title + " "
	fill := width - 3 - lipgloss.Width(label)
	if fill < 0 || len(lines) == 0 {
		return box
	}
	border := lipgloss.NewStyle().Foreground(color)
	lines[0] = border.Render("╭─") +
		lipgloss.NewStyle().Foreground(color).Bold(true).Render(label) +
		border.Render(strings.Repeat("─", fill)+"╮")
	return strings.Join(lines, "\n")
}
