package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/linescope/linescope/internal/engine"
)

// TooltipModel is the info box for the bisector match.
type TooltipModel struct {
	Tooltip *engine.Tooltip
	Width   int
}

// View renders the box, or nothing while no record is matched.
func (m TooltipModel) View() string {
	t := m.Tooltip
	if t == nil {
		return ""
	}
	border := StrokeStyle(t.Color, 1).GetForeground()
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)
	if m.Width > 4 {
		box = box.Width(m.Width - 2)
	}

	title := lipgloss.NewStyle().Bold(true).Render(t.Date)
	value := lipgloss.NewStyle().Foreground(border).Render(t.Series) + ": " + t.Value
	id := lipgloss.NewStyle().Faint(true).Render("id " + t.RecordID)
	return box.Render(lipgloss.JoinVertical(lipgloss.Left, title, value, id))
}
