package tui

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/linescope/linescope/internal/config"
)

// viewSettings renders the Btop-style settings page
func (m RootModel) viewSettings() string {
	// Fixed smaller size for settings modal
	width := 70
	height := 18
	if m.width < width+4 {
		width = m.width - 4
	}
	if m.height < height+4 {
		height = m.height - 4
	}

	// Get category metadata
	categories := config.CategoryOrder()
	metadata := config.GetSettingsMetadata()

	// === TAB BAR ===
	var tabItems []string
	for i, cat := range categories {
		label := fmt.Sprintf("[%d] %s", i+1, cat)
		if i == m.SettingsActiveTab {
			tabItems = append(tabItems, ActiveTabStyle.Render(label))
		} else {
			tabItems = append(tabItems, TabStyle.Render(label))
		}
	}
	tabBar := lipgloss.JoinHorizontal(lipgloss.Left, tabItems...)

	// === CONTENT AREA ===
	currentCategory := categories[m.SettingsActiveTab]
	settingsMeta := metadata[currentCategory]
	settingsValues := m.getSettingsValues(currentCategory)

	leftWidth := 24
	rightWidth := width - leftWidth - 5

	// === LEFT COLUMN: Settings List (names only) ===
	var listLines []string
	for i, meta := range settingsMeta {
		line := meta.Label
		if i == m.SettingsSelectedRow {
			line = lipgloss.NewStyle().
				Foreground(ColorNeonPink).
				Bold(true).
				Render("> " + line)
		} else {
			line = lipgloss.NewStyle().
				Foreground(ColorLightGray).
				Render("  " + line)
		}
		listLines = append(listLines, line)
	}
	listBox := lipgloss.NewStyle().
		Width(leftWidth).
		Render(lipgloss.JoinVertical(lipgloss.Left, listLines...))

	// === VERTICAL SEPARATOR ===
	separator := lipgloss.NewStyle().
		Foreground(ColorGray).
		Render(strings.TrimSuffix(strings.Repeat("│\n", len(settingsMeta)), "\n"))

	// === RIGHT COLUMN: Value + Description ===
	var rightContent string
	if m.SettingsSelectedRow < len(settingsMeta) {
		meta := settingsMeta[m.SettingsSelectedRow]
		valueDisplay := lipgloss.NewStyle().
			Foreground(ColorNeonCyan).
			Bold(true).
			Render("Value: " + formatSettingValue(settingsValues[meta.Key], meta.Type))
		descDisplay := lipgloss.NewStyle().
			Foreground(ColorGray).
			Width(rightWidth - 2).
			Render(meta.Description)
		rightContent = valueDisplay + "\n\n" + descDisplay
	}
	rightBox := lipgloss.NewStyle().
		Width(rightWidth).
		PaddingLeft(1).
		Render(rightContent)

	content := lipgloss.JoinHorizontal(lipgloss.Top, listBox, separator, rightBox)

	pathLine := lipgloss.NewStyle().Foreground(ColorGray).Render(config.GetSettingsPath())

	fullContent := lipgloss.JoinVertical(lipgloss.Left,
		tabBar,
		"",
		content,
		"",
		pathLine,
		m.help.View(SettingsKeys),
	)

	box := renderBtopBox("Settings", fullContent, width, height, ColorNeonPink)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// getSettingsValues returns a map of setting key -> value for a category.
// Keys are the json tags of the category's struct.
func (m RootModel) getSettingsValues(category string) map[string]interface{} {
	values := make(map[string]interface{})

	var section reflect.Value
	s := reflect.ValueOf(m.opts.Settings).Elem()
	switch category {
	case "Chart":
		section = s.FieldByName("Chart")
	case "Data":
		section = s.FieldByName("Data")
	case "Display":
		section = s.FieldByName("Display")
	case "General":
		section = s.FieldByName("General")
	default:
		return values
	}

	t := section.Type()
	for i := 0; i < t.NumField(); i++ {
		tag := strings.Split(t.Field(i).Tag.Get("json"), ",")[0]
		values[tag] = section.Field(i).Interface()
	}
	return values
}

// getSettingsCount returns the number of settings in the current category
func (m RootModel) getSettingsCount() int {
	categories := config.CategoryOrder()
	metadata := config.GetSettingsMetadata()
	return len(metadata[categories[m.SettingsActiveTab]])
}

// formatSettingValue formats a setting value for display
func formatSettingValue(value interface{}, typ string) string {
	if value == nil {
		return "-"
	}

	switch typ {
	case "bool":
		if b, ok := value.(bool); ok {
			if b {
				return "True"
			}
			return "False"
		}
	case "duration":
		if d, ok := value.(time.Duration); ok {
			return d.String()
		}
	case "float64":
		if v, ok := value.(float64); ok {
			return fmt.Sprintf("%g", v)
		}
	case "list":
		if l, ok := value.([]string); ok {
			if len(l) == 0 {
				return "(none)"
			}
			return strings.Join(l, ", ")
		}
	case "string":
		if s, ok := value.(string); ok {
			if s == "" {
				return "(none)"
			}
			if len(s) > 30 {
				return s[:27] + "..."
			}
			return s
		}
	}

	// Fallback using reflection for numeric types
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Int, reflect.Int64:
		return fmt.Sprintf("%d", v.Int())
	case reflect.Float64:
		return fmt.Sprintf("%.2f", v.Float())
	default:
		return fmt.Sprintf("%v", value)
	}
}
