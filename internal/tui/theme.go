package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/linescope/linescope/internal/config"
	"github.com/linescope/linescope/internal/utils"
)

// ApplyTheme sets the colour profile from the environment (NO_COLOR,
// CLICOLOR_FORCE, TERM) and the background from the theme setting.
func ApplyTheme(theme int) termenv.Profile {
	profile := termenv.EnvColorProfile()
	lipgloss.SetColorProfile(profile)

	switch theme {
	case config.ThemeLight:
		lipgloss.SetHasDarkBackground(false)
	case config.ThemeDark:
		lipgloss.SetHasDarkBackground(true)
	}
	utils.Debug("tui: colour profile %d, theme %d", profile, theme)
	return profile
}
