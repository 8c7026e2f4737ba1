package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the chart key bindings.
type KeyMap struct {
	Left       key.Binding
	Right      key.Binding
	NextSeries key.Binding
	PrevSeries key.Binding
	Toggle     key.Binding
	Reset      key.Binding
	Copy       key.Binding
	Reload     key.Binding
	Settings   key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// Keys is the default key map.
var Keys = KeyMap{
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "move left"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "move right"),
	),
	NextSeries: key.NewBinding(
		key.WithKeys("tab", "j"),
		key.WithHelp("tab", "next series"),
	),
	PrevSeries: key.NewBinding(
		key.WithKeys("shift+tab", "k"),
		key.WithHelp("shift+tab", "prev series"),
	),
	Toggle: key.NewBinding(
		key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
		key.WithHelp("1-9", "show/hide series"),
	),
	Reset: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "clear selection"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy record"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Settings: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "settings"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextSeries, k.Left, k.Right, k.Toggle, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.NextSeries, k.PrevSeries},
		{k.Toggle, k.Reset, k.Copy},
		{k.Reload, k.Settings, k.Help, k.Quit},
	}
}

// SettingsKeyMap is active while the settings overlay is open.
type SettingsKeyMap struct {
	Tab   key.Binding
	Up    key.Binding
	Down  key.Binding
	Close key.Binding
}

var SettingsKeys = SettingsKeyMap{
	Tab: key.NewBinding(
		key.WithKeys("1", "2", "3", "4", "tab"),
		key.WithHelp("1-4/tab", "category"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Close: key.NewBinding(
		key.WithKeys("esc", "s", "q"),
		key.WithHelp("esc", "close"),
	),
}

func (k SettingsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Up, k.Down, k.Close}
}

func (k SettingsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
