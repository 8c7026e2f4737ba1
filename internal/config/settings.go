package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// Settings holds all user-configurable application settings organized by category.
type Settings struct {
	Chart   ChartSettings   `json:"chart"`
	Data    DataSettings    `json:"data"`
	Display DisplaySettings `json:"display"`
	General GeneralSettings `json:"general"`
}

// ChartSettings contains the outer geometry of the chart.
type ChartSettings struct {
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	MarginTop    float64 `json:"margin_top"`
	MarginRight  float64 `json:"margin_right"`
	MarginBottom float64 `json:"margin_bottom"`
	MarginLeft   float64 `json:"margin_left"`
	XTicks       int     `json:"x_ticks"`
	YTicks       int     `json:"y_ticks"`
}

// DataSettings tells the chart how to read records.
type DataSettings struct {
	XKey            string `json:"x_key"`
	YKey            string `json:"y_key"`
	DateFormat      string `json:"date_format"`
	PointDateFormat string `json:"point_date_format"`
	CategoryKey     string `json:"category_key"`
	SeriesBy        string `json:"series_by"`
	Table           string `json:"table"`
}

// DisplaySettings contains colours and terminal rendering options.
type DisplaySettings struct {
	Colors []string `json:"colors"`
	Theme  int      `json:"theme"`
}

// GeneralSettings contains application behavior settings.
type GeneralSettings struct {
	Debug          bool          `json:"debug"`
	WatchFiles     bool          `json:"watch_files"`
	ReloadDebounce time.Duration `json:"reload_debounce"`
	FetchTimeout   time.Duration `json:"fetch_timeout"`
}

const (
	ThemeAdaptive = 0
	ThemeLight    = 1
	ThemeDark     = 2
)

// SettingMeta provides metadata for a single setting (for UI rendering).
type SettingMeta struct {
	Key         string // JSON key name
	Label       string // Human-readable label
	Description string // Help text
	Type        string // "string", "int", "bool", "duration", "float64", "list"
}

// GetSettingsMetadata returns metadata for all settings organized by category.
func GetSettingsMetadata() map[string][]SettingMeta {
	return map[string][]SettingMeta{
		"Chart": {
			{Key: "width", Label: "Width", Description: "Outer chart width in pixels.", Type: "float64"},
			{Key: "height", Label: "Height", Description: "Outer chart height in pixels.", Type: "float64"},
			{Key: "margin_top", Label: "Top Margin", Description: "Space above the plotting area.", Type: "float64"},
			{Key: "margin_right", Label: "Right Margin", Description: "Space right of the plotting area.", Type: "float64"},
			{Key: "margin_bottom", Label: "Bottom Margin", Description: "Space below the plotting area (x axis).", Type: "float64"},
			{Key: "margin_left", Label: "Left Margin", Description: "Space left of the plotting area (y axis).", Type: "float64"},
			{Key: "x_ticks", Label: "X Ticks", Description: "Approximate number of ticks on the x axis.", Type: "int"},
			{Key: "y_ticks", Label: "Y Ticks", Description: "Approximate number of ticks on the y axis.", Type: "int"},
		},
		"Data": {
			{Key: "x_key", Label: "X Field", Description: "Record field plotted on the x axis.", Type: "string"},
			{Key: "y_key", Label: "Y Field", Description: "Record field plotted on the y axis.", Type: "string"},
			{Key: "date_format", Label: "Date Format", Description: "strftime pattern of the x field. Empty means numeric x.", Type: "string"},
			{Key: "point_date_format", Label: "Point Date Format", Description: "strftime pattern for dates shown in the info box.", Type: "string"},
			{Key: "category_key", Label: "Category Field", Description: "Record field used to colour series.", Type: "string"},
			{Key: "series_by", Label: "Series Field", Description: "Field used to split flat tables into series.", Type: "string"},
			{Key: "table", Label: "SQLite Table", Description: "Table read when the source is a SQLite database.", Type: "string"},
		},
		"Display": {
			{Key: "colors", Label: "Palette", Description: "Colours assigned to categories, cycled when exhausted.", Type: "list"},
			{Key: "theme", Label: "App Theme", Description: "UI Theme (System, Light, Dark).", Type: "int"},
		},
		"General": {
			{Key: "debug", Label: "Debug Log", Description: "Write a debug.log in the state directory.", Type: "bool"},
			{Key: "watch_files", Label: "Watch Files", Description: "Reload the chart when the source file changes.", Type: "bool"},
			{Key: "reload_debounce", Label: "Reload Debounce", Description: "Quiet period before reloading a changed file (e.g., 200ms).", Type: "duration"},
			{Key: "fetch_timeout", Label: "Fetch Timeout", Description: "Timeout for HTTP data sources (e.g., 10s).", Type: "duration"},
		},
	}
}

// CategoryOrder returns the order of categories for display.
func CategoryOrder() []string {
	return []string{"Chart", "Data", "Display", "General"}
}

// DefaultColors is the categorical palette used when none is configured.
var DefaultColors = []string{
	"#bd93f9",
	"#ff79c6",
	"#50fa7b",
	"#ffb86c",
	"#8be9fd",
	"#f1fa8c",
	"#ff5555",
}

// DefaultSettings returns a new Settings instance with sensible defaults.
func DefaultSettings() *Settings {
	return &Settings{
		Chart: ChartSettings{
			Width:        600,
			Height:       400,
			MarginTop:    20,
			MarginRight:  20,
			MarginBottom: 40,
			MarginLeft:   60,
			XTicks:       5,
			YTicks:       5,
		},
		Data: DataSettings{
			XKey:            "date",
			YKey:            "close",
			DateFormat:      "%Y-%m-%d",
			PointDateFormat: "%B %-d, %Y",
			CategoryKey:     "",
			SeriesBy:        "",
			Table:           "records",
		},
		Display: DisplaySettings{
			Colors: append([]string(nil), DefaultColors...),
			Theme:  ThemeAdaptive,
		},
		General: GeneralSettings{
			Debug:          false,
			WatchFiles:     false,
			ReloadDebounce: 200 * time.Millisecond,
			FetchTimeout:   10 * time.Second,
		},
	}
}

// GetSettingsPath returns the path to the settings JSON file.
func GetSettingsPath() string {
	return filepath.Join(GetConfigDir(), "settings.json")
}

// LoadSettings loads settings from disk. Returns defaults if file doesn't exist.
func LoadSettings() (*Settings, error) {
	return LoadSettingsFrom(GetSettingsPath())
}

// LoadSettingsFrom loads settings from an explicit path.
func LoadSettingsFrom(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings() // Start with defaults to fill any missing fields
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return settings, nil
}

// SaveSettings saves settings to disk atomically.
func SaveSettings(s *Settings) error {
	return SaveSettingsTo(GetSettingsPath(), s)
}

// SaveSettingsTo writes settings to path. Concurrent writers are serialized
// through a lock file next to the settings file.
func SaveSettingsTo(path string, s *Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("locking settings: %w", err)
	}
	defer func() { _ = lock.Unlock() }()

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	// Atomic write: write to temp file, then rename
	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return err
	}

	return os.Rename(tempPath, path)
}

// ChartConfig is the app-level view of the settings that shape a chart.
// Flags from the command line are applied on top of it.
type ChartConfig struct {
	Width           float64
	Height          float64
	MarginTop       float64
	MarginRight     float64
	MarginBottom    float64
	MarginLeft      float64
	XKey            string
	YKey            string
	DateFormat      string
	PointDateFormat string
	Category        string
	Colors          []string
	XTicks          int
	YTicks          int
	XTickValues     []string
	YTickValues     []string
}

// ToChartConfig creates a ChartConfig from user Settings.
func (s *Settings) ToChartConfig() *ChartConfig {
	return &ChartConfig{
		Width:           s.Chart.Width,
		Height:          s.Chart.Height,
		MarginTop:       s.Chart.MarginTop,
		MarginRight:     s.Chart.MarginRight,
		MarginBottom:    s.Chart.MarginBottom,
		MarginLeft:      s.Chart.MarginLeft,
		XKey:            s.Data.XKey,
		YKey:            s.Data.YKey,
		DateFormat:      s.Data.DateFormat,
		PointDateFormat: s.Data.PointDateFormat,
		Category:        s.Data.CategoryKey,
		Colors:          append([]string(nil), s.Display.Colors...),
		XTicks:          s.Chart.XTicks,
		YTicks:          s.Chart.YTicks,
	}
}
