package types

// Chart defaults
const (
	DefaultTicksCount      = 5
	DefaultPointDateFormat = "%B %-d, %Y"
	DefaultStroke          = "black"

	// DimmedOpacity is applied to non-targeted series while a series is
	// being bisected.
	DimmedOpacity = 0.2
)

// ChartConfig contains everything the engine needs besides the data itself.
type ChartConfig struct {
	Dimensions Dimensions

	XKey string
	YKey string

	// DateFormat is a strftime pattern. When set the x axis is temporal.
	DateFormat string
	// PointDateFormat formats the matched date in the bisector info box.
	PointDateFormat string

	CategoryKey string
	Colors      []string

	XTicks int
	YTicks int

	// Custom tick values, parsed through the axis accessor.
	XTickValues []string
	YTickValues []string
}

// TickCounts returns the configured tick counts with defaults applied.
func (c ChartConfig) TickCounts() (x, y int) {
	x, y = c.XTicks, c.YTicks
	if x <= 0 {
		x = DefaultTicksCount
	}
	if y <= 0 {
		y = DefaultTicksCount
	}
	return x, y
}

// PointFormat returns the date format for the info box.
func (c ChartConfig) PointFormat() string {
	if c.PointDateFormat == "" {
		return DefaultPointDateFormat
	}
	return c.PointDateFormat
}
