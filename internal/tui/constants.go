package tui

const (
	// Layout Offsets and Padding
	DefaultPaddingX = 1
	DefaultPaddingY = 0

	// Plot area
	LegendWidth     = 24
	YAxisWidth      = 10
	HeaderHeight    = 2
	XAxisHeight     = 2
	StatusBarHeight = 1
	MinPlotCols     = 10
	MinPlotRows     = 4

	// Braille cells are 2 dots wide and 4 dots high; chart pixels are dots.
	DotsPerCol = 2
	DotsPerRow = 4

	// Channel Buffers
	EventChannelBuffer = 16
)
