package types

import "github.com/linescope/linescope/internal/config"

// ConvertChartConfig converts the app-level ChartConfig to the engine-level ChartConfig.
func ConvertChartConfig(cc *config.ChartConfig) *ChartConfig {
	return &ChartConfig{
		Dimensions: Dimensions{
			Width:  cc.Width,
			Height: cc.Height,
			Margins: Margins{
				Top:    cc.MarginTop,
				Right:  cc.MarginRight,
				Bottom: cc.MarginBottom,
				Left:   cc.MarginLeft,
			},
		},
		XKey:            cc.XKey,
		YKey:            cc.YKey,
		DateFormat:      cc.DateFormat,
		PointDateFormat: cc.PointDateFormat,
		CategoryKey:     cc.Category,
		Colors:          append([]string(nil), cc.Colors...),
		XTicks:          cc.XTicks,
		YTicks:          cc.YTicks,
		XTickValues:     append([]string(nil), cc.XTickValues...),
		YTickValues:     append([]string(nil), cc.YTickValues...),
	}
}
