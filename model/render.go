package model

// DefaultLegendLimit is the number of legend entries shown when none is requested
const DefaultLegendLimit = 6

// RenderConfig is built once per request and never modified afterwards
type RenderConfig struct {
	// number of legend entries, also drives the canvas height
	MaxEntries int

	BarWidthPx         float64
	BarHeightPx        float64
	BaseCanvasHeightPx float64
}

// NewRenderConfig returns the render configuration for the given legend limit
// a limit lower than 1 falls back to DefaultLegendLimit
func NewRenderConfig(maxEntries int) RenderConfig {
	if maxEntries < 1 {
		maxEntries = DefaultLegendLimit
	}

	return RenderConfig{
		MaxEntries:         maxEntries,
		BarWidthPx:         300,
		BarHeightPx:        8,
		BaseCanvasHeightPx: 165,
	}
}
