// Package badge renders the "most used languages" card as a standalone SVG document
package badge

import (
	"bytes"
	"strconv"

	"github.com/FlorianRuen/langs-badge/model"
)

const (
	// CanvasWidthPx is the fixed width of the card
	CanvasWidthPx = 350

	// RowHeightPx is the vertical space taken by a row of two legend entries
	RowHeightPx = 25

	// ColumnOffsetPx is the horizontal position of the second legend column
	ColumnOffsetPx = 150

	title        = "Most Used Languages"
	emptyMessage = "No languages found"
)

// Segment is a single colored part of the progress bar
type Segment struct {
	X     float64
	Width float64
	Color string
}

// LegendItem is a dot + label placed in the two columns legend
type LegendItem struct {
	Row        int
	Column     int
	TranslateX int
	TranslateY int
	Name       string
	Color      string
	Percentage string
}

type segmentView struct {
	X     string
	Width string
	Color string
}

type document struct {
	Width        string
	Height       string
	CardWidth    int
	BarWidth     string
	BarHeight    string
	Title        string
	Segments     []segmentView
	Legend       []LegendItem
	Empty        bool
	EmptyMessage string
}

// Render builds the SVG document
// every entry is drawn in the bar, only the first cfg.MaxEntries appear in the legend
// with no entries, an empty bar and a "no data" label are rendered
func Render(entries []model.LanguageEntry, cfg model.RenderConfig) (string, error) {
	doc := document{
		Width:        strconv.Itoa(CanvasWidthPx),
		Height:       formatFloat(CanvasHeight(cfg)),
		CardWidth:    CanvasWidthPx - 1,
		BarWidth:     formatFloat(cfg.BarWidthPx),
		BarHeight:    formatFloat(cfg.BarHeightPx),
		Title:        title,
		Legend:       Legend(entries, cfg.MaxEntries),
		Empty:        len(entries) == 0,
		EmptyMessage: emptyMessage,
	}

	for _, s := range Segments(entries, cfg.BarWidthPx) {
		doc.Segments = append(doc.Segments, segmentView{
			X:     strconv.FormatFloat(s.X, 'f', 2, 64),
			Width: strconv.FormatFloat(s.Width, 'f', 2, 64),
			Color: s.Color,
		})
	}

	var buf bytes.Buffer
	if err := badgeTemplate.Execute(&buf, doc); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// Segments lays out the entries left to right, each one starting where the previous ended
func Segments(entries []model.LanguageEntry, barWidth float64) []Segment {
	segments := make([]Segment, 0, len(entries))

	x := 0.0
	for _, e := range entries {
		width := barWidth * e.Share / 100
		segments = append(segments, Segment{X: x, Width: width, Color: e.Color})
		x += width
	}

	return segments
}

// Legend places the first limit entries in two columns
// entry i goes to row i/2 and column i%2, the first row is already shifted by one row height
func Legend(entries []model.LanguageEntry, limit int) []LegendItem {
	if limit < 0 {
		limit = 0
	}

	if limit > len(entries) {
		limit = len(entries)
	}

	items := make([]LegendItem, 0, limit)
	for i, e := range entries[:limit] {
		row, column := i/2, i%2
		items = append(items, LegendItem{
			Row:        row,
			Column:     column,
			TranslateX: column * ColumnOffsetPx,
			TranslateY: (row + 1) * RowHeightPx,
			Name:       e.Name,
			Color:      e.Color,
			Percentage: e.Percentage,
		})
	}

	return items
}

// CanvasHeight grows by half a row for each legend entry above the default limit
func CanvasHeight(cfg model.RenderConfig) float64 {
	extra := cfg.MaxEntries - model.DefaultLegendLimit
	if extra < 0 {
		extra = 0
	}

	return cfg.BaseCanvasHeightPx + float64(extra)*RowHeightPx/2
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
