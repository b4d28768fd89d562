// Package render turns aggregates into a three-panel chart and shows it.
//
// Building the figure, drawing it and displaying it are separate steps:
// the panel builders are pure, Draw encodes a Figure to PNG or SVG bytes,
// and a Displayer decides what happens to those bytes.
package render

import "github.com/huangsam/pubviz/schema"

// Palette used by every panel.
const (
	ColorBlue      = "#2171b5"
	ColorLightBlue = "#6baed6"
	ColorGreen     = "#74c476"
	ColorRed       = "#fb6a4a"
)

// Figure is a titled stack of panels sharing the full image width.
type Figure struct {
	Title  string
	Panels []Panel
}

// Tick is a labelled axis position.
type Tick struct {
	Value float64
	Label string
}

// Panel is one chart of the figure. Area panels carry Series, box panels carry Boxes.
type Panel struct {
	YLabel     string
	XMin, XMax float64
	YMin, YMax float64
	XTicks     []Tick // nil hides the x axis labels
	YTicks     []Tick // nil lets the drawing backend choose
	YFormat    func(float64) string
	Legend     bool
	Series     []Series
	Boxes      []Box
	BoxPlot    bool // draw Boxes, even when there are none
}

// Series is one layer of a stacked area. The layer fills between Lower and Upper.
type Series struct {
	Name  string
	Color string
	X     []float64
	Lower []float64
	Upper []float64
}

// Box is one box-and-whisker glyph at position X.
type Box struct {
	X     float64
	Label string
	Stats schema.BoxStats
}

// IsBoxPanel reports whether the panel draws boxes instead of areas.
func (p Panel) IsBoxPanel() bool {
	return p.BoxPlot
}
