package render

import (
	"errors"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// bandSeries fills the area between two curves sharing the same x values.
type bandSeries struct {
	name  string
	style chart.Style
	x     []float64
	lower []float64
	upper []float64
}

// GetName implements chart.Series.
func (bs bandSeries) GetName() string { return bs.name }

// GetStyle implements chart.Series.
func (bs bandSeries) GetStyle() chart.Style { return bs.style }

// GetYAxis implements chart.Series.
func (bs bandSeries) GetYAxis() chart.YAxisType { return chart.YAxisPrimary }

// Len implements chart.ValuesProvider.
func (bs bandSeries) Len() int { return len(bs.x) }

// GetValues implements chart.ValuesProvider with the upper edge.
func (bs bandSeries) GetValues(i int) (x, y float64) { return bs.x[i], bs.upper[i] }

// GetBoundedValues lets the chart size its ranges from both edges of the band.
func (bs bandSeries) GetBoundedValues(i int) (x, y1, y2 float64) {
	return bs.x[i], bs.lower[i], bs.upper[i]
}

// Validate implements chart.Series.
func (bs bandSeries) Validate() error {
	if len(bs.x) != len(bs.lower) || len(bs.x) != len(bs.upper) {
		return errors.New("band series: mismatched value lengths")
	}
	return nil
}

// Render traces the upper edge left to right and the lower edge back, then fills.
func (bs bandSeries) Render(r chart.Renderer, canvasBox chart.Box, xrange, yrange chart.Range, defaults chart.Style) {
	if len(bs.x) == 0 {
		return
	}
	style := bs.style.InheritFrom(defaults)
	px := func(v float64) int {
		return canvasBox.Left + xrange.Translate(clamp(v, xrange.GetMin(), xrange.GetMax()))
	}
	py := func(v float64) int {
		return canvasBox.Bottom - yrange.Translate(clamp(v, yrange.GetMin(), yrange.GetMax()))
	}

	r.SetFillColor(style.FillColor)
	r.SetStrokeColor(style.FillColor)
	r.SetStrokeWidth(0)
	r.MoveTo(px(bs.x[0]), py(bs.upper[0]))
	for i := 1; i < len(bs.x); i++ {
		r.LineTo(px(bs.x[i]), py(bs.upper[i]))
	}
	for i := len(bs.x) - 1; i >= 0; i-- {
		r.LineTo(px(bs.x[i]), py(bs.lower[i]))
	}
	r.Close()
	r.Fill()
	r.ResetStyle()
}

// boxSeries draws box-and-whisker glyphs.
type boxSeries struct {
	style chart.Style
	boxes []Box
}

func (bx boxSeries) GetName() string { return "" }

func (bx boxSeries) GetStyle() chart.Style { return bx.style }

func (bx boxSeries) GetYAxis() chart.YAxisType { return chart.YAxisPrimary }

func (bx boxSeries) Len() int { return len(bx.boxes) }

// GetValues reports each box by its median.
func (bx boxSeries) GetValues(i int) (x, y float64) {
	return bx.boxes[i].X, bx.boxes[i].Stats.Median
}

// Validate implements chart.Series.
func (bx boxSeries) Validate() error {
	return nil
}

// Render draws body, median, whiskers with caps and outliers for each box.
// Values beyond the y range are clipped to it; outliers beyond it are skipped.
func (bx boxSeries) Render(r chart.Renderer, canvasBox chart.Box, xrange, yrange chart.Range, defaults chart.Style) {
	style := bx.style.InheritFrom(defaults)
	yMin, yMax := yrange.GetMin(), yrange.GetMax()
	py := func(v float64) int {
		return canvasBox.Bottom - yrange.Translate(clamp(v, yMin, yMax))
	}
	// a box spans half a slot
	halfWidth := max(2, int(float64(canvasBox.Width())/(xrange.GetMax()-xrange.GetMin())/4))
	capWidth := max(1, halfWidth/2)

	for _, b := range bx.boxes {
		cx := canvasBox.Left + xrange.Translate(b.X)
		s := b.Stats

		chart.Draw.Box(r, chart.Box{
			Top:    py(s.Q3),
			Left:   cx - halfWidth,
			Right:  cx + halfWidth,
			Bottom: py(s.Q1),
		}, chart.Style{
			FillColor:   style.FillColor,
			StrokeColor: style.StrokeColor,
			StrokeWidth: style.StrokeWidth,
		})

		line(r, style.StrokeColor, style.StrokeWidth, cx, py(s.Q1), cx, py(s.Min))
		line(r, style.StrokeColor, style.StrokeWidth, cx, py(s.Q3), cx, py(s.Max))
		line(r, style.StrokeColor, style.StrokeWidth, cx-capWidth, py(s.Min), cx+capWidth, py(s.Min))
		line(r, style.StrokeColor, style.StrokeWidth, cx-capWidth, py(s.Max), cx+capWidth, py(s.Max))
		line(r, style.DotColor, style.StrokeWidth+1, cx-halfWidth, py(s.Median), cx+halfWidth, py(s.Median))

		for _, o := range s.Outliers {
			if o < yMin || o > yMax {
				continue
			}
			r.SetFillColor(drawing.ColorTransparent)
			r.SetStrokeColor(style.StrokeColor)
			r.SetStrokeWidth(style.StrokeWidth)
			r.Circle(3, cx, py(o))
			r.Stroke()
			r.ResetStyle()
		}
	}
}

func line(r chart.Renderer, color drawing.Color, width float64, x0, y0, x1, y1 int) {
	r.SetStrokeColor(color)
	r.SetStrokeWidth(width)
	r.MoveTo(x0, y0)
	r.LineTo(x1, y1)
	r.Stroke()
	r.ResetStyle()
}
