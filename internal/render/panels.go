package render

import (
	"fmt"
	"math"
	"time"

	"github.com/huangsam/pubviz/schema"
)

// halfWeek is how far a weekly value extends on each side of its bucket key.
const halfWeek = 3.5 * 24 * time.Hour

// durationTickStep is the spacing of the duration axis ticks in seconds.
const durationTickStep = 30 * 60

// BuildFigure assembles the count, rate and duration panels.
func BuildFigure(title string, weeks []schema.WeeklyBucket, stats []schema.BoxStats) Figure {
	if title == "" {
		title = schema.DefaultTitle
	}
	return Figure{
		Title: title,
		Panels: []Panel{
			CountPanel(weeks),
			RatePanel(weeks),
			DurationPanel(stats),
		},
	}
}

// CountPanel stacks unpublished commits under published commits per week.
// The top of the stack is the number of commits built.
func CountPanel(weeks []schema.WeeklyBucket) Panel {
	maxBuilt := 0
	unpublished := make([]float64, len(weeks))
	builtTotal := make([]float64, len(weeks))
	for i, w := range weeks {
		unpublished[i] = float64(w.Unpublished())
		builtTotal[i] = float64(w.Built)
		maxBuilt = max(maxBuilt, w.Built)
	}
	xMin, xMax := weekRange(weeks)
	yMax := float64(maxBuilt) * 1.1
	if yMax == 0 {
		yMax = 1
	}

	return Panel{
		YLabel:  "Commits",
		XMin:    xMin,
		XMax:    xMax,
		YMin:    0,
		YMax:    yMax,
		YFormat: func(v float64) string { return fmt.Sprintf("%.0f", v) },
		Legend:  true,
		Series: []Series{
			stepSeries("Built", ColorBlue, weeks, zeros(len(weeks)), unpublished),
			stepSeries("Published", ColorLightBlue, weeks, unpublished, builtTotal),
		},
	}
}

// RatePanel stacks the published share under the unpublished share per week.
// Weeks without builds contribute zero to both layers.
func RatePanel(weeks []schema.WeeklyBucket) Panel {
	rate := make([]float64, len(weeks))
	total := make([]float64, len(weeks))
	for i, w := range weeks {
		rate[i] = w.Rate()
		if w.Built > 0 {
			total[i] = 100
		}
	}
	xMin, xMax := weekRange(weeks)

	ticks := make([]Tick, 0, 6)
	for v := 0; v <= 100; v += 20 {
		ticks = append(ticks, Tick{Value: float64(v), Label: fmt.Sprintf("%d%%", v)})
	}

	return Panel{
		YLabel: "Publication Rate",
		XMin:   xMin,
		XMax:   xMax,
		YMin:   0,
		YMax:   100,
		YTicks: ticks,
		Series: []Series{
			stepSeries("Published", ColorGreen, weeks, zeros(len(weeks)), rate),
			stepSeries("Unpublished", ColorRed, weeks, rate, total),
		},
	}
}

// DurationPanel draws one box per month, labelled YYYY-MM, capped at the duration ceiling.
func DurationPanel(stats []schema.BoxStats) Panel {
	boxes := make([]Box, len(stats))
	slots := float64(max(len(stats), 1))
	xTicks := make([]Tick, 0, len(stats)+2)
	// unlabelled bounds keep half a slot of room on both sides
	xTicks = append(xTicks, Tick{Value: 0.5})
	for i, s := range stats {
		pos := float64(i + 1)
		label := s.Month.Format(schema.MonthLabelFormat)
		boxes[i] = Box{X: pos, Label: label, Stats: s}
		xTicks = append(xTicks, Tick{Value: pos, Label: label})
	}
	xTicks = append(xTicks, Tick{Value: slots + 0.5})

	yTicks := make([]Tick, 0, schema.DurationCeiling/durationTickStep+1)
	for v := 0; v <= schema.DurationCeiling; v += durationTickStep {
		yTicks = append(yTicks, Tick{Value: float64(v), Label: schema.FormatDuration(float64(v))})
	}

	return Panel{
		YLabel:  "Image Build Time",
		XMin:    0.5,
		XMax:    slots + 0.5,
		YMin:    0,
		YMax:    schema.DurationCeiling,
		XTicks:  xTicks,
		YTicks:  yTicks,
		Boxes:   boxes,
		BoxPlot: true,
	}
}

// stepSeries expands weekly values into a step outline centered on each bucket key.
func stepSeries(name, color string, weeks []schema.WeeklyBucket, lower, upper []float64) Series {
	s := Series{
		Name:  name,
		Color: color,
		X:     make([]float64, 0, 2*len(weeks)),
		Lower: make([]float64, 0, 2*len(weeks)),
		Upper: make([]float64, 0, 2*len(weeks)),
	}
	for i, w := range weeks {
		left := unixSeconds(w.WeekEnd.Add(-halfWeek))
		right := unixSeconds(w.WeekEnd.Add(halfWeek))
		s.X = append(s.X, left, right)
		s.Lower = append(s.Lower, lower[i], lower[i])
		s.Upper = append(s.Upper, upper[i], upper[i])
	}
	return s
}

// weekRange spans the first to the last bucket key.
// A single week is widened to its own step so the panel has a width.
func weekRange(weeks []schema.WeeklyBucket) (float64, float64) {
	if len(weeks) == 0 {
		return 0, 1
	}
	first, last := weeks[0].WeekEnd, weeks[len(weeks)-1].WeekEnd
	if !last.After(first) {
		return unixSeconds(first.Add(-halfWeek)), unixSeconds(last.Add(halfWeek))
	}
	return unixSeconds(first), unixSeconds(last)
}

func unixSeconds(t time.Time) float64 {
	return float64(t.Unix())
}

func zeros(n int) []float64 {
	return make([]float64, n)
}

// clamp limits v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
