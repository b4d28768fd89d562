package render

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/huangsam/pubviz/schema"
)

// titleBand is the room reserved above the first panel for the figure title.
const titleBand = 40

// Draw encodes the figure as a PNG or SVG image of the given size.
// Panels share the width and split the height evenly.
func Draw(fig Figure, format schema.ImageFormat, width, height int) ([]byte, error) {
	if len(fig.Panels) == 0 {
		return nil, fmt.Errorf("figure has no panels")
	}
	provider, err := rendererFor(format)
	if err != nil {
		return nil, err
	}

	panelHeight := height / len(fig.Panels)
	parts := make([][]byte, 0, len(fig.Panels))
	heights := make([]int, 0, len(fig.Panels))
	for i, p := range fig.Panels {
		h := panelHeight
		if i == len(fig.Panels)-1 {
			h = height - panelHeight*(len(fig.Panels)-1)
		}
		title := ""
		if i == 0 {
			title = fig.Title
		}
		var buf bytes.Buffer
		if err := panelChart(p, title, width, h).Render(provider, &buf); err != nil {
			return nil, fmt.Errorf("panel %d (%s): %w", i+1, p.YLabel, err)
		}
		parts = append(parts, buf.Bytes())
		heights = append(heights, h)
	}

	if format == schema.SVGFormat {
		return stackSVG(parts, heights, width, height)
	}
	return stackPNG(parts, width, height)
}

// rendererFor maps an image format to a go-chart renderer provider.
func rendererFor(format schema.ImageFormat) (chart.RendererProvider, error) {
	switch format {
	case schema.PNGFormat, "":
		return chart.PNG, nil
	case schema.SVGFormat:
		return chart.SVG, nil
	default:
		return nil, fmt.Errorf("unsupported image format: %s", format)
	}
}

// panelChart translates one panel into a go-chart chart.
func panelChart(p Panel, title string, width, height int) chart.Chart {
	ch := chart.Chart{
		Width:  width,
		Height: height,
		Background: chart.Style{
			Padding: chart.Box{Top: 10, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			Range: &chart.ContinuousRange{Min: p.XMin, Max: p.XMax},
		},
		YAxis: chart.YAxis{
			Name:  p.YLabel,
			Range: &chart.ContinuousRange{Min: p.YMin, Max: p.YMax},
		},
	}
	if title != "" {
		ch.Title = title
		ch.TitleStyle = chart.Style{FontSize: 14}
		ch.Background.Padding.Top = titleBand
	}

	if p.XTicks == nil {
		ch.XAxis.Style = chart.Hidden()
	} else {
		ch.XAxis.Ticks = toChartTicks(p.XTicks)
	}
	if p.YTicks != nil {
		ch.YAxis.Ticks = toChartTicks(p.YTicks)
	}
	if p.YFormat != nil {
		format := p.YFormat
		ch.YAxis.ValueFormatter = func(v interface{}) string {
			if f, ok := v.(float64); ok {
				return format(f)
			}
			return fmt.Sprint(v)
		}
	}

	if p.IsBoxPanel() {
		ch.Series = []chart.Series{boxSeries{
			style: chart.Style{
				FillColor:   drawing.ColorFromHex(ColorLightBlue).WithAlpha(160),
				StrokeColor: drawing.ColorFromHex(ColorBlue),
				StrokeWidth: 1,
				DotColor:    drawing.ColorFromHex(ColorRed),
			},
			boxes: p.Boxes,
		}}
		return ch
	}

	for _, s := range p.Series {
		color := drawing.ColorFromHex(s.Color)
		ch.Series = append(ch.Series, bandSeries{
			name:  s.Name,
			style: chart.Style{FillColor: color, StrokeColor: color, StrokeWidth: 2},
			x:     s.X,
			lower: s.Lower,
			upper: s.Upper,
		})
	}
	if p.Legend {
		ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	}
	return ch
}

func toChartTicks(ticks []Tick) []chart.Tick {
	out := make([]chart.Tick, len(ticks))
	for i, t := range ticks {
		out[i] = chart.Tick{Value: t.Value, Label: t.Label}
	}
	return out
}
