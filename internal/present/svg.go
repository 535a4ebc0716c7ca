package present

import (
	"fmt"
	"html"
	"io"
	"slices"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"sales-dashboard/internal/aggregate"
)

const (
	DefaultWidth  = 800
	DefaultHeight = 400
)

// RenderSVG draws c as an SVG document. Bar, hbar and geo charts render as
// vertical bar charts, line charts as one series per year over the months.
func RenderSVG(w io.Writer, c Chart, width, height int) error {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	if c.Empty() {
		return placeholder(w, c.Title, width, height)
	}

	switch c.Kind {
	case KindLine:
		return renderLine(w, c, width, height)
	default:
		return renderBars(w, c, width, height)
	}
}

func renderBars(w io.Writer, c Chart, width, height int) error {
	bars := make([]chart.Value, 0, len(c.Y))
	for i, v := range c.Y {
		color := BarColor
		if i < len(c.Color) {
			color = c.Color[i]
		}
		bars = append(bars, chart.Value{
			Value: v,
			Label: c.X[i],
			Style: chart.Style{
				FillColor:   hexColor(color),
				StrokeColor: hexColor(color),
			},
		})
	}

	bc := chart.BarChart{
		Title:      c.Title,
		Width:      width,
		Height:     height,
		BarWidth:   barSlot(width, len(bars), 60),
		BarSpacing: barSlot(width, len(bars), 40),
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		YAxis: chart.YAxis{
			Name:  c.YLabel,
			Range: &chart.ContinuousRange{Min: 0, Max: ceiling(c.Y)},
		},
		Bars: bars,
	}
	return bc.Render(chart.SVG, w)
}

func renderLine(w io.Writer, c Chart, width, height int) error {
	var (
		years  []string
		series = map[string]*chart.ContinuousSeries{}
	)
	for i, v := range c.Y {
		year := ""
		if i < len(c.Color) {
			year = c.Color[i]
		}
		s, ok := series[year]
		if !ok {
			color := hexColor(Palette[len(years)%len(Palette)])
			s = &chart.ContinuousSeries{
				Name:  year,
				Style: chart.Style{StrokeColor: color, StrokeWidth: 2, DotColor: color, DotWidth: 3},
			}
			series[year] = s
			years = append(years, year)
		}
		s.XValues = append(s.XValues, float64(monthIndex(c.X[i])))
		s.YValues = append(s.YValues, v)
	}

	all := make([]chart.Series, 0, len(years))
	for _, year := range years {
		s := *series[year]
		if len(s.XValues) == 1 {
			// A single point has no extent to draw a line through.
			s.XValues = append(s.XValues, s.XValues[0])
			s.YValues = append(s.YValues, s.YValues[0])
		}
		all = append(all, s)
	}

	ticks := make([]chart.Tick, 0, len(aggregate.MonthNames))
	for i, name := range aggregate.MonthNames {
		ticks = append(ticks, chart.Tick{Value: float64(i + 1), Label: name})
	}

	ch := chart.Chart{
		Title:  c.Title,
		Width:  width,
		Height: height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis: chart.XAxis{
			Name:  c.XLabel,
			Range: &chart.ContinuousRange{Min: 1, Max: 12},
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Name:  c.YLabel,
			Range: &chart.ContinuousRange{Min: 0, Max: ceiling(c.Y)},
		},
		Series: all,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch.Render(chart.SVG, w)
}

// ceiling is the y-axis upper bound; the renderer rejects a zero-height range.
func ceiling(values []float64) float64 {
	if top := slices.Max(values); top > 0 {
		return top * 1.1
	}
	return 1
}

// barSlot splits the canvas evenly between bars and gaps, capped at limit.
func barSlot(width, bars, limit int) int {
	return max(2, min(width/(2*bars), limit))
}

func hexColor(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

func placeholder(w io.Writer, title string, width, height int) error {
	_, err := fmt.Fprintf(w,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+
			`<text x="50%%" y="40" text-anchor="middle" font-size="16">%s</text>`+
			`<text x="50%%" y="50%%" text-anchor="middle" font-size="14" fill="#94AFC5">Sem dados para exibir</text>`+
			`</svg>`,
		width, height, width, height, html.EscapeString(title))
	return err
}
