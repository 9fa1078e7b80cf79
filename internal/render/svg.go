package render

import (
	"fmt"
	"html"
	"io"
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/statismics/backend/internal/model"
)

const (
	Width  = 800
	Height = 480
)

// SVG draws desc as an SVG image. Charts without data are drawn as an empty
// image carrying the title.
func SVG(w io.Writer, desc *model.ChartDescriptor) error {
	if err := desc.Data.Validate(); err != nil {
		return errors.Wrapf(err, "chart %s", desc.ID)
	}
	if !drawable(&desc.Data) {
		return empty(w, desc.Title)
	}

	var err error
	switch desc.Kind {
	case model.ChartKindPie:
		err = pieSVG(w, desc)
	case model.ChartKindBar:
		err = barSVG(w, desc)
	case model.ChartKindLine:
		err = lineSVG(w, desc)
	case model.ChartKindStackedBar:
		err = stackedBarSVG(w, desc)
	case model.ChartKindScatter:
		err = scatterSVG(w, desc)
	default:
		return errors.Errorf("chart %s: unsupported kind %q", desc.ID, desc.Kind)
	}
	return errors.Wrapf(err, "chart %s", desc.ID)
}

// drawable reports whether any data point is non-zero. go-chart refuses to
// draw charts whose value range is empty.
func drawable(data *model.ChartData) bool {
	for _, ds := range data.Datasets {
		switch s := ds.Data.(type) {
		case model.Numbers:
			if lo.SomeBy(s, func(v int64) bool { return v != 0 }) {
				return true
			}
		case model.DatePoints:
			if lo.SomeBy(s, func(p model.DatePoint) bool { return p.Y != 0 }) {
				return true
			}
		case model.Points:
			if len(s) > 0 {
				return true
			}
		}
	}
	return false
}

func empty(w io.Writer, title string) error {
	_, err := fmt.Fprintf(w,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+
			`<text x="50%%" y="50%%" text-anchor="middle" font-family="sans-serif" font-size="16">%s: no data</text>`+
			`</svg>`,
		Width, Height, Width, Height, html.EscapeString(title))
	return err
}

func style(label string) chart.Style {
	c := ColorOf(label)
	return chart.Style{
		FillColor:   c,
		StrokeColor: c,
		DotColor:    c,
	}
}

func numberValues(labels []string, data model.Series) []chart.Value {
	values := data.(model.Numbers)
	return lo.Map(labels, func(l string, i int) chart.Value {
		return chart.Value{Label: l, Value: float64(values[i]), Style: style(l)}
	})
}

func pieSVG(w io.Writer, desc *model.ChartDescriptor) error {
	values := lo.Filter(numberValues(desc.Data.Labels, desc.Data.Datasets[0].Data), func(v chart.Value, _ int) bool {
		return v.Value > 0
	})
	pie := chart.PieChart{
		Title:  desc.Title,
		Width:  Width,
		Height: Height,
		Values: values,
	}
	return pie.Render(chart.SVG, w)
}

func barSVG(w io.Writer, desc *model.ChartDescriptor) error {
	bars := numberValues(desc.Data.Labels, desc.Data.Datasets[0].Data)
	maxY := lo.Max(lo.Map(bars, func(v chart.Value, _ int) float64 { return v.Value }))
	bar := chart.BarChart{
		Title:    desc.Title,
		Width:    Width,
		Height:   Height,
		BarWidth: 60,
		YAxis:    chart.YAxis{Range: &chart.ContinuousRange{Min: 0, Max: max(maxY, 1)}},
		Bars:     bars,
	}
	return bar.Render(chart.SVG, w)
}

func lineSVG(w io.Writer, desc *model.ChartDescriptor) error {
	dates := lo.Map(desc.Data.Labels, func(l string, _ int) time.Time {
		return model.DatePoint{X: l}.Time()
	})

	var maxY float64
	series := make([]chart.Series, 0, len(desc.Data.Datasets))
	for _, ds := range desc.Data.Datasets {
		ys := lo.Map(ds.Data.(model.Numbers), func(v int64, _ int) float64 { return float64(v) })
		maxY = max(maxY, lo.Max(ys))
		series = append(series, chart.TimeSeries{
			Name:    ds.Label,
			Style:   style(ds.Label),
			XValues: dates,
			YValues: ys,
		})
	}

	graph := chart.Chart{
		Title:  desc.Title,
		Width:  Width,
		Height: Height,
		XAxis:  chart.XAxis{ValueFormatter: chart.TimeDateValueFormatter},
		YAxis:  chart.YAxis{Range: &chart.ContinuousRange{Min: 0, Max: max(maxY, 1)}},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return graph.Render(chart.SVG, w)
}

// stackedBarSVG draws one bar per week, stacking the commits of every
// repository active that week.
func stackedBarSVG(w io.Writer, desc *model.ChartDescriptor) error {
	byDate := map[string][]chart.Value{}
	for _, ds := range desc.Data.Datasets {
		for _, p := range ds.Data.(model.DatePoints) {
			if p.Y == 0 {
				continue
			}
			byDate[p.X] = append(byDate[p.X], chart.Value{Label: ds.Label, Value: float64(p.Y), Style: style(ds.Label)})
		}
	}

	dates := lo.Keys(byDate)
	sort.Strings(dates)

	bars := lo.Map(dates, func(date string, _ int) chart.StackedBar {
		return chart.StackedBar{Name: date, Values: byDate[date]}
	})

	sbc := chart.StackedBarChart{
		Title:      desc.Title,
		Width:      max(Width, len(bars)*40),
		Height:     Height,
		BarSpacing: 10,
		Bars:       bars,
	}
	return sbc.Render(chart.SVG, w)
}

func scatterSVG(w io.Writer, desc *model.ChartDescriptor) error {
	var maxX, maxY float64
	series := make([]chart.Series, 0, len(desc.Data.Datasets))
	for _, ds := range desc.Data.Datasets {
		points := ds.Data.(model.Points)
		if len(points) == 0 {
			continue
		}
		s := style(ds.Label)
		s.StrokeColor = drawing.ColorTransparent
		s.DotWidth = 5
		xs := lo.Map(points, func(p model.Point, _ int) float64 { return p.X })
		ys := lo.Map(points, func(p model.Point, _ int) float64 { return p.Y })
		maxX = max(maxX, lo.Max(xs))
		maxY = max(maxY, lo.Max(ys))
		series = append(series, chart.ContinuousSeries{
			Name:    ds.Label,
			Style:   s,
			XValues: xs,
			YValues: ys,
		})
	}

	graph := chart.Chart{
		Title:  desc.Title,
		Width:  Width,
		Height: Height,
		XAxis:  chart.XAxis{Name: "size (KB)", Range: &chart.ContinuousRange{Min: 0, Max: max(maxX, 1)}},
		YAxis:  chart.YAxis{Name: "stargazers", Range: &chart.ContinuousRange{Min: 0, Max: max(maxY, 1)}},
		Series: series,
	}
	return graph.Render(chart.SVG, w)
}
