package render

import (
	"github.com/samber/lo"

	"github.com/statismics/backend/internal/model"
)

// ChartJSConfig is the configuration object of a Chart.js chart.
type ChartJSConfig struct {
	ID      string         `json:"id"`
	Title   string         `json:"title"`
	Tab     string         `json:"tab"`
	Type    string         `json:"type"`
	Data    ChartJSData    `json:"data"`
	Options map[string]any `json:"options"`
}

type ChartJSData struct {
	Labels   []string         `json:"labels"`
	Datasets []ChartJSDataset `json:"datasets"`
}

type ChartJSDataset struct {
	Label string       `json:"label,omitempty"`
	Data  model.Series `json:"data"`
	// BackgroundColor is a single color, or one color per label for pie charts.
	BackgroundColor any    `json:"backgroundColor"`
	BorderColor     string `json:"borderColor,omitempty"`
	Stack           string `json:"stack,omitempty"`
	Fill            *bool  `json:"fill,omitempty"`
}

// ChartJS converts a chart descriptor into the Chart.js configuration drawing it.
func ChartJS(desc *model.ChartDescriptor) *ChartJSConfig {
	cfg := &ChartJSConfig{
		ID:    desc.ID,
		Title: desc.Title,
		Tab:   desc.Tab,
		Data: ChartJSData{
			Labels:   lo.Ternary(desc.Data.Labels != nil, desc.Data.Labels, []string{}),
			Datasets: make([]ChartJSDataset, 0, len(desc.Data.Datasets)),
		},
		Options: map[string]any{
			"responsive": true,
			"plugins": map[string]any{
				"title": map[string]any{"display": true, "text": desc.Title},
			},
		},
	}

	for _, ds := range desc.Data.Datasets {
		color := RGBA(ColorOf(ds.Label))
		out := ChartJSDataset{
			Label:           ds.Label,
			Data:            ds.Data,
			BackgroundColor: color,
			BorderColor:     color,
			Stack:           ds.Stack,
		}
		if desc.Kind == model.ChartKindPie {
			out.BackgroundColor = lo.Map(desc.Data.Labels, func(l string, _ int) string {
				return RGBA(ColorOf(l))
			})
			out.BorderColor = ""
		}
		if desc.Kind == model.ChartKindLine {
			out.Fill = lo.ToPtr(false)
		}
		cfg.Data.Datasets = append(cfg.Data.Datasets, out)
	}

	switch desc.Kind {
	case model.ChartKindPie:
		cfg.Type = "pie"
	case model.ChartKindLine:
		cfg.Type = "line"
	case model.ChartKindBar:
		cfg.Type = "bar"
		cfg.Options["scales"] = map[string]any{
			"y": map[string]any{"beginAtZero": true},
		}
	case model.ChartKindStackedBar:
		cfg.Type = "bar"
		cfg.Options["scales"] = map[string]any{
			"x": map[string]any{
				"type":    "time",
				"stacked": true,
				"time":    map[string]any{"unit": "week", "parser": "yyyy-MM-dd"},
			},
			"y": map[string]any{"stacked": true, "beginAtZero": true},
		}
	case model.ChartKindScatter:
		cfg.Type = "scatter"
		cfg.Options["scales"] = map[string]any{
			"x": map[string]any{"title": map[string]any{"display": true, "text": "size (KB)"}},
			"y": map[string]any{"title": map[string]any{"display": true, "text": "stargazers"}},
		}
	}

	return cfg
}

// ChartJSAll converts every descriptor, keeping their order.
func ChartJSAll(descs []model.ChartDescriptor) []*ChartJSConfig {
	return lo.Map(descs, func(d model.ChartDescriptor, _ int) *ChartJSConfig {
		return ChartJS(&d)
	})
}
