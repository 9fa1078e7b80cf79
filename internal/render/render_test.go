package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statismics/backend/internal/model"
)

func descriptors() []model.ChartDescriptor {
	week := time.Date(2024, time.January, 7, 0, 0, 0, 0, time.UTC)
	return []model.ChartDescriptor{
		{
			ID: "languages", Title: "Languages by bytes", Kind: model.ChartKindPie, Tab: "pie",
			Data: model.ChartData{
				Labels:   []string{"Go", "Rust"},
				Datasets: []model.Dataset{{Label: "Languages by bytes", Data: model.Numbers{150, 200}}},
			},
		},
		{
			ID: "commitsPerWeekday", Title: "Commits per weekday", Kind: model.ChartKindBar, Tab: "bar",
			Data: model.ChartData{
				Labels:   []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
				Datasets: []model.Dataset{{Label: "Commits", Data: model.Numbers{1, 2, 3, 4, 5, 6, 7}}},
			},
		},
		{
			ID: "commitsPerWeek", Title: "Commits per week", Kind: model.ChartKindLine, Tab: "line",
			Data: model.ChartData{
				Labels: []string{"2024-01-07", "2024-01-14", "2024-01-21"},
				Datasets: []model.Dataset{
					{Label: "All users", Data: model.Numbers{1, 5, 2}},
					{Label: "Owner", Data: model.Numbers{0, 3, 2}},
				},
			},
		},
		{
			ID: "commitsPerRepo", Title: "Commits per repository and week", Kind: model.ChartKindStackedBar, Tab: "bar",
			Data: model.ChartData{
				Labels: []string{},
				Datasets: []model.Dataset{
					{Label: "A", Stack: "commits", Data: model.DatePoints{model.NewDatePoint(week, 3), model.NewDatePoint(week.AddDate(0, 0, 7), 1)}},
					{Label: "B", Stack: "commits", Data: model.DatePoints{model.NewDatePoint(week, 2)}},
				},
			},
		},
		{
			ID: "sizeVsStars", Title: "Repository size vs. stargazers", Kind: model.ChartKindScatter, Tab: "bar",
			Data: model.ChartData{
				Labels: []string{},
				Datasets: []model.Dataset{
					{Label: "A", Data: model.Points{{X: 10, Y: 4}}},
					{Label: "B", Data: model.Points{{X: 300, Y: 0}}},
				},
			},
		},
	}
}

func TestColorOfIsStable(t *testing.T) {
	assert.Equal(t, ColorOf("Go"), ColorOf("Go"))
	assert.NotEqual(t, ColorOf("Go"), ColorOf("Rust"))
	assert.True(t, strings.HasPrefix(RGBA(ColorOf("Go")), "rgba("))
	assert.True(t, strings.HasSuffix(RGBA(ColorOf("Go")), ",0.7)"))
}

func TestChartJS(t *testing.T) {
	configs := ChartJSAll(descriptors())
	require.Len(t, configs, 5)

	types := make([]string, 0, len(configs))
	for _, c := range configs {
		types = append(types, c.Type)
	}
	assert.Equal(t, []string{"pie", "bar", "line", "bar", "scatter"}, types)

	pie := configs[0]
	assert.Equal(t, []string{RGBA(ColorOf("Go")), RGBA(ColorOf("Rust"))}, pie.Data.Datasets[0].BackgroundColor)

	stacked := configs[3]
	scales := stacked.Options["scales"].(map[string]any)
	assert.Equal(t, "time", scales["x"].(map[string]any)["type"])
	assert.Equal(t, true, scales["y"].(map[string]any)["stacked"])
	assert.Equal(t, "commits", stacked.Data.Datasets[0].Stack)

	b, err := json.Marshal(configs[3])
	require.NoError(t, err)
	assert.Contains(t, string(b), `"data":[{"x":"2024-01-07","y":3},{"x":"2024-01-14","y":1}]`)
}

func TestSVG(t *testing.T) {
	for _, desc := range descriptors() {
		desc := desc
		t.Run(desc.ID, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, SVG(&buf, &desc))
			assert.Contains(t, buf.String(), "<svg")
		})
	}
}

func TestSVGEmpty(t *testing.T) {
	for _, desc := range descriptors() {
		desc := desc
		for i := range desc.Data.Datasets {
			switch desc.Data.Datasets[i].Data.(type) {
			case model.Numbers:
				desc.Data.Datasets[i].Data = make(model.Numbers, len(desc.Data.Labels))
			case model.DatePoints:
				desc.Data.Datasets[i].Data = model.DatePoints{}
			case model.Points:
				desc.Data.Datasets[i].Data = model.Points{}
			}
		}
		t.Run(desc.ID, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, SVG(&buf, &desc))
			assert.Contains(t, buf.String(), "<svg")
			assert.Contains(t, buf.String(), "no data")
		})
	}
}

func TestSVGInvalid(t *testing.T) {
	desc := &model.ChartDescriptor{
		ID:   "broken",
		Kind: model.ChartKindPie,
		Data: model.ChartData{
			Labels:   []string{"Go"},
			Datasets: []model.Dataset{{Data: model.Numbers{1, 2}}},
		},
	}
	assert.Error(t, SVG(&bytes.Buffer{}, desc))
}

func TestColorOfAlpha(t *testing.T) {
	for _, label := range []string{"Go", "Rust", "statismics"} {
		assert.Equal(t, uint8(179), ColorOf(label).A, label)
	}
}
