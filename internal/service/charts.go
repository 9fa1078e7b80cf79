package service

import (
	"time"

	"github.com/samber/lo"

	"github.com/statismics/backend/internal/aggregator"
	"github.com/statismics/backend/internal/model"
)

// Chart tabs of the page.
const (
	TabPie  = "pie"
	TabLine = "line"
	TabBar  = "bar"
)

// Chart ids that are not derived from a metric key.
const (
	ChartLanguages      = "languages"
	ChartCommitsPerWeek = "commitsPerWeek"
	ChartCommitsWeekday = "commitsPerWeekday"
	ChartCommitsPerRepo = "commitsPerRepo"
	ChartSizeVsStars    = "sizeVsStars"
)

var weekdays = [model.DaysPerWeek]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Charts turns aggregated statistics into chart descriptors.
type Charts struct{}

func NewCharts() *Charts {
	return &Charts{}
}

// Build returns every chart of a lookup. now anchors the week labels of the
// commits per week chart: the last participation week is the current one.
func (s *Charts) Build(repos []model.RepositorySummary, stats *model.Statistics, now time.Time) []model.ChartDescriptor {
	charts := make([]model.ChartDescriptor, 0, len(aggregator.Metrics)+5)

	charts = append(charts, pie(ChartLanguages, "Languages by bytes", stats.LanguageBytes))
	for _, m := range aggregator.Metrics {
		charts = append(charts, pie(m.Key, m.Title, stats.PerRepository[m.Key]))
	}

	charts = append(charts,
		commitsPerWeek(stats.WeeklyCommits, now),
		commitsPerWeekday(stats.WeekdayCommits),
		commitsPerRepo(stats.CommitsPerRepo),
		sizeVsStars(repos),
	)
	return charts
}

func pie(id, title string, tally model.Tally) model.ChartDescriptor {
	return model.ChartDescriptor{
		ID:    id,
		Title: title,
		Kind:  model.ChartKindPie,
		Tab:   TabPie,
		Data: model.ChartData{
			Labels:   tally.Labels(),
			Datasets: []model.Dataset{{Label: title, Data: model.Numbers(tally.Values())}},
		},
	}
}

// WeekLabels labels the weeks of a participation series, oldest first, with
// the date each week starts on.
func WeekLabels(now time.Time) []string {
	labels := make([]string, model.WeeksPerYear)
	for i := range labels {
		weeksAgo := model.WeeksPerYear - 1 - i
		labels[i] = now.UTC().AddDate(0, 0, -7*weeksAgo).Format(model.DateLayout)
	}
	return labels
}

func numbers(values []int) model.Numbers {
	return lo.Map(values, func(v int, _ int) int64 { return int64(v) })
}

func commitsPerWeek(totals model.WeeklyTotals, now time.Time) model.ChartDescriptor {
	return model.ChartDescriptor{
		ID:    ChartCommitsPerWeek,
		Title: "Commits per week",
		Kind:  model.ChartKindLine,
		Tab:   TabLine,
		Data: model.ChartData{
			Labels: WeekLabels(now),
			Datasets: []model.Dataset{
				{Label: "All users", Data: numbers(totals.All[:])},
				{Label: "Owner", Data: numbers(totals.Owner[:])},
			},
		},
	}
}

func commitsPerWeekday(counts [model.DaysPerWeek]int) model.ChartDescriptor {
	return model.ChartDescriptor{
		ID:    ChartCommitsWeekday,
		Title: "Commits per weekday",
		Kind:  model.ChartKindBar,
		Tab:   TabBar,
		Data: model.ChartData{
			Labels:   weekdays[:],
			Datasets: []model.Dataset{{Label: "Commits", Data: numbers(counts[:])}},
		},
	}
}

func commitsPerRepo(series []model.NamedSeries) model.ChartDescriptor {
	return model.ChartDescriptor{
		ID:    ChartCommitsPerRepo,
		Title: "Commits per repository and week",
		Kind:  model.ChartKindStackedBar,
		Tab:   TabBar,
		Data: model.ChartData{
			Labels: []string{},
			Datasets: lo.Map(series, func(s model.NamedSeries, _ int) model.Dataset {
				return model.Dataset{Label: s.Label, Data: model.DatePoints(s.Points), Stack: "commits"}
			}),
		},
	}
}

func sizeVsStars(repos []model.RepositorySummary) model.ChartDescriptor {
	return model.ChartDescriptor{
		ID:    ChartSizeVsStars,
		Title: "Repository size vs. stargazers",
		Kind:  model.ChartKindScatter,
		Tab:   TabBar,
		Data: model.ChartData{
			Labels: []string{},
			Datasets: lo.Map(repos, func(r model.RepositorySummary, _ int) model.Dataset {
				return model.Dataset{Label: r.Name, Data: model.Points{{X: float64(r.Size), Y: float64(r.Stars)}}}
			}),
		},
	}
}
