package aggregator

import (
	"github.com/samber/lo"

	"github.com/statismics/backend/internal/model"
)

// CommitsPerRepoSeries returns one weekly commit series per repository that
// has any commit activity. Inactive repositories are left out.
func CommitsPerRepoSeries(repos []*model.RepositorySummary) []model.NamedSeries {
	series := make([]model.NamedSeries, 0, len(repos))
	for _, repo := range repos {
		if repo == nil || repo.TotalCommits() == 0 {
			continue
		}
		series = append(series, model.NamedSeries{
			Label: repo.Name,
			Points: lo.Map(repo.CommitActivity, func(week model.WeeklyCommitActivity, _ int) model.DatePoint {
				return model.NewDatePoint(week.Week, int64(week.Total))
			}),
		})
	}
	return series
}
