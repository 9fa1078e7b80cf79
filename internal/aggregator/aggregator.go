// Package aggregator turns the repositories of a user into chart ready
// statistics. Every function is pure: inputs are never modified and calling a
// function twice with the same input yields the same output.
package aggregator

import "github.com/statismics/backend/internal/model"

// Aggregate runs every aggregation over repos.
func Aggregate(repos []*model.RepositorySummary) *model.Statistics {
	perRepository := make(map[string]model.Tally, len(Metrics))
	for _, m := range Metrics {
		perRepository[m.Key] = ByProperty(repos, m)
	}

	return &model.Statistics{
		LanguageBytes:  LanguageBytes(repos),
		PerRepository:  perRepository,
		WeeklyCommits:  WeeklyCommits(repos),
		WeekdayCommits: WeekdayCommits(repos),
		CommitsPerRepo: CommitsPerRepoSeries(repos),
	}
}
