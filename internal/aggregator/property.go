package aggregator

import "github.com/statismics/backend/internal/model"

// Metric selects one scalar of a repository.
type Metric struct {
	Key   string
	Title string
	Value func(repo *model.RepositorySummary) int
}

var (
	Forks = Metric{
		Key:   "forks",
		Title: "Amount of forks per repo",
		Value: func(repo *model.RepositorySummary) int { return repo.Forks },
	}
	Stars = Metric{
		Key:   "stars",
		Title: "Amount of stargazers per repo",
		Value: func(repo *model.RepositorySummary) int { return repo.Stars },
	}
	Watchers = Metric{
		Key:   "watchers",
		Title: "Amount of watchers per repo",
		Value: func(repo *model.RepositorySummary) int { return repo.Watchers },
	}
	OpenIssues = Metric{
		Key:   "openIssues",
		Title: "Amount of open issues per repo",
		Value: func(repo *model.RepositorySummary) int { return repo.OpenIssues },
	}
	Size = Metric{
		Key:   "size",
		Title: "Size per repo",
		Value: func(repo *model.RepositorySummary) int { return repo.Size },
	}

	// Metrics lists the per-repository metrics in display order.
	Metrics = []Metric{Size, Forks, Stars, Watchers, OpenIssues}
)

// ByProperty maps each repository name to the metric's value, leaving out
// repositories whose value is not positive. Repository order is kept.
func ByProperty(repos []*model.RepositorySummary, metric Metric) model.Tally {
	tally := model.Tally{}
	for _, repo := range repos {
		if repo == nil {
			continue
		}
		if v := metric.Value(repo); v > 0 {
			tally.Add(repo.Name, int64(v))
		}
	}
	return tally
}
