package aggregator

import "github.com/statismics/backend/internal/model"

// WeeklyCommits sums the participation series of all repos element-wise.
// Series shorter than a year only contribute to the weeks they cover.
func WeeklyCommits(repos []*model.RepositorySummary) model.WeeklyTotals {
	var totals model.WeeklyTotals
	for _, repo := range repos {
		if repo == nil || repo.Participation == nil {
			continue
		}
		accumulate(&totals.All, repo.Participation.All)
		accumulate(&totals.Owner, repo.Participation.Owner)
	}
	return totals
}

func accumulate(dst *[model.WeeksPerYear]int, src []int) {
	for i, v := range src {
		if i >= model.WeeksPerYear {
			return
		}
		dst[i] += v
	}
}
