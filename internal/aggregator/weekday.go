package aggregator

import "github.com/statismics/backend/internal/model"

// RotateWeekday maps a Sunday-first day index (0 = Sunday) to its
// Monday-first slot (0 = Monday, 6 = Sunday).
func RotateWeekday(sundayFirst int) int {
	return (sundayFirst + model.DaysPerWeek - 1) % model.DaysPerWeek
}

// WeekdayCommits sums commits per day of the week over every week of every
// repository, Monday first.
func WeekdayCommits(repos []*model.RepositorySummary) [model.DaysPerWeek]int {
	var counts [model.DaysPerWeek]int
	for _, repo := range repos {
		if repo == nil {
			continue
		}
		for _, week := range repo.CommitActivity {
			for day, n := range week.Days {
				counts[RotateWeekday(day)] += n
			}
		}
	}
	return counts
}
