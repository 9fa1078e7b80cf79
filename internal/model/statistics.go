package model

// WeeklyTotals holds the fleet-wide participation series, oldest week first.
type WeeklyTotals struct {
	All   [WeeksPerYear]int `json:"all"`
	Owner [WeeksPerYear]int `json:"owner"`
}

// NamedSeries is a date keyed series labelled with the repository it belongs to.
type NamedSeries struct {
	Label  string      `json:"label"`
	Points []DatePoint `json:"points"`
}

// Statistics is everything derived from one user's repositories.
type Statistics struct {
	LanguageBytes Tally `json:"languageBytes"`

	// PerRepository is keyed by metric key (forks, stars, watchers, openIssues, size).
	PerRepository map[string]Tally `json:"perRepository"`

	WeeklyCommits  WeeklyTotals     `json:"weeklyCommits"`
	WeekdayCommits [DaysPerWeek]int `json:"weekdayCommits"`
	CommitsPerRepo []NamedSeries    `json:"commitsPerRepo"`
}
