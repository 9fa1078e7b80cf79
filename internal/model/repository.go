package model

import "time"

const (
	// WeeksPerYear is the length of GitHub's participation series.
	WeeksPerYear = 52
	// DaysPerWeek is the length of a commit activity record's day breakdown.
	DaysPerWeek = 7
)

type LanguageBytes struct {
	Language string `json:"language"`
	Bytes    int64  `json:"bytes"`
}

// Participation is the weekly commit count of the last year, oldest week first.
type Participation struct {
	All   []int `json:"all"`
	Owner []int `json:"owner"`
}

// WeeklyCommitActivity is one week of commit activity. Days is indexed
// Sunday first, as GitHub reports it.
type WeeklyCommitActivity struct {
	Week  time.Time        `json:"week"`
	Total int              `json:"total"`
	Days  [DaysPerWeek]int `json:"days"`
}

type RepositorySummary struct {
	Name       string `json:"name"`
	Owner      string `json:"owner"`
	URL        string `json:"url"`
	Size       int    `json:"size"`
	Forks      int    `json:"forks"`
	Stars      int    `json:"stars"`
	Watchers   int    `json:"watchers"`
	OpenIssues int    `json:"openIssues"`

	Languages      []LanguageBytes        `json:"languages,omitempty"`
	Participation  *Participation         `json:"participation,omitempty"`
	CommitActivity []WeeklyCommitActivity `json:"commitActivity,omitempty"`
}

// TotalCommits sums the commit activity records of the repository.
func (r *RepositorySummary) TotalCommits() int {
	var total int
	for _, week := range r.CommitActivity {
		total += week.Total
	}
	return total
}
