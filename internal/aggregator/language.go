package aggregator

import "github.com/statismics/backend/internal/model"

// LanguageBytes sums the bytes written in each language across repos. The
// result lists languages in the order they are first seen.
func LanguageBytes(repos []*model.RepositorySummary) model.Tally {
	tally := model.Tally{}
	for _, repo := range repos {
		if repo == nil {
			continue
		}
		for _, lang := range repo.Languages {
			tally.Add(lang.Language, lang.Bytes)
		}
	}
	return tally
}
