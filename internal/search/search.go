package search

import (
	"github.com/coltonswapp/nestnote/internal/model"
	"github.com/sahilm/fuzzy"
)

// SearchResult represents a fuzzy search match against an entry.
type SearchResult struct {
	Entry          *model.Entry
	MatchedIndexes []int
	Score          int
}

// entryTitles implements fuzzy.Source for an entry slice.
type entryTitles []*model.Entry

func (et entryTitles) String(i int) string {
	return et[i].Title
}

func (et entryTitles) Len() int {
	return len(et)
}

// FuzzySearchEntries searches all entries by title using fuzzy matching.
// Returns results sorted by match score (best first).
func FuzzySearchEntries(nest *model.Nest, query string) []SearchResult {
	if query == "" {
		return nil
	}

	// Build slice of entry pointers
	entries := make(entryTitles, len(nest.Entries))
	for i := range nest.Entries {
		entries[i] = &nest.Entries[i]
	}

	// Run fuzzy matching
	matches := fuzzy.FindFrom(query, entries)

	// Convert to SearchResult
	results := make([]SearchResult, len(matches))
	for i, m := range matches {
		results[i] = SearchResult{
			Entry:          entries[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}

	return results
}

// FuzzySearchPlaces searches places by alias, best match first.
func FuzzySearchPlaces(nest *model.Nest, query string) []*model.Place {
	if query == "" {
		return nil
	}

	aliases := make([]string, len(nest.Places))
	for i := range nest.Places {
		aliases[i] = nest.Places[i].Alias
	}

	matches := fuzzy.Find(query, aliases)
	results := make([]*model.Place, len(matches))
	for i, m := range matches {
		results[i] = &nest.Places[m.Index]
	}

	return results
}
