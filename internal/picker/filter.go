package picker

import "github.com/sahilm/fuzzy"

// match is a candidate that survived the query, with the label positions
// that matched it
type match struct {
	index     int
	positions []int
}

type labels []Candidate

func (l labels) String(i int) string { return l[i].Label() }
func (l labels) Len() int            { return len(l) }

// filter ranks candidates against query, best first. An empty query keeps
// every candidate in its original order.
func filter(candidates []Candidate, query string) []match {
	if query == "" {
		all := make([]match, len(candidates))
		for i := range candidates {
			all[i] = match{index: i}
		}
		return all
	}

	results := fuzzy.FindFrom(query, labels(candidates))
	matches := make([]match, len(results))
	for i, r := range results {
		matches[i] = match{index: r.Index, positions: r.MatchedIndexes}
	}
	return matches
}
