package recommend

import "sort"

// Ranker orders scored candidates and truncates to the output bound.
type Ranker struct {
	topN int
}

// NewRanker builds a ranker bounded to topN results.
func NewRanker(topN int) Ranker {
	return Ranker{topN: topN}
}

// Rank sorts by final score descending. Ties break on overall rating, then on
// original order via the stable sort, so identical inputs always rank
// identically. The input slice is not mutated.
func (r Ranker) Rank(scored []ScoredCandidate) []ScoredCandidate {
	ranked := make([]ScoredCandidate, len(scored))
	copy(ranked, scored)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].FinalScore != ranked[j].FinalScore {
			return ranked[i].FinalScore > ranked[j].FinalScore
		}
		return ranked[i].Quality.OverallRating > ranked[j].Quality.OverallRating
	})

	if r.topN > 0 && len(ranked) > r.topN {
		ranked = ranked[:r.topN]
	}
	return ranked
}
