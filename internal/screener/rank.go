package screener

import (
	"sort"

	"github.com/rpatel-labs/niftyscan/internal/model"
)

// Rank filters candidates through the score and risk:reward gates, sorts
// by score, volume surge, then ADX (all descending), and truncates to
// topN. Ties beyond the three keys keep their incoming order.
func Rank(candidates []model.Candidate, minScore int, maxRiskReward float64, topN int) []model.Candidate {
	shortlist := make([]model.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Score >= minScore && c.RiskReward <= maxRiskReward {
			shortlist = append(shortlist, c)
		}
	}

	sort.SliceStable(shortlist, func(i, j int) bool {
		a, b := shortlist[i], shortlist[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.VolSurge != b.VolSurge {
			return a.VolSurge
		}
		return a.ADX > b.ADX
	})

	if len(shortlist) > topN {
		shortlist = shortlist[:topN]
	}
	return shortlist
}
