package match

import (
	"sort"
)

// DefaultMinSimilarity is the lowest score a candidate needs to be suggested.
const DefaultMinSimilarity = 0.5

// Suggest returns up to limit candidates most similar to name, best first.
// Ties keep the candidates' original order. Candidates equal to name are skipped.
func Suggest(name string, candidates []string, limit int) []string {
	type scored struct {
		name  string
		score float64
		pos   int
	}

	var ranked []scored

	for i, c := range candidates {
		if c == name {
			continue
		}

		score := Similarity(name, c)
		if score < DefaultMinSimilarity {
			continue
		}

		ranked = append(ranked, scored{name: c, score: score, pos: i})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}

		return ranked[i].pos < ranked[j].pos
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	out := make([]string, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, r.name)
	}

	return out
}
