package rank

import (
	"strings"

	"github.com/meshly/contactrank/internal/domain/aspect"
	"github.com/meshly/contactrank/internal/domain/contact"
	"github.com/meshly/contactrank/internal/domain/search/result"
	"github.com/meshly/contactrank/internal/domain/weight"
)

// multiMatchBonus is added per matched term beyond the first.
const multiMatchBonus = 0.1

// scoreRecord computes the per-aspect lexical breakdown and the weighted
// total for one candidate. Aspects whose weight sits below the epsilon are
// skipped entirely and excluded from the aggregate denominator.
func scoreRecord(pq *preparedQuery, rec *contact.Record, w weight.Vector) (result.Breakdown, float64) {
	breakdown := make(result.Breakdown, len(aspect.All()))

	var weightedSum, activeWeight float64
	for _, a := range aspect.All() {
		wa := w[a]
		if wa < weight.Epsilon {
			breakdown[a] = 0
			continue
		}
		sim := aspectSimilarity(pq, rec.Texts(a))
		breakdown[a] = sim
		weightedSum += sim * wa
		activeWeight += wa
	}

	if activeWeight <= 0 {
		return breakdown, 0
	}
	return breakdown, weightedSum / activeWeight
}

// aspectSimilarity is the lexical overlap between the prepared query and one
// aspect's string list. Important terms count double; a stem match counts
// half when the full term is absent; matching more than one term earns a
// small bonus. Clamped to [0,1].
func aspectSimilarity(pq *preparedQuery, texts []string) float64 {
	if len(pq.terms) == 0 || len(texts) == 0 {
		return 0
	}
	haystack := strings.ToLower(strings.Join(texts, " "))

	var weighted float64
	matched := 0
	for _, t := range pq.terms {
		switch {
		case strings.Contains(haystack, t.text):
			if t.important {
				weighted += 2
			} else {
				weighted += 1
			}
			matched++
		case t.stem != "" && strings.Contains(haystack, t.stem):
			weighted += 0.5
			matched++
		}
	}

	score := weighted / float64(len(pq.terms))
	if matched > 1 {
		score += multiMatchBonus * float64(matched-1)
	}
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
