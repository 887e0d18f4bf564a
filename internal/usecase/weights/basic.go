package weights

import (
	"strings"

	"github.com/meshly/contactrank/internal/domain/aspect"
	"github.com/meshly/contactrank/internal/domain/goal"
	"github.com/meshly/contactrank/internal/domain/weight"
)

// basicWeights is the keyword-only strategy: a flat base weight per aspect,
// bumped for every trigger word found in the query, then goal multipliers
// and normalization. Cheaper than the full synthesis path and fully local.
func basicWeights(query string, g *goal.Goal) weight.Vector {
	const (
		baseWeight = 0.1
		bump       = 0.2
	)

	q := strings.ToLower(query)

	w := make(weight.Vector, len(aspect.All()))
	for _, a := range aspect.All() {
		w[a] = baseWeight
		for _, trigger := range patternTriggers[a] {
			if strings.Contains(q, trigger) {
				w[a] += bump
			}
		}
	}

	applyGoal(w, g)
	return w.Normalize()
}
