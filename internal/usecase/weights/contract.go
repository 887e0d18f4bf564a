package weights

import (
	"context"

	"github.com/meshly/contactrank/internal/domain/aspect"
	"github.com/meshly/contactrank/internal/domain/intent"
)

// IntentClassifier classifies the semantic intent of a query.
// May be nil on the Synthesizer, in which case the local heuristic runs.
type IntentClassifier interface {
	ClassifyIntent(ctx context.Context, query string) (intent.Analysis, error)
}

// PatternClassifier returns a raw per-aspect pattern score for a query.
type PatternClassifier interface {
	DetectPatterns(ctx context.Context, query string) (map[aspect.Aspect]float64, error)
}
