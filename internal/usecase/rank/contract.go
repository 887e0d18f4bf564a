package rank

import (
	"context"

	"github.com/meshly/contactrank/internal/domain/contact"
	"github.com/meshly/contactrank/internal/domain/goal"
	"github.com/meshly/contactrank/internal/domain/search/result"
	"github.com/meshly/contactrank/internal/domain/weight"
)

// ContactReader is the storage contract for the ranking pass.
type ContactReader interface {
	// ListActive returns every active record owned by the user.
	ListActive(ctx context.Context, userID string) ([]contact.Record, error)
	// SearchSubstring is the plain fallback index: case-insensitive
	// substring search over all records, active or not.
	SearchSubstring(ctx context.Context, userID, text string, limit int) ([]contact.Record, error)
}

// Synthesizer derives the weight vector when the request carries none.
type Synthesizer interface {
	Synthesize(ctx context.Context, query string, g *goal.Goal) weight.Vector
}

// Cache memoizes complete response pages. Purely optional; failures are
// swallowed by implementations and never fail a search.
type Cache interface {
	Key(userID, normalizedQuery string, g *goal.Goal) string
	Get(ctx context.Context, key string) (*result.Page, bool)
	Set(ctx context.Context, key string, page *result.Page)
}
