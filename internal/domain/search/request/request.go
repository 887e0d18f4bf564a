// Package request defines the validated search request.
package request

import (
	"fmt"
	"strings"

	"github.com/meshly/contactrank/internal/domain"
	"github.com/meshly/contactrank/internal/domain/goal"
	"github.com/meshly/contactrank/internal/domain/search/filter"
	"github.com/meshly/contactrank/internal/domain/weight"
)

// Request parameter limits.
const (
	MaxQueryLength   = 2048
	DefaultLimit     = 10
	MaxLimit         = 100
	DefaultThreshold = 0.01
)

// Request is a validated search request.
type Request struct {
	query     string
	userID    string
	weights   weight.Vector
	goal      *goal.Goal
	filters   *filter.Filters
	limit     int
	threshold float64
}

// New validates and normalizes search parameters.
// weights, g, and f are optional; nil weights means the synthesizer runs.
// Defaults: limit=10 (max 100), threshold=0.01. A negative threshold means
// the caller explicitly wants everything and is clamped to 0.
func New(
	query, userID string,
	weights weight.Vector,
	g *goal.Goal,
	f *filter.Filters,
	limit int,
	threshold float64,
) (Request, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Request{}, fmt.Errorf("%w: query is required", domain.ErrInvalidRequest)
	}
	if len(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("%w: query too long (max %d chars)", domain.ErrInvalidRequest, MaxQueryLength)
	}
	if userID == "" {
		return Request{}, fmt.Errorf("%w: userId is required", domain.ErrInvalidRequest)
	}
	if weights != nil && !weights.IsNormalized() {
		return Request{}, fmt.Errorf("%w: precomputed weights must be normalized", domain.ErrInvalidRequest)
	}
	if g != nil && !g.Type.IsValid() {
		return Request{}, fmt.Errorf("%w: unknown goal type %q", domain.ErrInvalidRequest, g.Type)
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if threshold < 0 {
		threshold = 0
	} else if threshold == 0 {
		threshold = DefaultThreshold
	}
	if threshold > 1 {
		return Request{}, fmt.Errorf("%w: threshold must be at most 1", domain.ErrInvalidRequest)
	}

	return Request{
		query:     query,
		userID:    userID,
		weights:   weights,
		goal:      g,
		filters:   f,
		limit:     limit,
		threshold: threshold,
	}, nil
}

// Query returns the search query text.
func (r *Request) Query() string { return r.query }

// UserID returns the owning-user identifier.
func (r *Request) UserID() string { return r.userID }

// Weights returns the precomputed weight vector, nil when absent.
func (r *Request) Weights() weight.Vector { return r.weights }

// Goal returns the optional user goal.
func (r *Request) Goal() *goal.Goal { return r.goal }

// Filters returns the optional hard filters.
func (r *Request) Filters() *filter.Filters { return r.filters }

// Limit returns the maximum number of results.
func (r *Request) Limit() int { return r.limit }

// Threshold returns the minimum total score a result must reach.
func (r *Request) Threshold() float64 { return r.threshold }

// NormalizedQuery returns the query lowercased with collapsed whitespace,
// used for cache keys.
func (r *Request) NormalizedQuery() string {
	return strings.Join(strings.Fields(strings.ToLower(r.query)), " ")
}
