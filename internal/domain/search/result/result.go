// Package result defines scored search results and the response page.
package result

import (
	"github.com/meshly/contactrank/internal/domain/aspect"
	"github.com/meshly/contactrank/internal/domain/weight"
)

// Relevance buckets a total score for presentation.
type Relevance string

const (
	// High marks scores above 0.7.
	High Relevance = "high"
	// Medium marks scores above 0.5.
	Medium Relevance = "medium"
	// Low marks everything else, including all fallback results.
	Low Relevance = "low"
)

// RelevanceFor returns the bucket for a total score.
func RelevanceFor(score float64) Relevance {
	switch {
	case score > 0.7:
		return High
	case score > 0.5:
		return Medium
	default:
		return Low
	}
}

// Breakdown is the per-aspect score decomposition of one result.
type Breakdown map[aspect.Aspect]float64

// Result is a single ranked hit. Ephemeral, re-derived on every request.
type Result struct {
	connectionID string
	connection   map[string]any
	score        float64
	breakdown    Breakdown
	relevance    Relevance
}

// New creates a scored result; the relevance bucket is derived from score.
func New(connectionID string, connection map[string]any, score float64, breakdown Breakdown) Result {
	return Result{
		connectionID: connectionID,
		connection:   connection,
		score:        score,
		breakdown:    breakdown,
		relevance:    RelevanceFor(score),
	}
}

// NewFallback creates a result from the plain substring index with a
// synthetic rank-decaying score. rank is zero-based.
func NewFallback(connectionID string, connection map[string]any, rank int) Result {
	score := 0.2 - 0.01*float64(rank)
	if score < 0.05 {
		score = 0.05
	}
	return Result{
		connectionID: connectionID,
		connection:   connection,
		score:        score,
		breakdown:    Breakdown{},
		relevance:    Low,
	}
}

// ConnectionID returns the contact identifier.
func (r *Result) ConnectionID() string { return r.connectionID }

// Connection returns the original contact payload.
func (r *Result) Connection() map[string]any { return r.connection }

// Score returns the normalized total score in [0,1].
func (r *Result) Score() float64 { return r.score }

// Breakdown returns the per-aspect score decomposition.
func (r *Result) Breakdown() Breakdown { return r.breakdown }

// Relevance returns the presentation bucket.
func (r *Result) Relevance() Relevance { return r.relevance }

// Page is one complete search response.
type Page struct {
	Results         []Result
	Weights         weight.Vector
	TotalCandidates int
	Fallback        bool
}
