// Package weight defines the normalized per-aspect importance distribution
// produced once per search request.
package weight

import (
	"math"

	"github.com/meshly/contactrank/internal/domain/aspect"
)

// Epsilon is the minimum weight at which an aspect participates in scoring.
// Aspects below it are skipped by the scorer and excluded from aggregation.
const Epsilon = 0.01

// Vector maps every aspect to a non-negative weight. A vector returned by
// Normalize sums to 1.0; callers treat vectors as immutable after creation.
type Vector map[aspect.Aspect]float64

// Uniform returns a vector with equal weight on every aspect, normalized.
func Uniform() Vector {
	v := make(Vector, len(aspect.All()))
	for _, a := range aspect.All() {
		v[a] = 1
	}
	return v.Normalize()
}

// Sum returns the total of all weights.
func (v Vector) Sum() float64 {
	var s float64
	for _, w := range v {
		s += w
	}
	return s
}

// Normalize returns a new vector scaled so the weights sum to 1.0.
// Negative weights are clamped to zero first. A vector with no positive
// mass normalizes to the uniform distribution, so the invariant holds
// for every input.
func (v Vector) Normalize() Vector {
	out := make(Vector, len(aspect.All()))
	var sum float64
	for _, a := range aspect.All() {
		w := v[a]
		if w < 0 {
			w = 0
		}
		out[a] = w
		sum += w
	}
	if sum <= 0 {
		n := float64(len(aspect.All()))
		for _, a := range aspect.All() {
			out[a] = 1 / n
		}
		return out
	}
	for a, w := range out {
		out[a] = w / sum
	}
	return out
}

// IsNormalized reports whether the weights are non-negative and sum to 1.0
// within tolerance.
func (v Vector) IsNormalized() bool {
	for _, w := range v {
		if w < 0 {
			return false
		}
	}
	return math.Abs(v.Sum()-1.0) < 1e-9
}

// Active returns the aspects whose weight is at or above Epsilon.
func (v Vector) Active() []aspect.Aspect {
	out := make([]aspect.Aspect, 0, len(v))
	for _, a := range aspect.All() {
		if v[a] >= Epsilon {
			out = append(out, a)
		}
	}
	return out
}

// Clone returns an independent copy.
func (v Vector) Clone() Vector {
	out := make(Vector, len(v))
	for a, w := range v {
		out[a] = w
	}
	return out
}
