// Package intent holds the ephemeral classification of one search query.
package intent

import "github.com/meshly/contactrank/internal/domain/aspect"

// Urgency buckets a query by how time-pressed it reads.
type Urgency string

const (
	// UrgencyHigh means the query signals immediate need.
	UrgencyHigh Urgency = "high"
	// UrgencyMedium is the default urgency.
	UrgencyMedium Urgency = "medium"
	// UrgencyLow means the query reads exploratory.
	UrgencyLow Urgency = "low"
)

// Specificity buckets how precisely a query names what it wants.
type Specificity string

const (
	// Specific queries name concrete roles, tools, or places.
	Specific Specificity = "specific"
	// GeneralSpec is the default specificity.
	GeneralSpec Specificity = "general"
	// Vague queries give almost nothing to go on.
	Vague Specificity = "vague"
)

// Complexity buckets a query by token count.
type Complexity string

const (
	// Simple queries have fewer than 5 tokens.
	Simple Complexity = "simple"
	// Moderate queries have fewer than 10 tokens.
	Moderate Complexity = "moderate"
	// Complex queries have 10 tokens or more.
	Complex Complexity = "complex"
)

// Secondary is a non-primary intent with its confidence.
type Secondary struct {
	Aspect     aspect.Aspect
	Confidence float64
}

// Analysis is the result of classifying one query. One per request,
// never persisted.
type Analysis struct {
	Primary     aspect.Aspect
	Secondary   []Secondary
	Context     string
	Urgency     Urgency
	Specificity Specificity
}
