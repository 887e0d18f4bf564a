// Package contact defines the persisted per-contact representation the
// scoring pipeline reads. Records are written by the enrichment pipeline
// and are read-only from this service's perspective.
package contact

import (
	"time"

	"github.com/meshly/contactrank/internal/domain/aspect"
)

// Embedding is one precomputed per-aspect vector. Stored alongside the
// aspect text lists but not read by the lexical scoring path.
type Embedding struct {
	Vector     []float32
	Dimensions int
	Model      string
	CreatedAt  time.Time
}

// Record is one contact as indexed for a single owning user.
type Record struct {
	id         string
	userID     string
	payload    map[string]any
	embeddings map[aspect.Aspect]Embedding
	texts      map[aspect.Aspect][]string
	updatedAt  time.Time
	active     bool
}

// Reconstruct rebuilds a Record from storage without validation.
func Reconstruct(
	id, userID string,
	payload map[string]any,
	embeddings map[aspect.Aspect]Embedding,
	texts map[aspect.Aspect][]string,
	updatedAt time.Time,
	active bool,
) Record {
	return Record{
		id:         id,
		userID:     userID,
		payload:    payload,
		embeddings: embeddings,
		texts:      texts,
		updatedAt:  updatedAt,
		active:     active,
	}
}

// ID returns the opaque contact identifier.
func (r *Record) ID() string { return r.id }

// UserID returns the owning user identifier.
func (r *Record) UserID() string { return r.userID }

// Payload returns the original contact payload. Opaque to the scorer.
func (r *Record) Payload() map[string]any { return r.payload }

// Texts returns the matchable string list for one aspect. Nil when the
// enrichment pipeline produced nothing for that aspect.
func (r *Record) Texts(a aspect.Aspect) []string { return r.texts[a] }

// AllTexts returns the full aspect→strings map.
func (r *Record) AllTexts() map[aspect.Aspect][]string { return r.texts }

// Embedding returns the stored embedding for one aspect.
func (r *Record) Embedding(a aspect.Aspect) (Embedding, bool) {
	e, ok := r.embeddings[a]
	return e, ok
}

// UpdatedAt returns the last enrichment timestamp.
func (r *Record) UpdatedAt() time.Time { return r.updatedAt }

// Active reports whether the record is live. Logical deletion clears it.
func (r *Record) Active() bool { return r.active }

// PayloadString returns a string field from the payload, or "" when absent
// or not a string.
func (r *Record) PayloadString(key string) string {
	if r.payload == nil {
		return ""
	}
	s, _ := r.payload[key].(string)
	return s
}

// PayloadBool returns a boolean field from the payload. The second return
// reports presence.
func (r *Record) PayloadBool(key string) (bool, bool) {
	if r.payload == nil {
		return false, false
	}
	b, ok := r.payload[key].(bool)
	return b, ok
}
