// Package filter defines the hard candidate filters of a search request.
// Filters only exclude candidates; they never contribute to scores.
package filter

import (
	"strings"

	"github.com/meshly/contactrank/internal/domain/aspect"
	"github.com/meshly/contactrank/internal/domain/contact"
	"github.com/meshly/contactrank/internal/domain/goal"
)

// Filters holds per-category constraint lists. Categories are ANDed:
// a candidate must satisfy every non-empty category. Values within a
// category are ORed: one case-insensitive substring match suffices.
// ExperienceLevels is fed from goal preferences, not the request payload.
type Filters struct {
	Skills           []string
	Companies        []string
	Locations        []string
	Industries       []string
	ExperienceLevels []string
	Hiring           *bool
	OpenToWork       *bool
}

// IsEmpty reports whether no constraint is set.
func (f *Filters) IsEmpty() bool {
	if f == nil {
		return true
	}
	return len(f.Skills) == 0 && len(f.Companies) == 0 &&
		len(f.Locations) == 0 && len(f.Industries) == 0 &&
		len(f.ExperienceLevels) == 0 &&
		f.Hiring == nil && f.OpenToWork == nil
}

// WithPreferences folds the goal's hard preference constraints into the
// request filters. Preference values join the matching category, so the
// AND-across/OR-within rules apply to the combined set. Either input may
// be nil; the inputs are never mutated.
func WithPreferences(f *Filters, g *goal.Goal) *Filters {
	if g == nil || g.Preferences.IsEmpty() {
		return f
	}
	out := Filters{}
	if f != nil {
		out = *f
	}
	p := g.Preferences
	out.Skills = combine(out.Skills, p.Skills)
	out.Locations = combine(out.Locations, p.Locations)
	out.Industries = combine(out.Industries, p.Industries)
	if p.ExperienceLevel != "" {
		out.ExperienceLevels = combine(out.ExperienceLevels, []string{p.ExperienceLevel})
	}
	return &out
}

func combine(a, b []string) []string {
	if len(b) == 0 {
		return a
	}
	out := make([]string, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

// Matches reports whether the record passes every set constraint.
func (f *Filters) Matches(rec *contact.Record) bool {
	if f.IsEmpty() {
		return true
	}
	if !matchAny(f.Skills, rec.Texts(aspect.Skills)) {
		return false
	}
	if !matchAny(f.Companies, rec.Texts(aspect.Company)) {
		return false
	}
	if !matchAny(f.Locations, rec.Texts(aspect.Location)) {
		return false
	}
	if !matchIndustry(f.Industries, rec) {
		return false
	}
	if !matchAny(f.ExperienceLevels, rec.Texts(aspect.Experience)) {
		return false
	}
	if f.Hiring != nil {
		v, ok := rec.PayloadBool("hiring")
		if !ok || v != *f.Hiring {
			return false
		}
	}
	if f.OpenToWork != nil {
		v, ok := rec.PayloadBool("openToWork")
		if !ok || v != *f.OpenToWork {
			return false
		}
	}
	return true
}

// matchAny returns true when wanted is empty or any wanted value appears as
// a case-insensitive substring of the joined candidate texts.
func matchAny(wanted, texts []string) bool {
	if len(wanted) == 0 {
		return true
	}
	haystack := strings.ToLower(strings.Join(texts, " "))
	if haystack == "" {
		return false
	}
	for _, w := range wanted {
		if w == "" {
			continue
		}
		if strings.Contains(haystack, strings.ToLower(w)) {
			return true
		}
	}
	return false
}

// matchIndustry checks the payload industry field first, falling back to
// the company aspect texts, since enrichment folds industry into both.
func matchIndustry(wanted []string, rec *contact.Record) bool {
	if len(wanted) == 0 {
		return true
	}
	haystack := strings.ToLower(
		rec.PayloadString("industry") + " " + strings.Join(rec.Texts(aspect.Company), " "),
	)
	for _, w := range wanted {
		if w == "" {
			continue
		}
		if strings.Contains(haystack, strings.ToLower(w)) {
			return true
		}
	}
	return false
}
