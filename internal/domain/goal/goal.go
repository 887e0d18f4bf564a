// Package goal defines the optional user intent descriptor supplied with a
// search request and the fixed per-goal weight multiplier tables.
package goal

import (
	"sort"
	"strings"

	"github.com/meshly/contactrank/internal/domain/aspect"
)

// Type is the closed enumeration of user goals.
type Type string

const (
	// JobSearch means the user is looking for a new role.
	JobSearch Type = "job_search"
	// StartupBuilding means the user is building a company.
	StartupBuilding Type = "startup_building"
	// Mentorship means the user seeks or offers mentoring.
	Mentorship Type = "mentorship"
	// IndustryNetworking means the user wants to grow industry contacts.
	IndustryNetworking Type = "industry_networking"
	// SkillDevelopment means the user wants to learn or level up.
	SkillDevelopment Type = "skill_development"
	// General carries no aspect bias.
	General Type = "general"
)

// IsValid reports whether t is a known goal type.
func (t Type) IsValid() bool {
	switch t {
	case JobSearch, StartupBuilding, Mentorship, IndustryNetworking, SkillDevelopment, General:
		return true
	default:
		return false
	}
}

// multipliers holds the fixed per-goal aspect boost tables. General has none.
var multipliers = map[Type]map[aspect.Aspect]float64{
	JobSearch: {
		aspect.Experience: 1.4,
		aspect.Company:    1.3,
		aspect.Skills:     1.2,
	},
	StartupBuilding: {
		aspect.Network: 1.5,
		aspect.Company: 1.3,
		aspect.Skills:  1.2,
	},
	Mentorship: {
		aspect.Experience: 1.5,
		aspect.Network:    1.3,
		aspect.Education:  1.2,
	},
	IndustryNetworking: {
		aspect.Network:  1.6,
		aspect.Company:  1.4,
		aspect.Location: 1.1,
	},
	SkillDevelopment: {
		aspect.Skills:     1.8,
		aspect.Education:  1.5,
		aspect.Experience: 1.2,
	},
}

// Multipliers returns the fixed aspect multipliers for the goal type.
// Aspects absent from the table keep a multiplier of 1. Unknown types and
// General return nil.
func (t Type) Multipliers() map[aspect.Aspect]float64 {
	return multipliers[t]
}

// Preferences are hard-filter constraints carried on a goal. They are used
// only for filtering, never for scoring.
type Preferences struct {
	Locations       []string
	Industries      []string
	Skills          []string
	ExperienceLevel string
}

// IsEmpty reports whether no preference constraint is set.
func (p Preferences) IsEmpty() bool {
	return len(p.Locations) == 0 && len(p.Industries) == 0 &&
		len(p.Skills) == 0 && p.ExperienceLevel == ""
}

// Goal is the optional per-request user intent descriptor.
type Goal struct {
	Type        Type
	Description string
	Keywords    []string
	Preferences Preferences
}

// Fingerprint returns a stable string identifying the goal for cache keys.
// List order does not affect the fingerprint. Preference constraints
// participate because they change which candidates a cached page may hold.
func (g *Goal) Fingerprint() string {
	if g == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(string(g.Type))
	b.WriteByte('|')
	b.WriteString(g.Description)
	for _, vals := range [][]string{
		g.Keywords, g.Preferences.Locations, g.Preferences.Industries, g.Preferences.Skills,
	} {
		sorted := make([]string, len(vals))
		copy(sorted, vals)
		sort.Strings(sorted)
		b.WriteByte('|')
		b.WriteString(strings.Join(sorted, ","))
	}
	b.WriteByte('|')
	b.WriteString(g.Preferences.ExperienceLevel)
	return b.String()
}
