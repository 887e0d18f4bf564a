// Package aspect defines the fixed set of relevance dimensions shared by
// every weight, pattern, and similarity vector in the scoring pipeline.
package aspect

// Aspect is a single relevance dimension.
type Aspect string

const (
	// Skills covers technologies, tools, and competencies.
	Skills Aspect = "skills"
	// Experience covers roles, seniority, and work history.
	Experience Aspect = "experience"
	// Company covers employers and organizations.
	Company Aspect = "company"
	// Location covers cities, regions, and remote markers.
	Location Aspect = "location"
	// Network covers mutual connections and community signals.
	Network Aspect = "network"
	// Goal covers stated objectives and openness signals.
	Goal Aspect = "goal"
	// Education covers degrees, schools, and certifications.
	Education Aspect = "education"
	// Summary covers the free-text profile headline/summary. Optional
	// eighth dimension; records without summary text score zero on it.
	Summary Aspect = "summary"
)

// All returns every aspect in canonical order, Summary last.
func All() []Aspect {
	return []Aspect{Skills, Experience, Company, Location, Network, Goal, Education, Summary}
}

// Core returns the seven mandatory aspects (everything except Summary).
func Core() []Aspect {
	return []Aspect{Skills, Experience, Company, Location, Network, Goal, Education}
}

// IsValid reports whether a is a member of the fixed aspect set.
func (a Aspect) IsValid() bool {
	switch a {
	case Skills, Experience, Company, Location, Network, Goal, Education, Summary:
		return true
	default:
		return false
	}
}
