package contactrank

// GoalType is the closed enumeration of user goals.
type GoalType string

// Goal type constants.
const (
	GoalJobSearch          GoalType = "job_search"
	GoalStartupBuilding    GoalType = "startup_building"
	GoalMentorship         GoalType = "mentorship"
	GoalIndustryNetworking GoalType = "industry_networking"
	GoalSkillDevelopment   GoalType = "skill_development"
	GoalGeneral            GoalType = "general"
)

// Strategy selects the weight synthesis path.
type Strategy string

// Strategy constants.
const (
	StrategyFull  Strategy = "full"
	StrategyBasic Strategy = "basic"
)

// Goal describes the user's networking intent for a search.
type Goal struct {
	Type        GoalType
	Description string
	Keywords    []string
	Preferences *GoalPreferences
}

// GoalPreferences are hard-filter constraints carried on a goal.
type GoalPreferences struct {
	Locations       []string
	Industries      []string
	Skills          []string
	ExperienceLevel string
}

// Filters holds hard candidate constraints. Categories are ANDed,
// values within a category are ORed.
type Filters struct {
	Skills     []string
	Companies  []string
	Locations  []string
	Industries []string
	Hiring     *bool
	OpenToWork *bool
}

// SearchOptions configures a search call. All fields are optional.
type SearchOptions struct {
	// Weights overrides weight synthesis with a precomputed normalized vector,
	// keyed by aspect name (skills, experience, company, location, network,
	// goal, education, summary).
	Weights   map[string]float64
	Goal      *Goal
	Filters   *Filters
	Limit     int
	Threshold float64
}

// SearchResult is a single ranked hit.
type SearchResult struct {
	ConnectionID string
	Connection   map[string]any
	Score        float64
	Breakdown    map[string]float64
	Relevance    string
}

// SearchPage is one complete search response.
type SearchPage struct {
	Results         []SearchResult
	Weights         map[string]float64
	TotalCandidates int
	Fallback        bool
}
