package weights

import (
	"strings"

	"github.com/meshly/contactrank/internal/domain/aspect"
	"github.com/meshly/contactrank/internal/domain/intent"
)

// aspectKeywords are the domain-noun families the local intent fallback
// scores to guess a primary aspect when the external classifier is down.
var aspectKeywords = map[aspect.Aspect][]string{
	aspect.Skills: {
		"developer", "engineer", "programmer", "designer", "react", "python",
		"golang", "typescript", "java", "frontend", "backend", "fullstack",
		"devops", "data", "machine learning",
	},
	aspect.Experience: {
		"senior", "junior", "lead", "principal", "staff", "experienced",
		"years", "veteran", "expert",
	},
	aspect.Company: {
		"company", "startup", "enterprise", "agency", "employer", "firm",
	},
	aspect.Location: {
		"remote", "local", "nearby", "relocate", "based in", "city", "area",
	},
	aspect.Network: {
		"connection", "mutual", "introduction", "intro", "referral", "community",
	},
	aspect.Goal: {
		"hiring", "looking for", "open to", "seeking", "opportunity",
		"cofounder", "co-founder", "mentor",
	},
	aspect.Education: {
		"university", "college", "degree", "bootcamp", "graduate", "phd",
		"alumni", "certification",
	},
	aspect.Summary: {
		"about", "profile", "bio",
	},
}

// patternTriggers is the minimal trigger-word list the pattern fallback
// scans. Each containment adds a fixed increment.
var patternTriggers = map[aspect.Aspect][]string{
	aspect.Skills:     {"skill", "developer", "engineer", "react", "python", "golang"},
	aspect.Experience: {"senior", "junior", "experience", "years", "lead"},
	aspect.Company:    {"company", "startup", "enterprise"},
	aspect.Location:   {"remote", "city", "relocate", "based"},
	aspect.Network:    {"connection", "intro", "referral", "mutual"},
	aspect.Goal:       {"hiring", "seeking", "looking", "open to"},
	aspect.Education:  {"degree", "university", "bootcamp", "alumni"},
	aspect.Summary:    {"about", "profile", "bio"},
}

const patternIncrement = 0.3

// heuristicIntent guesses a primary aspect by counting keyword-family hits.
// Ties resolve in canonical aspect order; zero hits default to Skills.
// Never fails and never blocks.
func heuristicIntent(query string, qc queryContext) intent.Analysis {
	q := strings.ToLower(query)

	primary := aspect.Skills
	best := 0
	var secondary []intent.Secondary

	for _, a := range aspect.All() {
		hits := 0
		for _, w := range aspectKeywords[a] {
			if strings.Contains(q, w) {
				hits++
			}
		}
		if hits > best {
			best = hits
			primary = a
		}
		if hits > 0 {
			secondary = append(secondary, intent.Secondary{
				Aspect:     a,
				Confidence: float64(hits) / float64(len(aspectKeywords[a])),
			})
		}
	}

	return intent.Analysis{
		Primary:     primary,
		Secondary:   secondary,
		Context:     "local keyword heuristic",
		Urgency:     qc.urgency,
		Specificity: qc.specificity,
	}
}

// heuristicPatterns scans for trigger words, each adding a fixed increment,
// capped at 1.0 per aspect.
func heuristicPatterns(query string) map[aspect.Aspect]float64 {
	q := strings.ToLower(query)

	out := make(map[aspect.Aspect]float64, len(aspect.All()))
	for _, a := range aspect.All() {
		var score float64
		for _, w := range patternTriggers[a] {
			if strings.Contains(q, w) {
				score += patternIncrement
			}
		}
		if score > 1 {
			score = 1
		}
		out[a] = score
	}
	return out
}
