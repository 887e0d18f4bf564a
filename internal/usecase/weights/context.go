package weights

import (
	"strings"

	"github.com/meshly/contactrank/internal/domain/intent"
)

// queryContext is the contextual classification derived from the query text
// alone, with no external call.
type queryContext struct {
	urgency     intent.Urgency
	specificity intent.Specificity
	complexity  intent.Complexity
}

var urgentWords = []string{
	"urgent", "asap", "immediately", "right away", "today", "this week", "quickly",
}

var relaxedWords = []string{
	"eventually", "someday", "sometime", "exploring", "curious", "no rush",
}

var specificWords = []string{
	"senior", "junior", "lead", "staff", "principal", "engineer", "developer",
	"designer", "manager", "director", "founder", "remote", "react", "python",
	"golang", "typescript", "kubernetes",
}

var vagueWords = []string{
	"help", "someone", "anyone", "anything", "stuff", "whatever",
}

// analyzeContext classifies urgency, specificity, and complexity by fixed
// word lists and token-count thresholds.
func analyzeContext(query string) queryContext {
	q := strings.ToLower(query)
	tokens := strings.Fields(q)

	qc := queryContext{
		urgency:     intent.UrgencyMedium,
		specificity: intent.GeneralSpec,
	}

	if containsAny(q, urgentWords) {
		qc.urgency = intent.UrgencyHigh
	} else if containsAny(q, relaxedWords) {
		qc.urgency = intent.UrgencyLow
	}

	if containsAny(q, specificWords) {
		qc.specificity = intent.Specific
	} else if containsAny(q, vagueWords) {
		qc.specificity = intent.Vague
	}

	switch {
	case len(tokens) < 5:
		qc.complexity = intent.Simple
	case len(tokens) < 10:
		qc.complexity = intent.Moderate
	default:
		qc.complexity = intent.Complex
	}

	return qc
}

func containsAny(q string, words []string) bool {
	for _, w := range words {
		if strings.Contains(q, w) {
			return true
		}
	}
	return false
}
