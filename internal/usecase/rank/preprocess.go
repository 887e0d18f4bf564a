package rank

import "strings"

// importantTerms get double weight in the lexical scorer: role, seniority,
// location, and core tech words that carry most of a query's meaning.
var importantTerms = map[string]struct{}{
	"senior": {}, "junior": {}, "lead": {}, "staff": {}, "principal": {},
	"head": {}, "chief": {}, "director": {}, "manager": {}, "founder": {},
	"engineer": {}, "developer": {}, "designer": {}, "architect": {},
	"scientist": {}, "analyst": {}, "recruiter": {}, "consultant": {},
	"remote": {}, "onsite": {}, "hybrid": {}, "local": {},
	"react": {}, "python": {}, "golang": {}, "java": {}, "javascript": {},
	"typescript": {}, "rust": {}, "node": {}, "kubernetes": {}, "aws": {},
	"frontend": {}, "backend": {}, "fullstack": {}, "mobile": {}, "devops": {},
	"data": {}, "machine": {}, "learning": {},
}

var stemSuffixes = []string{"ing", "ed", "er", "ly"}

type queryTerm struct {
	text      string
	stem      string // empty when stemming changes nothing
	important bool
}

// preparedQuery is the per-request preprocessed form of the query text,
// computed once and reused across every candidate.
type preparedQuery struct {
	terms []queryTerm
}

// prepareQuery lowercases, tokenizes, drops tokens of length <= 2, tags
// important terms, and derives a naive suffix-stripped stem per token.
func prepareQuery(query string) *preparedQuery {
	tokens := strings.Fields(strings.ToLower(query))
	pq := &preparedQuery{terms: make([]queryTerm, 0, len(tokens))}
	for _, tok := range tokens {
		if len(tok) <= 2 {
			continue
		}
		_, important := importantTerms[tok]
		pq.terms = append(pq.terms, queryTerm{
			text:      tok,
			stem:      stem(tok),
			important: important,
		})
	}
	return pq
}

// stem strips one common suffix, keeping at least three characters. Returns
// "" when no suffix applies.
func stem(tok string) string {
	for _, suf := range stemSuffixes {
		if strings.HasSuffix(tok, suf) && len(tok)-len(suf) >= 3 {
			return tok[:len(tok)-len(suf)]
		}
	}
	return ""
}
