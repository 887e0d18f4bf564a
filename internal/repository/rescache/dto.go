package rescache

import (
	"github.com/meshly/contactrank/internal/domain/aspect"
	"github.com/meshly/contactrank/internal/domain/search/result"
	"github.com/meshly/contactrank/internal/domain/weight"
)

// pageDoc is the stored JSON shape of one cached response page.
type pageDoc struct {
	Results         []resultDoc        `json:"results"`
	Weights         map[string]float64 `json:"weights"`
	TotalCandidates int                `json:"totalCandidates"`
	Fallback        bool               `json:"fallback"`
}

type resultDoc struct {
	ConnectionID string             `json:"connectionId"`
	Connection   map[string]any     `json:"connection"`
	Score        float64            `json:"score"`
	Breakdown    map[string]float64 `json:"breakdown"`
}

func newPageDoc(page *result.Page) pageDoc {
	doc := pageDoc{
		Results:         make([]resultDoc, 0, len(page.Results)),
		Weights:         make(map[string]float64, len(page.Weights)),
		TotalCandidates: page.TotalCandidates,
		Fallback:        page.Fallback,
	}
	for a, w := range page.Weights {
		doc.Weights[string(a)] = w
	}
	for i := range page.Results {
		r := &page.Results[i]
		rd := resultDoc{
			ConnectionID: r.ConnectionID(),
			Connection:   r.Connection(),
			Score:        r.Score(),
			Breakdown:    make(map[string]float64, len(r.Breakdown())),
		}
		for a, s := range r.Breakdown() {
			rd.Breakdown[string(a)] = s
		}
		doc.Results = append(doc.Results, rd)
	}
	return doc
}

// toPage rebuilds the domain page. Relevance buckets are a pure function of
// the score, so they are re-derived rather than stored.
func (d *pageDoc) toPage() *result.Page {
	page := &result.Page{
		Results:         make([]result.Result, 0, len(d.Results)),
		Weights:         make(weight.Vector, len(d.Weights)),
		TotalCandidates: d.TotalCandidates,
		Fallback:        d.Fallback,
	}
	for k, w := range d.Weights {
		page.Weights[aspect.Aspect(k)] = w
	}
	for i := range d.Results {
		rd := &d.Results[i]
		breakdown := make(result.Breakdown, len(rd.Breakdown))
		for k, s := range rd.Breakdown {
			breakdown[aspect.Aspect(k)] = s
		}
		page.Results = append(page.Results, result.New(rd.ConnectionID, rd.Connection, rd.Score, breakdown))
	}
	return page
}
