package contactrank

import (
	"context"
	"fmt"
	"time"

	"github.com/meshly/contactrank/internal/domain"
	"github.com/meshly/contactrank/internal/domain/aspect"
	"github.com/meshly/contactrank/internal/domain/goal"
	"github.com/meshly/contactrank/internal/domain/search/filter"
	"github.com/meshly/contactrank/internal/domain/search/request"
	"github.com/meshly/contactrank/internal/domain/search/result"
	"github.com/meshly/contactrank/internal/domain/weight"
)

// Search ranks the user's contacts against the query. opts may be nil.
func (c *Client) Search(
	ctx context.Context, userID, query string, opts *SearchOptions,
) (page *SearchPage, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search", start, err) }()

	if opts == nil {
		opts = &SearchOptions{}
	}

	weights, err := weightsFromSDK(opts.Weights)
	if err != nil {
		return nil, err
	}

	req, err := request.New(
		query, userID, weights, goalFromSDK(opts.Goal), filtersFromSDK(opts.Filters),
		opts.Limit, opts.Threshold,
	)
	if err != nil {
		return nil, err
	}

	p, err := c.rankSvc.Search(ctx, &req)
	if err != nil {
		return nil, err
	}
	return pageFromDomain(p), nil
}

// Weights runs weight synthesis alone, without ranking. The returned vector
// is normalized and keyed by aspect name; it can be passed back via
// SearchOptions.Weights.
func (c *Client) Weights(ctx context.Context, query string, g *Goal) map[string]float64 {
	start := time.Now()
	defer func() { c.obs.observe("weights", start, nil) }()

	return weightsToSDK(c.weightsSvc.Synthesize(ctx, query, goalFromSDK(g)))
}

// --- converters ---

func weightsFromSDK(m map[string]float64) (weight.Vector, error) {
	if m == nil {
		return nil, nil
	}
	v := make(weight.Vector, len(m))
	for k, w := range m {
		a := aspect.Aspect(k)
		if !a.IsValid() {
			return nil, fmt.Errorf("%w: unknown weight aspect %q", domain.ErrInvalidRequest, k)
		}
		v[a] = w
	}
	return v, nil
}

func weightsToSDK(v weight.Vector) map[string]float64 {
	m := make(map[string]float64, len(v))
	for a, w := range v {
		m[string(a)] = w
	}
	return m
}

func goalFromSDK(g *Goal) *goal.Goal {
	if g == nil {
		return nil
	}
	out := &goal.Goal{
		Type:        goal.Type(g.Type),
		Description: g.Description,
		Keywords:    g.Keywords,
	}
	if p := g.Preferences; p != nil {
		out.Preferences = goal.Preferences{
			Locations:       p.Locations,
			Industries:      p.Industries,
			Skills:          p.Skills,
			ExperienceLevel: p.ExperienceLevel,
		}
	}
	return out
}

func filtersFromSDK(f *Filters) *filter.Filters {
	if f == nil {
		return nil
	}
	return &filter.Filters{
		Skills:     f.Skills,
		Companies:  f.Companies,
		Locations:  f.Locations,
		Industries: f.Industries,
		Hiring:     f.Hiring,
		OpenToWork: f.OpenToWork,
	}
}

func pageFromDomain(p *result.Page) *SearchPage {
	page := &SearchPage{
		Results:         make([]SearchResult, 0, len(p.Results)),
		Weights:         weightsToSDK(p.Weights),
		TotalCandidates: p.TotalCandidates,
		Fallback:        p.Fallback,
	}
	for i := range p.Results {
		r := &p.Results[i]
		breakdown := make(map[string]float64, len(r.Breakdown()))
		for a, s := range r.Breakdown() {
			breakdown[string(a)] = s
		}
		page.Results = append(page.Results, SearchResult{
			ConnectionID: r.ConnectionID(),
			Connection:   r.Connection(),
			Score:        r.Score(),
			Breakdown:    breakdown,
			Relevance:    string(r.Relevance()),
		})
	}
	return page
}
