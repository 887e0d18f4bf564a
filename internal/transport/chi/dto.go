package chi

import (
	"fmt"

	"github.com/meshly/contactrank/internal/domain"
	"github.com/meshly/contactrank/internal/domain/aspect"
	"github.com/meshly/contactrank/internal/domain/goal"
	"github.com/meshly/contactrank/internal/domain/search/filter"
	"github.com/meshly/contactrank/internal/domain/search/request"
	"github.com/meshly/contactrank/internal/domain/search/result"
	"github.com/meshly/contactrank/internal/domain/weight"
)

type searchRequestDTO struct {
	Query     string             `json:"query"`
	UserID    string             `json:"userId"`
	Weights   map[string]float64 `json:"weights,omitempty"`
	Goal      *goalDTO           `json:"goal,omitempty"`
	Filters   *filtersDTO        `json:"filters,omitempty"`
	Limit     int                `json:"limit,omitempty"`
	Threshold float64            `json:"threshold,omitempty"`
}

type goalDTO struct {
	Type        string          `json:"type"`
	Description string          `json:"description,omitempty"`
	Keywords    []string        `json:"keywords,omitempty"`
	Preferences *preferencesDTO `json:"preferences,omitempty"`
}

type preferencesDTO struct {
	Locations       []string `json:"locations,omitempty"`
	Industries      []string `json:"industries,omitempty"`
	Skills          []string `json:"skills,omitempty"`
	ExperienceLevel string   `json:"experienceLevel,omitempty"`
}

type filtersDTO struct {
	Skills     []string `json:"skills,omitempty"`
	Companies  []string `json:"companies,omitempty"`
	Locations  []string `json:"locations,omitempty"`
	Industries []string `json:"industries,omitempty"`
	Hiring     *bool    `json:"hiring,omitempty"`
	OpenToWork *bool    `json:"openToWork,omitempty"`
}

type searchResponseDTO struct {
	Results                   []resultDTO        `json:"results"`
	Weights                   map[string]float64 `json:"weights"`
	TotalCandidatesConsidered int                `json:"totalCandidatesConsidered"`
	Fallback                  bool               `json:"fallback"`
}

type resultDTO struct {
	ConnectionID string             `json:"connectionId"`
	Connection   map[string]any     `json:"connection"`
	Score        float64            `json:"score"`
	Breakdown    map[string]float64 `json:"breakdown"`
	Relevance    string             `json:"relevance"`
}

type weightsRequestDTO struct {
	Query string   `json:"query"`
	Goal  *goalDTO `json:"goal,omitempty"`
}

type weightsResponseDTO struct {
	Weights map[string]float64 `json:"weights"`
}

type healthResponseDTO struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

type errorResponseDTO struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func searchRequestFromDTO(dto *searchRequestDTO) (*request.Request, error) {
	weights, err := weightsFromDTO(dto.Weights)
	if err != nil {
		return nil, err
	}
	g, err := goalFromDTO(dto.Goal)
	if err != nil {
		return nil, err
	}

	req, err := request.New(
		dto.Query, dto.UserID, weights, g, filtersFromDTO(dto.Filters), dto.Limit, dto.Threshold,
	)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func weightsFromDTO(m map[string]float64) (weight.Vector, error) {
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

func goalFromDTO(dto *goalDTO) (*goal.Goal, error) {
	if dto == nil {
		return nil, nil
	}
	t := goal.Type(dto.Type)
	if !t.IsValid() {
		return nil, fmt.Errorf("%w: unknown goal type %q", domain.ErrInvalidRequest, dto.Type)
	}
	g := &goal.Goal{
		Type:        t,
		Description: dto.Description,
		Keywords:    dto.Keywords,
	}
	if p := dto.Preferences; p != nil {
		g.Preferences = goal.Preferences{
			Locations:       p.Locations,
			Industries:      p.Industries,
			Skills:          p.Skills,
			ExperienceLevel: p.ExperienceLevel,
		}
	}
	return g, nil
}

func filtersFromDTO(dto *filtersDTO) *filter.Filters {
	if dto == nil {
		return nil
	}
	return &filter.Filters{
		Skills:     dto.Skills,
		Companies:  dto.Companies,
		Locations:  dto.Locations,
		Industries: dto.Industries,
		Hiring:     dto.Hiring,
		OpenToWork: dto.OpenToWork,
	}
}

func pageToDTO(page *result.Page) searchResponseDTO {
	resp := searchResponseDTO{
		Results:                   make([]resultDTO, 0, len(page.Results)),
		Weights:                   weightsToDTO(page.Weights),
		TotalCandidatesConsidered: page.TotalCandidates,
		Fallback:                  page.Fallback,
	}
	for i := range page.Results {
		resp.Results = append(resp.Results, resultToDTO(&page.Results[i]))
	}
	return resp
}

func resultToDTO(r *result.Result) resultDTO {
	breakdown := make(map[string]float64, len(r.Breakdown()))
	for a, s := range r.Breakdown() {
		breakdown[string(a)+"Score"] = s
	}
	return resultDTO{
		ConnectionID: r.ConnectionID(),
		Connection:   r.Connection(),
		Score:        r.Score(),
		Breakdown:    breakdown,
		Relevance:    string(r.Relevance()),
	}
}

func weightsToDTO(v weight.Vector) map[string]float64 {
	m := make(map[string]float64, len(v))
	for a, w := range v {
		m[string(a)] = w
	}
	return m
}
