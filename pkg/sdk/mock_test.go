package contactrank

import (
	"context"

	"github.com/meshly/contactrank/internal/domain/goal"
	"github.com/meshly/contactrank/internal/domain/search/request"
	"github.com/meshly/contactrank/internal/domain/search/result"
	"github.com/meshly/contactrank/internal/domain/weight"
	healthuc "github.com/meshly/contactrank/internal/usecase/health"
)

// --- rankUseCase mock ---

type mockRankUC struct {
	searchFn func(ctx context.Context, req *request.Request) (*result.Page, error)
}

func (m *mockRankUC) Search(ctx context.Context, req *request.Request) (*result.Page, error) {
	return m.searchFn(ctx, req)
}

// --- weightsUseCase mock ---

type mockWeightsUC struct {
	synthFn func(ctx context.Context, query string, g *goal.Goal) weight.Vector
}

func (m *mockWeightsUC) Synthesize(ctx context.Context, query string, g *goal.Goal) weight.Vector {
	return m.synthFn(ctx, query, g)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	checkFn func(ctx context.Context) healthuc.Report
}

func (m *mockHealthUC) Check(ctx context.Context) healthuc.Report {
	return m.checkFn(ctx)
}

// --- helpers ---

func testClient(
	rankSvc rankUseCase,
	weightsSvc weightsUseCase,
	healthSvc healthUseCase,
) *Client {
	return &Client{
		rankSvc:    rankSvc,
		weightsSvc: weightsSvc,
		healthSvc:  healthSvc,
	}
}
