// Package rank orders a user's contacts against one query: it resolves the
// weight vector, scores every active candidate lexically, thresholds, sorts,
// truncates, and degrades to a plain substring index when nothing passes.
package rank

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/meshly/contactrank/internal/domain"
	"github.com/meshly/contactrank/internal/domain/contact"
	"github.com/meshly/contactrank/internal/domain/search/filter"
	"github.com/meshly/contactrank/internal/domain/search/request"
	"github.com/meshly/contactrank/internal/domain/search/result"
	"github.com/meshly/contactrank/internal/domain/weight"
	"github.com/meshly/contactrank/internal/metrics"
)

// defaultBatchSize bounds how many candidates one pool task scores.
const defaultBatchSize = 50

// Service is the ranking entry point. Stateless between calls except for
// the scoring pool and the optional response cache.
type Service struct {
	contacts  ContactReader
	synth     Synthesizer
	cache     Cache // nil disables memoization
	pool      *ants.Pool
	batchSize int
	logger    *zap.Logger

	group singleflight.Group
}

// New creates a ranking service with a scoring pool sized to the host.
func New(contacts ContactReader, synth Synthesizer, logger *zap.Logger) (*Service, error) {
	pool, err := ants.NewPool(runtime.NumCPU())
	if err != nil {
		return nil, fmt.Errorf("create scoring pool: %w", err)
	}
	return &Service{
		contacts:  contacts,
		synth:     synth,
		pool:      pool,
		batchSize: defaultBatchSize,
		logger:    logger,
	}, nil
}

// WithCache enables response memoization.
func (s *Service) WithCache(c Cache) *Service {
	s.cache = c
	return s
}

// WithBatchSize overrides the per-task candidate batch size.
func (s *Service) WithBatchSize(n int) *Service {
	if n > 0 {
		s.batchSize = n
	}
	return s
}

// WithPoolSize resizes the scoring pool.
func (s *Service) WithPoolSize(n int) *Service {
	if n > 0 {
		s.pool.Tune(n)
	}
	return s
}

// Release tears down the scoring pool.
func (s *Service) Release() {
	s.pool.Release()
}

// Search ranks the user's contacts for one request. It never fails for "no
// results"; only candidate-store errors propagate.
func (s *Service) Search(ctx context.Context, req *request.Request) (*result.Page, error) {
	start := time.Now()
	page, err := s.searchCached(ctx, req)

	outcome := "ranked"
	switch {
	case err != nil:
		outcome = "error"
	case page.Fallback:
		outcome = "fallback"
	case len(page.Results) == 0:
		outcome = "empty"
	}
	metrics.SearchesTotal.WithLabelValues(outcome).Inc()
	metrics.SearchDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())

	if err != nil {
		return nil, err
	}
	metrics.CandidatesConsidered.Observe(float64(page.TotalCandidates))
	return page, nil
}

// searchCached wraps the ranking pass with the optional response cache. The
// cache is bypassed when the request carries its own weights or hard
// filters, since the cache key covers neither. Concurrent identical misses
// collapse into a single computation.
func (s *Service) searchCached(ctx context.Context, req *request.Request) (*result.Page, error) {
	if s.cache == nil || req.Weights() != nil || !req.Filters().IsEmpty() {
		return s.search(ctx, req)
	}

	key := s.cache.Key(req.UserID(), req.NormalizedQuery(), req.Goal())
	if page, ok := s.cache.Get(ctx, key); ok {
		metrics.ResponseCacheTotal.WithLabelValues("hit").Inc()
		return page, nil
	}
	metrics.ResponseCacheTotal.WithLabelValues("miss").Inc()

	ch := s.group.DoChan(key, func() (any, error) {
		page, err := s.search(ctx, req)
		if err != nil {
			return nil, err
		}
		s.cache.Set(ctx, key, page)
		return page, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			// The shared computation ran on the leader's context. When the
			// leader cancelled but this caller is still live, recompute here
			// instead of inheriting the leader's cancellation.
			if isContextErr(res.Err) && ctx.Err() == nil {
				page, err := s.search(ctx, req)
				if err != nil {
					return nil, err
				}
				s.cache.Set(ctx, key, page)
				return page, nil
			}
			return nil, res.Err
		}
		return res.Val.(*result.Page), nil
	}
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

type scoredCandidate struct {
	breakdown result.Breakdown
	total     float64
}

func (s *Service) search(ctx context.Context, req *request.Request) (*result.Page, error) {
	w := req.Weights()
	if w == nil {
		w = s.synth.Synthesize(ctx, req.Query(), req.Goal())
	}

	records, err := s.contacts.ListActive(ctx, req.UserID())
	if err != nil {
		return nil, fmt.Errorf("%w: list contacts: %w", domain.ErrStoreUnavailable, err)
	}

	// Goal preference constraints are hard filters too.
	if f := filter.WithPreferences(req.Filters(), req.Goal()); !f.IsEmpty() {
		kept := records[:0]
		for i := range records {
			if f.Matches(&records[i]) {
				kept = append(kept, records[i])
			}
		}
		records = kept
	}
	total := len(records)

	pq := prepareQuery(req.Query())
	scores, err := s.scoreAll(ctx, pq, records, w)
	if err != nil {
		return nil, err
	}

	hits := make([]result.Result, 0, len(records))
	for i := range records {
		if scores[i].total >= req.Threshold() {
			hits = append(hits, result.New(
				records[i].ID(), records[i].Payload(), scores[i].total, scores[i].breakdown,
			))
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score() > hits[j].Score() })
	if len(hits) > req.Limit() {
		hits = hits[:req.Limit()]
	}

	if len(hits) == 0 {
		return s.fallback(ctx, req, w, total)
	}

	s.logger.Debug("ranked contacts",
		zap.Int("candidates", total),
		zap.Int("results", len(hits)),
	)
	return &result.Page{
		Results:         hits,
		Weights:         w,
		TotalCandidates: total,
	}, nil
}

// scoreAll scores candidates in bounded batches on the shared pool. A
// cancelled context discards all partial work.
func (s *Service) scoreAll(
	ctx context.Context, pq *preparedQuery, records []contact.Record, w weight.Vector,
) ([]scoredCandidate, error) {
	scores := make([]scoredCandidate, len(records))

	var wg sync.WaitGroup
	for begin := 0; begin < len(records); begin += s.batchSize {
		if ctx.Err() != nil {
			break
		}
		end := begin + s.batchSize
		if end > len(records) {
			end = len(records)
		}
		batch := records[begin:end]
		out := scores[begin:end]

		task := func() {
			defer wg.Done()
			for i := range batch {
				if ctx.Err() != nil {
					return
				}
				bd, total := scoreRecord(pq, &batch[i], w)
				out[i] = scoredCandidate{breakdown: bd, total: total}
			}
		}
		wg.Add(1)
		if err := s.pool.Submit(task); err != nil {
			// Pool released or overloaded; score on the caller's goroutine.
			task()
		}
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return scores, nil
}

// fallback runs the plain substring index so the caller gets a best-effort
// answer whenever any textual match exists at all.
func (s *Service) fallback(
	ctx context.Context, req *request.Request, w weight.Vector, total int,
) (*result.Page, error) {
	matches, err := s.contacts.SearchSubstring(ctx, req.UserID(), req.Query(), req.Limit())
	if err != nil {
		return nil, fmt.Errorf("%w: fallback index: %w", domain.ErrStoreUnavailable, err)
	}

	hits := make([]result.Result, 0, len(matches))
	for i := range matches {
		hits = append(hits, result.NewFallback(matches[i].ID(), matches[i].Payload(), i))
	}

	s.logger.Debug("fallback substring search",
		zap.Int("candidates", total),
		zap.Int("results", len(hits)),
	)
	return &result.Page{
		Results:         hits,
		Weights:         w,
		TotalCandidates: total,
		Fallback:        len(hits) > 0,
	}, nil
}
