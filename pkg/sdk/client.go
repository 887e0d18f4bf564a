package contactrank

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/meshly/contactrank/internal/db"
	dbRedis "github.com/meshly/contactrank/internal/db/redis"
	"github.com/meshly/contactrank/internal/domain/goal"
	"github.com/meshly/contactrank/internal/domain/search/request"
	"github.com/meshly/contactrank/internal/domain/search/result"
	"github.com/meshly/contactrank/internal/domain/weight"
	contactrepo "github.com/meshly/contactrank/internal/repository/contact"
	"github.com/meshly/contactrank/internal/repository/rescache"
	openaiClf "github.com/meshly/contactrank/internal/transport/openai"
	healthuc "github.com/meshly/contactrank/internal/usecase/health"
	rankuc "github.com/meshly/contactrank/internal/usecase/rank"
	weightsuc "github.com/meshly/contactrank/internal/usecase/weights"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces so tests can substitute the services.
type rankUseCase interface {
	Search(ctx context.Context, req *request.Request) (*result.Page, error)
}

type weightsUseCase interface {
	Synthesize(ctx context.Context, query string, g *goal.Goal) weight.Vector
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// Client is the contactrank SDK entry point.
type Client struct {
	store      db.Store
	rankSvc    rankUseCase
	weightsSvc weightsUseCase
	healthSvc  healthUseCase
	release    func()
	obs        *observer
}

// New creates a contactrank Client and connects to the database.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("contactrank: database address required (use WithRedis)")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Password: cfg.password,
	})
	if err != nil {
		return nil, fmt.Errorf("contactrank: create redis store: %w", err)
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("contactrank: database not ready: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		store.Close()
		return nil, err
	}
	return wireClient(store, cfg, obs)
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer) (*Client, error) {
	// Internal components log through zap; the SDK surfaces its own
	// observations via the observer instead.
	zl := zap.NewNop()

	var intentClf weightsuc.IntentClassifier
	var patternClf weightsuc.PatternClassifier
	var healthClf healthuc.ClassifierChecker
	if cfg.classifierKey != "" {
		clf := openaiClf.NewClassifier(&openaiClf.Config{
			APIKey:  cfg.classifierKey,
			BaseURL: cfg.classifierBaseURL,
			Model:   cfg.classifierModel,
			Logger:  zl,
		})
		intentClf = clf
		patternClf = clf
		healthClf = clf
	}

	synth := weightsuc.New(intentClf, patternClf, zl)
	if cfg.strategy != "" {
		synth.WithStrategy(weightsuc.Strategy(cfg.strategy))
	}
	if cfg.classifierTimeout > 0 {
		synth.WithTimeout(cfg.classifierTimeout)
	}

	contacts := contactrepo.New(store, zl)

	rankSvc, err := rankuc.New(contacts, synth, zl)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("contactrank: create rank service: %w", err)
	}
	if cfg.batchSize > 0 {
		rankSvc.WithBatchSize(cfg.batchSize)
	}
	if cfg.poolSize > 0 {
		rankSvc.WithPoolSize(cfg.poolSize)
	}
	if cfg.cacheTTL > 0 {
		rankSvc.WithCache(rescache.New(store, zl).WithTTL(cfg.cacheTTL))
	}

	healthSvc := healthuc.New(store, healthClf)

	return &Client{
		store:      store,
		rankSvc:    rankSvc,
		weightsSvc: synth,
		healthSvc:  healthSvc,
		release:    rankSvc.Release,
		obs:        obs,
	}, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.release != nil {
		c.release()
	}
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}
