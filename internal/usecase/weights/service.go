// Package weights synthesizes the per-aspect weight distribution for one
// query from classifier output, pattern scores, contextual heuristics, and
// the user's stated goal.
package weights

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/meshly/contactrank/internal/domain/aspect"
	"github.com/meshly/contactrank/internal/domain/goal"
	"github.com/meshly/contactrank/internal/domain/intent"
	"github.com/meshly/contactrank/internal/domain/weight"
	"github.com/meshly/contactrank/internal/metrics"
)

// Blend coefficients for the three weight sources.
const (
	intentShare  = 0.6
	patternShare = 0.3
	contextShare = 0.1

	primaryContribution   = 0.8
	secondaryContribution = 0.1

	// Context contribution is identical for every aspect: it rescales,
	// it does not discriminate.
	specificContext = 0.2
	generalContext  = 0.1

	urgencyBoost     = 1.2
	specificityBoost = 1.3
)

// Strategy selects the synthesis path.
type Strategy string

const (
	// StrategyFull runs the classifier-backed blend.
	StrategyFull Strategy = "full"
	// StrategyBasic runs the keyword-only weight table.
	StrategyBasic Strategy = "basic"
)

const defaultClassifierTimeout = 3 * time.Second

// Synthesizer derives a normalized WeightVector per query. It never fails:
// classifier errors and timeouts degrade to local heuristics.
type Synthesizer struct {
	intent   IntentClassifier
	pattern  PatternClassifier
	strategy Strategy
	timeout  time.Duration
	logger   *zap.Logger
}

// New creates a Synthesizer. Either classifier may be nil; the local
// heuristic then covers that source permanently.
func New(ic IntentClassifier, pc PatternClassifier, logger *zap.Logger) *Synthesizer {
	return &Synthesizer{
		intent:   ic,
		pattern:  pc,
		strategy: StrategyFull,
		timeout:  defaultClassifierTimeout,
		logger:   logger,
	}
}

// WithStrategy selects the synthesis strategy.
func (s *Synthesizer) WithStrategy(st Strategy) *Synthesizer {
	if st != "" {
		s.strategy = st
	}
	return s
}

// WithTimeout sets the per-classifier-call timeout.
func (s *Synthesizer) WithTimeout(d time.Duration) *Synthesizer {
	if d > 0 {
		s.timeout = d
	}
	return s
}

// Synthesize returns a normalized weight vector for the query. The two
// classifier calls run concurrently, each with its own timeout and its own
// fallback, so one slow call cannot block or invalidate the other.
func (s *Synthesizer) Synthesize(ctx context.Context, query string, g *goal.Goal) weight.Vector {
	if s.strategy == StrategyBasic {
		return basicWeights(query, g)
	}

	qc := analyzeContext(query)

	var (
		analysis intent.Analysis
		patterns map[aspect.Aspect]float64
		wg       sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		analysis = s.classifyIntent(ctx, query, qc)
	}()
	go func() {
		defer wg.Done()
		patterns = s.detectPatterns(ctx, query)
	}()
	wg.Wait()

	raw := make(weight.Vector, len(aspect.All()))
	contextContribution := generalContext
	if qc.specificity == intent.Specific {
		contextContribution = specificContext
	}
	for _, a := range aspect.All() {
		intentContribution := secondaryContribution
		if a == analysis.Primary {
			intentContribution = primaryContribution
		}
		raw[a] = intentShare*intentContribution +
			patternShare*patterns[a] +
			contextShare*contextContribution
	}

	applyGoal(raw, g)

	if qc.urgency == intent.UrgencyHigh {
		raw[aspect.Skills] *= urgencyBoost
		raw[aspect.Experience] *= urgencyBoost
	}
	if qc.specificity == intent.Specific {
		raw[analysis.Primary] *= specificityBoost
	}

	s.logger.Debug("synthesized weights",
		zap.String("primary", string(analysis.Primary)),
		zap.String("urgency", string(qc.urgency)),
		zap.String("specificity", string(qc.specificity)),
		zap.String("complexity", string(qc.complexity)),
	)

	return raw.Normalize()
}

// classifyIntent calls the external intent classifier with a timeout,
// degrading to the local keyword heuristic on any failure.
func (s *Synthesizer) classifyIntent(ctx context.Context, query string, qc queryContext) intent.Analysis {
	if s.intent == nil {
		return heuristicIntent(query, qc)
	}

	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	analysis, err := s.intent.ClassifyIntent(cctx, query)
	if err != nil || !analysis.Primary.IsValid() {
		metrics.ClassifierFallbacksTotal.WithLabelValues("intent").Inc()
		s.logger.Warn("intent classifier degraded, using local heuristic",
			zap.Error(err),
		)
		return heuristicIntent(query, qc)
	}
	return analysis
}

// detectPatterns calls the external pattern classifier with a timeout,
// degrading to the trigger-word heuristic on any failure. Scores are
// clamped to [0,1].
func (s *Synthesizer) detectPatterns(ctx context.Context, query string) map[aspect.Aspect]float64 {
	if s.pattern == nil {
		return heuristicPatterns(query)
	}

	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	patterns, err := s.pattern.DetectPatterns(cctx, query)
	if err != nil || patterns == nil {
		metrics.ClassifierFallbacksTotal.WithLabelValues("pattern").Inc()
		s.logger.Warn("pattern classifier degraded, using local heuristic",
			zap.Error(err),
		)
		return heuristicPatterns(query)
	}

	out := make(map[aspect.Aspect]float64, len(aspect.All()))
	for _, a := range aspect.All() {
		v := patterns[a]
		if v < 0 {
			v = 0
		} else if v > 1 {
			v = 1
		}
		out[a] = v
	}
	return out
}

// applyGoal multiplies aspect weights by the goal's fixed multiplier table.
func applyGoal(w weight.Vector, g *goal.Goal) {
	if g == nil {
		return
	}
	for a, m := range g.Type.Multipliers() {
		w[a] *= m
	}
}
