package contactrank

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	addrs    []string
	password string

	classifierKey     string
	classifierBaseURL string
	classifierModel   string
	classifierTimeout time.Duration

	strategy  Strategy
	batchSize int
	poolSize  int

	cacheTTL time.Duration

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithRedis configures the client to connect to a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithClassifier enables the LLM intent classifier. model may be empty
// (defaults to gpt-4o-mini); baseURL may be empty for the OpenAI default.
func WithClassifier(apiKey, baseURL, model string) Option {
	return optionFunc(func(c *clientConfig) {
		c.classifierKey = apiKey
		c.classifierBaseURL = baseURL
		c.classifierModel = model
	})
}

// WithClassifierTimeout sets the per-classifier-call timeout. Default: 3s.
func WithClassifierTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.classifierTimeout = d
	})
}

// WithStrategy selects the weight synthesis strategy. Default: StrategyFull.
func WithStrategy(s Strategy) Option {
	return optionFunc(func(c *clientConfig) {
		c.strategy = s
	})
}

// WithBatchSize sets the number of candidates scored per worker task.
// Default: 50.
func WithBatchSize(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.batchSize = n
	})
}

// WithPoolSize sets the scoring worker pool size. Default: NumCPU.
func WithPoolSize(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.poolSize = n
	})
}

// WithResultCache enables the Redis-backed result cache with the given TTL.
// Disabled by default.
func WithResultCache(ttl time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheTTL = ttl
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
