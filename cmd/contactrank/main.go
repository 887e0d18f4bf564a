package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/meshly/contactrank/internal/config"
	dbRedis "github.com/meshly/contactrank/internal/db/redis"
	logpkg "github.com/meshly/contactrank/internal/logger"
	"github.com/meshly/contactrank/internal/metrics"
	contactrepo "github.com/meshly/contactrank/internal/repository/contact"
	"github.com/meshly/contactrank/internal/repository/rescache"
	chiTransport "github.com/meshly/contactrank/internal/transport/chi"
	openaiClf "github.com/meshly/contactrank/internal/transport/openai"
	healthuc "github.com/meshly/contactrank/internal/usecase/health"
	rankuc "github.com/meshly/contactrank/internal/usecase/rank"
	weightsuc "github.com/meshly/contactrank/internal/usecase/weights"
	"github.com/meshly/contactrank/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting contactrank API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	// Wait for database to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register search metrics explicitly (no init())
	metrics.RegisterSearchMetrics()

	// Classifier is optional; without an API key the synthesizer runs on
	// local heuristics alone.
	var classifier *openaiClf.Classifier
	if cfg.Classifier.APIKey != "" {
		classifier = openaiClf.NewClassifier(&openaiClf.Config{
			APIKey:  cfg.Classifier.APIKey,
			BaseURL: cfg.Classifier.BaseURL,
			Model:   cfg.Classifier.Model,
			Logger:  logger,
		})
		logger.Info("Classifier created", zap.String("model", cfg.Classifier.Model))
	} else {
		logger.Info("Classifier disabled, weight synthesis uses heuristics only")
	}

	// Pass nil interfaces (not typed nil pointers!) if the classifier is
	// not configured. Go gotcha: (*Classifier)(nil) wrapped in
	// IntentClassifier != nil.
	var (
		intentClf  weightsuc.IntentClassifier
		patternClf weightsuc.PatternClassifier
		healthClf  healthuc.ClassifierChecker
	)
	if classifier != nil {
		intentClf = classifier
		patternClf = classifier
		healthClf = classifier
	}

	synth := weightsuc.New(intentClf, patternClf, logger).
		WithStrategy(weightsuc.Strategy(cfg.Scoring.Strategy)).
		WithTimeout(time.Duration(cfg.Classifier.TimeoutSec) * time.Second)

	contacts := contactrepo.New(store, logger)

	rankSvc, err := rankuc.New(contacts, synth, logger)
	if err != nil {
		logger.Fatal("Failed to create rank service", zap.Error(err))
	}
	defer rankSvc.Release()
	rankSvc.WithBatchSize(cfg.Scoring.BatchSize)
	if cfg.Scoring.PoolSize > 0 {
		rankSvc.WithPoolSize(cfg.Scoring.PoolSize)
	}
	if cfg.Cache.Enabled {
		cache := rescache.New(store, logger).
			WithTTL(time.Duration(cfg.Cache.TTLSec) * time.Second)
		rankSvc.WithCache(cache)
		logger.Info("Result cache enabled", zap.Int("ttl_sec", cfg.Cache.TTLSec))
	}

	healthSvc := healthuc.New(store, healthClf)

	server := chiTransport.NewServer(rankSvc, synth, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
