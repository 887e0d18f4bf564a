// Package openai implements the external classifier calls over any
// OpenAI-compatible chat completion API.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/meshly/contactrank/internal/domain"
	"github.com/meshly/contactrank/internal/domain/aspect"
	"github.com/meshly/contactrank/internal/domain/intent"
	"github.com/meshly/contactrank/internal/metrics"
)

const intentSystemPrompt = `You classify the intent of a people-search query over a professional contact network.
Respond with JSON only: {"primary": <aspect>, "secondary": [{"aspect": <aspect>, "confidence": <0..1>}], "context": <short note>, "urgency": "high"|"medium"|"low", "specificity": "specific"|"general"|"vague"}.
Valid aspects: skills, experience, company, location, network, goal, education, summary.`

const patternSystemPrompt = `You score which relevance aspects a people-search query emphasizes.
Respond with JSON only, one score in [0,1] per aspect: {"skills": <0..1>, "experience": <0..1>, "company": <0..1>, "location": <0..1>, "network": <0..1>, "goal": <0..1>, "education": <0..1>, "summary": <0..1>}.`

// Classifier calls an OpenAI-compatible chat API for intent analysis and
// pattern detection.
type Classifier struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// Config holds the classifier provider settings.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Logger  *zap.Logger
}

// NewClassifier creates an OpenAI-compatible classifier.
func NewClassifier(cfg *Config) *Classifier {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &Classifier{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
		logger: cfg.Logger,
	}
}

type intentResponse struct {
	Primary   string `json:"primary"`
	Secondary []struct {
		Aspect     string  `json:"aspect"`
		Confidence float64 `json:"confidence"`
	} `json:"secondary"`
	Context     string `json:"context"`
	Urgency     string `json:"urgency"`
	Specificity string `json:"specificity"`
}

// ClassifyIntent implements usecase/weights.IntentClassifier.
func (c *Classifier) ClassifyIntent(ctx context.Context, query string) (intent.Analysis, error) {
	raw, err := c.complete(ctx, "intent", intentSystemPrompt, query)
	if err != nil {
		return intent.Analysis{}, err
	}

	var parsed intentResponse
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return intent.Analysis{}, fmt.Errorf("parse intent response: %w: %w", err, domain.ErrClassifierUnavailable)
	}

	primary := aspect.Aspect(parsed.Primary)
	if !primary.IsValid() {
		return intent.Analysis{}, fmt.Errorf("unknown primary aspect %q: %w", parsed.Primary, domain.ErrClassifierUnavailable)
	}

	analysis := intent.Analysis{
		Primary:     primary,
		Context:     parsed.Context,
		Urgency:     parseUrgency(parsed.Urgency),
		Specificity: parseSpecificity(parsed.Specificity),
	}
	for _, s := range parsed.Secondary {
		a := aspect.Aspect(s.Aspect)
		if !a.IsValid() || a == primary {
			continue
		}
		analysis.Secondary = append(analysis.Secondary, intent.Secondary{
			Aspect:     a,
			Confidence: clamp01(s.Confidence),
		})
	}
	return analysis, nil
}

// DetectPatterns implements usecase/weights.PatternClassifier.
func (c *Classifier) DetectPatterns(ctx context.Context, query string) (map[aspect.Aspect]float64, error) {
	raw, err := c.complete(ctx, "pattern", patternSystemPrompt, query)
	if err != nil {
		return nil, err
	}

	var parsed map[string]float64
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("parse pattern response: %w: %w", err, domain.ErrClassifierUnavailable)
	}

	patterns := make(map[aspect.Aspect]float64, len(aspect.All()))
	for _, a := range aspect.All() {
		patterns[a] = clamp01(parsed[string(a)])
	}
	return patterns, nil
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (c *Classifier) HealthCheck(ctx context.Context) error {
	if _, err := c.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

// complete runs one JSON-mode chat completion and returns the raw content.
func (c *Classifier) complete(ctx context.Context, kind, system, query string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: query},
		},
	}

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, req)
	duration := time.Since(start)

	if err != nil {
		metrics.ClassifierRequestsTotal.WithLabelValues(kind, "error").Inc()
		return "", parseAPIError(kind, err)
	}
	if len(resp.Choices) == 0 {
		metrics.ClassifierRequestsTotal.WithLabelValues(kind, "error").Inc()
		return "", fmt.Errorf("empty %s classifier response: %w", kind, domain.ErrClassifierUnavailable)
	}

	metrics.ClassifierRequestsTotal.WithLabelValues(kind, "success").Inc()
	metrics.ClassifierRequestDuration.WithLabelValues(kind).Observe(duration.Seconds())

	return resp.Choices[0].Message.Content, nil
}

func parseUrgency(s string) intent.Urgency {
	switch intent.Urgency(s) {
	case intent.UrgencyHigh, intent.UrgencyMedium, intent.UrgencyLow:
		return intent.Urgency(s)
	default:
		return intent.UrgencyMedium
	}
}

func parseSpecificity(s string) intent.Specificity {
	switch intent.Specificity(s) {
	case intent.Specific, intent.GeneralSpec, intent.Vague:
		return intent.Specificity(s)
	default:
		return intent.GeneralSpec
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// parseAPIError extracts a human-readable error from the API response.
// All errors are wrapped with domain.ErrClassifierUnavailable so the caller
// degrades to the local heuristic.
func parseAPIError(kind string, err error) error {
	wrap := domain.ErrClassifierUnavailable

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		detail := extractDetail(reqErr.Body)
		if detail != "" {
			return fmt.Errorf("%s classifier API error %d: %s: %w",
				kind, reqErr.HTTPStatusCode, detail, wrap)
		}
		return fmt.Errorf("%s classifier API error %d: %s: %w",
			kind, reqErr.HTTPStatusCode, string(reqErr.Body), wrap)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%s classifier API error %d: %s: %w",
			kind, apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	return fmt.Errorf("%s classifier request failed: %w", kind, wrap)
}

// extractDetail extracts the "detail" field from a JSON error body.
func extractDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return ""
}
