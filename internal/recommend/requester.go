package recommend

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_chat_client.go -package=mocks paperrec/internal/recommend ChatClient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"paperrec/internal/contextutil"
	"paperrec/internal/llm"
)

var (
	// ErrRateLimited is returned when the endpoint or the local call budget refuses the call.
	ErrRateLimited = errors.New("llm rate limited")
	// ErrQuotaExceeded is returned when the endpoint reports payment required.
	ErrQuotaExceeded = errors.New("llm quota exceeded")
	// ErrUpstream covers every other transport or status failure.
	ErrUpstream = errors.New("llm request failed")
	// ErrNotConfigured is returned when the client has no credential.
	ErrNotConfigured = errors.New("llm not configured")
)

// ChatClient is the completion endpoint the requester calls.
type ChatClient interface {
	ChatWithMessages(ctx context.Context, messages []llm.Message, params llm.ChatParams) (string, error)
}

type configuredChecker interface {
	Configured() error
}

// RequesterConfig holds the completion parameters.
type RequesterConfig struct {
	Model       string
	Count       int
	MaxTokens   int
	Temperature float32
	// RateLimit is the local call budget in calls per second; zero disables it.
	RateLimit float64
	RateBurst int
}

// Requester asks the model for recommendations. It makes exactly one call per
// Request and never retries.
type Requester struct {
	client  ChatClient
	cfg     RequesterConfig
	limiter *rate.Limiter
}

// NewRequester creates a Requester.
func NewRequester(client ChatClient, cfg RequesterConfig) *Requester {
	r := &Requester{client: client, cfg: cfg}
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst <= 0 {
			burst = 1
		}
		r.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	return r
}

// Configured reports ErrNotConfigured when the client cannot authenticate.
func (r *Requester) Configured() error {
	if c, ok := r.client.(configuredChecker); ok {
		if err := c.Configured(); err != nil {
			return fmt.Errorf("%w: %v", ErrNotConfigured, err)
		}
	}
	return nil
}

// Request calls the model once and extracts its recommendations. Errors wrap
// ErrRateLimited, ErrQuotaExceeded, ErrNotConfigured, ErrUpstream or
// ErrUnparseable; the caller is expected to fall back on any of them.
func (r *Requester) Request(ctx context.Context, query string) ([]Recommendation, error) {
	logger := contextutil.LoggerFromContext(ctx).With("component", "llm_requester")

	if r.limiter != nil && !r.limiter.Allow() {
		logger.WarnContext(ctx, "local LLM call budget exhausted")
		return nil, fmt.Errorf("%w: local call budget exhausted", ErrRateLimited)
	}

	messages := BuildMessages(query, r.cfg.Count)
	logger.DebugContext(ctx, "sending request to LLM",
		"query", query,
		"count", r.cfg.Count,
		"system_prompt_length", len(messages[0].Content),
	)

	start := time.Now()
	content, err := r.client.ChatWithMessages(ctx, messages, llm.ChatParams{
		Model:       r.cfg.Model,
		MaxTokens:   r.cfg.MaxTokens,
		Temperature: r.cfg.Temperature,
	})
	if err != nil {
		return nil, classify(err)
	}

	logger.InfoContext(ctx, "received LLM response",
		"content_length", len(content),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	recs, err := ExtractRecommendations(content)
	if err != nil {
		preview := content
		if len(preview) > 500 {
			preview = preview[:500] + "..."
		}
		logger.WarnContext(ctx, "failed to parse LLM response", "error", err, "preview", preview)
		return nil, err
	}

	logger.InfoContext(ctx, "parsed LLM recommendations", "count", len(recs))
	return recs, nil
}

func classify(err error) error {
	if errors.Is(err, llm.ErrMissingAPIKey) {
		return fmt.Errorf("%w: %v", ErrNotConfigured, err)
	}
	var statusErr *llm.StatusError
	if errors.As(err, &statusErr) {
		switch statusErr.StatusCode {
		case http.StatusTooManyRequests:
			return fmt.Errorf("%w: %v", ErrRateLimited, err)
		case http.StatusPaymentRequired:
			return fmt.Errorf("%w: %v", ErrQuotaExceeded, err)
		}
	}
	return fmt.Errorf("%w: %v", ErrUpstream, err)
}
