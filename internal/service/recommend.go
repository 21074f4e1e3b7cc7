package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_recommend_deps.go -package=mocks paperrec/internal/service CorpusLoader,LLMRequester
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_recommend_service.go -package=mocks -mock_names=RecommendService=MockRecommendService paperrec/internal/service RecommendService

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"paperrec/internal/clarify"
	"paperrec/internal/contextutil"
	"paperrec/internal/corpus"
	"paperrec/internal/metrics"
	"paperrec/internal/recommend"
)

// Classifier decides whether a query needs a clarifying question.
type Classifier interface {
	Classify(query string) clarify.Result
}

// CorpusLoader supplies the corpus for one request. It never fails; an
// unreachable corpus yields an empty slice.
type CorpusLoader interface {
	Load(ctx context.Context) []corpus.Record
}

// LLMRequester asks the model for recommendations.
type LLMRequester interface {
	Configured() error
	Request(ctx context.Context, query string) ([]recommend.Recommendation, error)
}

// RecommendRequest is a recommendation request in the domain layer.
type RecommendRequest struct {
	Query          string
	SelectedOption string
}

// RecommendResponse carries either a clarification or a recommendation batch.
type RecommendResponse struct {
	NeedsClarify bool
	Question     string
	Options      []string

	Recommendations []recommend.Recommendation
	ClarifiedQuery  string
}

// RecommendConfig holds the batch parameters.
type RecommendConfig struct {
	TargetCount int
	MinScore    float64
	// PassthroughLimits surfaces upstream rate-limit and quota errors instead of
	// answering with the fallback batch.
	PassthroughLimits bool
	// NewRand returns the random source for one request. Nil uses a fresh PCG.
	NewRand func() recommend.Rand
}

// RecommendService produces paper and dataset recommendations.
type RecommendService interface {
	// Recommend answers with a clarification question or a ranked batch.
	Recommend(ctx context.Context, req RecommendRequest) (RecommendResponse, error)
}

type recommendService struct {
	classifier Classifier
	loader     CorpusLoader
	requester  LLMRequester
	fallback   *recommend.Fallback
	cfg        RecommendConfig
}

// NewRecommendService creates a new RecommendService.
func NewRecommendService(classifier Classifier, loader CorpusLoader, requester LLMRequester, cfg RecommendConfig) RecommendService {
	if cfg.NewRand == nil {
		cfg.NewRand = func() recommend.Rand {
			return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		}
	}
	return &recommendService{
		classifier: classifier,
		loader:     loader,
		requester:  requester,
		fallback:   recommend.NewFallback(cfg.TargetCount, cfg.MinScore),
		cfg:        cfg,
	}
}

// Recommend runs classification, then the corpus load and the model call
// concurrently, and merges both into one batch.
func (s *recommendService) Recommend(ctx context.Context, req RecommendRequest) (RecommendResponse, error) {
	logger := contextutil.LoggerFromContext(ctx).With("component", "recommend_service")
	start := time.Now()
	outcome := metrics.OutcomeError
	defer func() {
		metrics.RecommendRequests.WithLabelValues(outcome).Inc()
		metrics.RecommendDuration.Observe(time.Since(start).Seconds())
	}()

	if err := s.requester.Configured(); err != nil {
		logger.ErrorContext(ctx, "recommendation service is not configured", "error", err)
		return RecommendResponse{}, wrapCause(ErrConfiguration, err)
	}

	query := strings.TrimSpace(req.Query)
	option := strings.TrimSpace(req.SelectedOption)

	if option == "" {
		if res := s.classifier.Classify(query); res.NeedsClarify {
			logger.InfoContext(ctx, "query needs clarification", "query", query, "options", len(res.Options))
			outcome = metrics.OutcomeClarify
			return RecommendResponse{
				NeedsClarify: true,
				Question:     res.Question,
				Options:      res.Options,
			}, nil
		}
	}

	searchQuery := query
	if option != "" {
		searchQuery = option + " " + query
	}

	var (
		records []corpus.Record
		llmRecs []recommend.Recommendation
		llmErr  error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		defer recoverStage("corpus", &err)
		records = s.loader.Load(gctx)
		return nil
	})
	g.Go(func() (err error) {
		defer recoverStage("llm", &err)
		llmRecs, llmErr = s.requester.Request(gctx, searchQuery)
		return nil
	})
	if err := g.Wait(); err != nil {
		logger.ErrorContext(ctx, "recommendation pipeline failed", "error", err)
		return RecommendResponse{}, err
	}
	metrics.CorpusRecords.Set(float64(len(records)))

	if llmErr != nil {
		reason := failureReason(llmErr)
		metrics.LLMFailures.WithLabelValues(reason).Inc()

		switch {
		case errors.Is(llmErr, recommend.ErrNotConfigured):
			logger.ErrorContext(ctx, "LLM client rejected missing credential", "error", llmErr)
			return RecommendResponse{}, wrapCause(ErrConfiguration, llmErr)
		case s.cfg.PassthroughLimits && errors.Is(llmErr, recommend.ErrRateLimited):
			logger.WarnContext(ctx, "LLM rate limited", "error", llmErr)
			return RecommendResponse{}, wrapCause(ErrRateLimited, llmErr)
		case s.cfg.PassthroughLimits && errors.Is(llmErr, recommend.ErrQuotaExceeded):
			logger.WarnContext(ctx, "LLM quota exceeded", "error", llmErr)
			return RecommendResponse{}, wrapCause(ErrQuotaExceeded, llmErr)
		}

		logger.WarnContext(ctx, "LLM request failed, answering from fallback", "error", llmErr, "reason", reason)
		llmRecs = nil
	}

	llmTitles := make([]string, len(llmRecs))
	for i, r := range llmRecs {
		llmTitles[i] = r.Title
	}
	fallback := s.fallback.Generate(searchQuery, records, s.cfg.NewRand(), llmTitles...)
	recs := recommend.Merge(llmRecs, fallback, s.cfg.TargetCount, s.cfg.MinScore)

	outcome = metrics.OutcomeFallback
	if len(llmRecs) > 0 {
		outcome = metrics.OutcomeLLM
	}

	logger.InfoContext(ctx, "recommendations generated",
		"search_query", searchQuery,
		"corpus_records", len(records),
		"llm_records", len(llmRecs),
		"returned", len(recs),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return RecommendResponse{
		Recommendations: recs,
		ClarifiedQuery:  searchQuery,
	}, nil
}

func recoverStage(stage string, err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%s stage panicked: %v", stage, r)
	}
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, recommend.ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, recommend.ErrQuotaExceeded):
		return "quota_exceeded"
	case errors.Is(err, recommend.ErrNotConfigured):
		return "not_configured"
	case errors.Is(err, recommend.ErrUnparseable):
		return "unparseable"
	default:
		return "upstream"
	}
}
