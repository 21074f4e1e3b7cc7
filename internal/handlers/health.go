package handlers

import (
	"context"
	"net/http"
	"time"

	"paperrec/internal/contextutil"
	"paperrec/internal/service"
)

// ConfiguredChecker reports whether the model client can authenticate.
type ConfiguredChecker interface {
	Configured() error
}

// HealthHandler handles HTTP requests for health checks.
type HealthHandler struct {
	loader             service.CorpusLoader
	llm                ConfiguredChecker
	healthCheckTimeout time.Duration
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(loader service.CorpusLoader, llm ConfiguredChecker) *HealthHandler {
	return &HealthHandler{
		loader:             loader,
		llm:                llm,
		healthCheckTimeout: 5 * time.Second,
	}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	// Overall health status: "healthy" or "degraded"
	Status string `json:"status"`

	// Timestamp of the health check
	Timestamp string `json:"timestamp"`

	CorpusRecords int  `json:"corpus_records"`
	LLMConfigured bool `json:"llm_configured"`

	// List of issues (only present if status is degraded)
	Issues []string `json:"issues,omitempty"`
}

// ServeHTTP handles HTTP requests for health checks.
//
// Always answers 200: an unreachable corpus or a missing credential degrades
// recommendations but the service keeps serving seed results.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	checkCtx, cancel := context.WithTimeout(ctx, h.healthCheckTimeout)
	defer cancel()

	var issues []string

	records := len(h.loader.Load(checkCtx))
	if records == 0 {
		logger.WarnContext(ctx, "corpus health check returned no records")
		issues = append(issues, "corpus_unavailable")
	}

	configured := true
	if err := h.llm.Configured(); err != nil {
		logger.WarnContext(ctx, "LLM health check failed", "error", err)
		configured = false
		issues = append(issues, "llm_not_configured")
	}

	status := "healthy"
	if len(issues) > 0 {
		status = "degraded"
	}

	writeJSON(ctx, w, http.StatusOK, HealthResponse{
		Status:        status,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		CorpusRecords: records,
		LLMConfigured: configured,
		Issues:        issues,
	})
}
