package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"paperrec/internal/contextutil"
	"paperrec/internal/recommend"
	"paperrec/internal/service"
)

// RecommendHandler handles HTTP requests for paper recommendations.
type RecommendHandler struct {
	recommendService service.RecommendService
	validate         *validator.Validate
}

// NewRecommendHandler creates a new RecommendHandler.
func NewRecommendHandler(recommendService service.RecommendService) *RecommendHandler {
	return &RecommendHandler{
		recommendService: recommendService,
		validate:         validator.New(),
	}
}

// RecommendRequest represents the HTTP request payload for recommendations.
type RecommendRequest struct {
	Query          string `json:"query" validate:"max=500"`
	SelectedOption string `json:"selectedOption,omitempty" validate:"max=200"`
}

// ClarifyResponse is returned when the query needs a clarifying choice.
type ClarifyResponse struct {
	NeedsClarify bool     `json:"needsClarify"`
	Question     string   `json:"question"`
	Options      []string `json:"options"`
}

// RecommendResponse carries the ranked batch.
type RecommendResponse struct {
	Recommendations []recommend.Recommendation `json:"recommendations"`
	ClarifiedQuery  string                     `json:"clarifiedQuery"`
}

// ServeHTTP handles HTTP requests for recommendations.
func (h *RecommendHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req RecommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		h.handleServiceError(w, ctx, toValidationError(err), "Invalid request")
		return
	}

	svcResp, err := h.recommendService.Recommend(ctx, service.RecommendRequest{
		Query:          req.Query,
		SelectedOption: req.SelectedOption,
	})
	if err != nil {
		h.handleServiceError(w, ctx, err, "Failed to generate recommendations")
		return
	}

	if svcResp.NeedsClarify {
		writeJSON(ctx, w, http.StatusOK, ClarifyResponse{
			NeedsClarify: true,
			Question:     svcResp.Question,
			Options:      svcResp.Options,
		})
		return
	}

	recs := svcResp.Recommendations
	if recs == nil {
		recs = []recommend.Recommendation{}
	}
	writeJSON(ctx, w, http.StatusOK, RecommendResponse{
		Recommendations: recs,
		ClarifiedQuery:  svcResp.ClarifiedQuery,
	})
}

// handleServiceError maps service errors to appropriate HTTP status codes and responses.
func (h *RecommendHandler) handleServiceError(w http.ResponseWriter, ctx context.Context, err error, defaultMsg string) {
	logger := contextutil.LoggerFromContext(ctx)

	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		logger.WarnContext(ctx, "request validation failed", "error", err)
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Validation error: %s", validationErr.Error()))
		return
	}

	logger.ErrorContext(ctx, "service error", "error", err)

	switch {
	case errors.Is(err, service.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "Invalid input")
	case errors.Is(err, service.ErrRateLimited):
		writeError(w, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
	case errors.Is(err, service.ErrQuotaExceeded):
		writeError(w, http.StatusPaymentRequired, "Usage quota exceeded. Please add credits.")
	case errors.Is(err, service.ErrConfiguration):
		writeError(w, http.StatusInternalServerError, "Service is not configured")
	default:
		writeError(w, http.StatusInternalServerError, defaultMsg)
	}
}

// toValidationError converts the first validator failure into a ValidationError.
func toValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return service.WrapError(service.ErrInvalidInput, err.Error())
	}
	fe := fieldErrs[0]
	field := fe.Field()
	if field != "" {
		field = strings.ToLower(field[:1]) + field[1:]
	}
	msg := fe.Tag()
	if fe.Param() != "" {
		msg = fmt.Sprintf("%s=%s", fe.Tag(), fe.Param())
	}
	return &service.ValidationError{Field: field, Message: "failed " + msg}
}
