package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")
	// ErrConfiguration is returned when the service cannot run with its current configuration.
	ErrConfiguration = errors.New("service misconfigured")
	// ErrRateLimited is returned when the model endpoint rate-limits the request
	// and the limit policy passes it through.
	ErrRateLimited = errors.New("rate limited")
	// ErrQuotaExceeded is returned when the model endpoint reports an exhausted quota
	// and the limit policy passes it through.
	ErrQuotaExceeded = errors.New("quota exceeded")
	// ErrExternalService is returned when an external service call fails.
	ErrExternalService = errors.New("external service error")
)

// ValidationError represents a validation error with a field name.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

// WrapError wraps an error with additional context.
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// wrapCause marks cause with the sentinel kind while keeping cause's text.
func wrapCause(kind, cause error) error {
	return fmt.Errorf("%w: %w", kind, cause)
}
