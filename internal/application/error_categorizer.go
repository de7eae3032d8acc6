package application

import (
	"context"
	"errors"
	"net/http"

	"github.com/DanielPopoola/checkout-relay/internal/domain"
)

// ErrorCategory represents the nature of an error for logging and retry advice
type ErrorCategory string

const (
	CategoryTransient   ErrorCategory = "TRANSIENT"
	CategoryPermanent   ErrorCategory = "PERMANENT"
	CategoryClientError ErrorCategory = "CLIENT_ERROR"
)

// Error codes surfaced in API responses.
const (
	ErrCodeValidation          = "VALIDATION_ERROR"
	ErrCodeUpstreamAuth        = "UPSTREAM_AUTH_ERROR"
	ErrCodeUpstream            = "UPSTREAM_ERROR"
	ErrCodeUpstreamUnavailable = "UPSTREAM_UNAVAILABLE"
	ErrCodeUpstreamTimeout     = "UPSTREAM_TIMEOUT"
	ErrCodeInternal            = "INTERNAL_ERROR"
)

// CategorizeError determines the error category for logging purposes.
// The relay itself never retries; the category tells the caller whether it may.
func CategorizeError(err error) ErrorCategory {
	if err == nil {
		return ""
	}

	if domain.IsValidationError(err) {
		return CategoryClientError
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return CategoryTransient
	}

	if _, ok := IsTransportError(err); ok {
		return CategoryTransient
	}

	if upErr, ok := IsUpstreamError(err); ok {
		if upErr.StatusCode >= 500 || upErr.StatusCode == http.StatusTooManyRequests {
			return CategoryTransient
		}
		return CategoryPermanent
	}

	return CategoryPermanent
}

// IsRetryable returns true if the error category suggests the caller may retry
func IsRetryable(err error) bool {
	return CategorizeError(err) == CategoryTransient
}

// ToHTTPStatus maps error to appropriate HTTP status code
func ToHTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	if domain.IsValidationError(err) {
		return http.StatusBadRequest
	}

	if isTimeout(err) {
		return http.StatusGatewayTimeout
	}

	return http.StatusInternalServerError
}

// ToErrorCode clear error code for API responses
func ToErrorCode(err error) string {
	if domain.IsValidationError(err) {
		return ErrCodeValidation
	}

	if isTimeout(err) {
		return ErrCodeUpstreamTimeout
	}

	if _, ok := IsTransportError(err); ok {
		return ErrCodeUpstreamUnavailable
	}

	if upErr, ok := IsUpstreamError(err); ok {
		if upErr.IsAuth() {
			return ErrCodeUpstreamAuth
		}
		return ErrCodeUpstream
	}

	if dErr, ok := IsDecodeError(err); ok {
		if dErr.Operation == OpIdentity {
			return ErrCodeUpstreamAuth
		}
		return ErrCodeUpstream
	}

	return ErrCodeInternal
}

// ErrorPayload is the value placed in the "error" field of a failure response.
func ErrorPayload(err error) any {
	if upErr, ok := IsUpstreamError(err); ok {
		return upErr.Payload()
	}
	return err.Error()
}

func isTimeout(err error) bool {
	if tErr, ok := IsTransportError(err); ok && tErr.Timeout {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}
