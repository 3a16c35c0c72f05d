package application

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/DanielPopoola/bitnob-payments-gateway/internal/domain"
	"github.com/DanielPopoola/bitnob-payments-gateway/internal/infrastructure/upstream"
)

// ErrorCategory is the closed set of outcomes a caller can observe.
type ErrorCategory string

const (
	CategoryValidation        ErrorCategory = "VALIDATION"
	CategoryNotFound          ErrorCategory = "NOT_FOUND"
	CategoryUpstreamBusiness  ErrorCategory = "UPSTREAM_BUSINESS"
	CategoryUpstreamTransport ErrorCategory = "UPSTREAM_TRANSPORT"
	CategoryUpstreamTimeout   ErrorCategory = "UPSTREAM_TIMEOUT"
	CategoryInternal          ErrorCategory = "INTERNAL"
)

const (
	msgUpstreamUnreachable = "upstream service unreachable"
	msgUpstreamTimeout     = "upstream request timed out"
	msgInternal            = "an internal error occurred"
)

// CategorizeError determines which outcome an error maps to.
func CategorizeError(err error) ErrorCategory {
	if err == nil {
		return ""
	}

	if domain.IsValidationError(err) {
		return CategoryValidation
	}

	if svcErr, ok := IsServiceError(err); ok {
		switch svcErr.Code {
		case ErrCodeInvalidInput:
			return CategoryValidation
		case ErrCodeNotFound:
			return CategoryNotFound
		}
	}

	if _, ok := upstream.IsProviderError(err); ok {
		return CategoryUpstreamBusiness
	}
	if domain.IsErrorCode(err, domain.ErrCodeMalformedQuote) {
		return CategoryUpstreamBusiness
	}

	if isTimeout(err) {
		return CategoryUpstreamTimeout
	}

	if errors.Is(err, upstream.ErrTransport) {
		return CategoryUpstreamTransport
	}

	return CategoryInternal
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// ToHTTPStatus maps error to appropriate HTTP status code
func ToHTTPStatus(err error) int {
	switch CategorizeError(err) {
	case "":
		return http.StatusOK
	case CategoryValidation:
		return http.StatusBadRequest
	case CategoryNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// ToErrorCode gives a stable machine-readable code for logs and metrics.
func ToErrorCode(err error) string {
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}

	if svcErr, ok := IsServiceError(err); ok {
		return svcErr.Code
	}

	switch CategorizeError(err) {
	case CategoryUpstreamBusiness:
		if providerErr, ok := upstream.IsProviderError(err); ok && providerErr.Code != "" {
			return strings.ToUpper(providerErr.Code)
		}
		return ErrCodeUpstreamError
	case CategoryUpstreamTimeout:
		return ErrCodeTimeout
	case CategoryUpstreamTransport:
		return ErrCodeUpstreamUnavailable
	}

	return ErrCodeInternal
}

// PublicMessage is the text a caller is allowed to see. Provider messages are
// surfaced verbatim, everything else is replaced by a generic sentence.
func PublicMessage(err error) string {
	switch CategorizeError(err) {
	case CategoryValidation, CategoryNotFound:
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			return domainErr.Message
		}
		if svcErr, ok := IsServiceError(err); ok {
			return svcErr.Message
		}
	case CategoryUpstreamBusiness:
		if providerErr, ok := upstream.IsProviderError(err); ok {
			return providerErr.Message
		}
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			return domainErr.Message
		}
	case CategoryUpstreamTimeout:
		return msgUpstreamTimeout
	case CategoryUpstreamTransport:
		return msgUpstreamUnreachable
	}

	return msgInternal
}

// ProviderDetails returns the raw provider body behind err, if any.
func ProviderDetails(err error) json.RawMessage {
	if providerErr, ok := upstream.IsProviderError(err); ok {
		return providerErr.Body
	}
	return nil
}

// BuildFailureEnvelope renders a failed operation. label names the operation
// as the caller knows it, e.g. "Payout" renders "Payout failed". Validation
// failures never carry a reference since no run was started.
func BuildFailureEnvelope(label, reference string, err error) (int, domain.ResultEnvelope) {
	envelope := domain.ResultEnvelope{
		Success: false,
		Error:   label + " failed",
		Message: PublicMessage(err),
		Details: ProviderDetails(err),
	}

	if CategorizeError(err) != CategoryValidation {
		envelope.Reference = reference
	}

	return ToHTTPStatus(err), envelope
}
