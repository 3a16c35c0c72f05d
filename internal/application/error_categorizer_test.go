package application_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/DanielPopoola/bitnob-payments-gateway/internal/application"
	"github.com/DanielPopoola/bitnob-payments-gateway/internal/domain"
	"github.com/DanielPopoola/bitnob-payments-gateway/internal/infrastructure/upstream"
	"github.com/stretchr/testify/assert"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "Client.Timeout exceeded while awaiting headers" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestCategorizeError(t *testing.T) {
	providerErr := &upstream.ProviderError{Code: "insufficient_funds", Message: "Insufficient balance", StatusCode: 402}

	tests := []struct {
		name     string
		err      error
		category application.ErrorCategory
		status   int
	}{
		{"nil", nil, "", http.StatusOK},
		{"missing field", domain.NewMissingRequiredFieldError("name"), application.CategoryValidation, http.StatusBadRequest},
		{"bad reference", domain.NewInvalidReferenceError("too long"), application.CategoryValidation, http.StatusBadRequest},
		{"invalid input", application.NewInvalidInputError("bad json"), application.CategoryValidation, http.StatusBadRequest},
		{"not found", application.NewNotFoundError("Transaction not found", nil), application.CategoryNotFound, http.StatusNotFound},
		{"provider error", fmt.Errorf("finalize: %w", providerErr), application.CategoryUpstreamBusiness, http.StatusInternalServerError},
		{"malformed quote", domain.NewMalformedQuoteError(nil), application.CategoryUpstreamBusiness, http.StatusInternalServerError},
		{"deadline", fmt.Errorf("%w: POST trade: %w", upstream.ErrTransport, context.DeadlineExceeded), application.CategoryUpstreamTimeout, http.StatusInternalServerError},
		{"client timeout", fmt.Errorf("%w: %w", upstream.ErrTransport, timeoutErr{}), application.CategoryUpstreamTimeout, http.StatusInternalServerError},
		{"transport", fmt.Errorf("%w: connection refused", upstream.ErrTransport), application.CategoryUpstreamTransport, http.StatusInternalServerError},
		{"invalid transition", domain.NewInvalidTransitionError(domain.StateStart, domain.StateFinalized), application.CategoryInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.category, application.CategorizeError(tt.err))
			assert.Equal(t, tt.status, application.ToHTTPStatus(tt.err))
		})
	}
}

func TestToErrorCode(t *testing.T) {
	assert.Equal(t, "INSUFFICIENT_FUNDS", application.ToErrorCode(&upstream.ProviderError{Code: "insufficient_funds"}))
	assert.Equal(t, application.ErrCodeUpstreamError, application.ToErrorCode(&upstream.ProviderError{StatusCode: 500}))
	assert.Equal(t, domain.ErrCodeMissingRequiredField, application.ToErrorCode(domain.NewMissingRequiredFieldError("name")))
	assert.Equal(t, application.ErrCodeUpstreamUnavailable, application.ToErrorCode(upstream.ErrTransport))
	assert.Equal(t, application.ErrCodeInternal, application.ToErrorCode(fmt.Errorf("boom")))
}

func TestPublicMessage_NeverLeaksInternals(t *testing.T) {
	err := fmt.Errorf("%w: POST https://sandboxapi.bitnob.co/api/v1/payouts/quotes: dial tcp 10.0.0.1:443: connect: connection refused", upstream.ErrTransport)

	assert.Equal(t, "upstream service unreachable", application.PublicMessage(err))
	assert.Equal(t, "an internal error occurred", application.PublicMessage(fmt.Errorf("nil pointer somewhere")))
}

func TestBuildFailureEnvelope(t *testing.T) {
	t.Run("upstream business error surfaces provider message and body", func(t *testing.T) {
		body := json.RawMessage(`{"message":"Insufficient balance"}`)
		err := &application.StepError{
			Step:      "finalize",
			Reference: "ref-1",
			Err:       &upstream.ProviderError{Message: "Insufficient balance", StatusCode: 402, Body: body},
		}

		status, envelope := application.BuildFailureEnvelope("Payout", "ref-1", err)

		assert.Equal(t, http.StatusInternalServerError, status)
		assert.False(t, envelope.Success)
		assert.Equal(t, "Payout failed", envelope.Error)
		assert.Equal(t, "ref-1", envelope.Reference)
		assert.Equal(t, "Insufficient balance", envelope.Message)
		assert.JSONEq(t, string(body), string(envelope.Details))
	})

	t.Run("validation omits reference", func(t *testing.T) {
		status, envelope := application.BuildFailureEnvelope("Payout", "ref-1", domain.NewMissingRequiredFieldError("name"))

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Empty(t, envelope.Reference)
		assert.Equal(t, "name is required", envelope.Message)
		assert.Nil(t, envelope.Details)
	})
}
