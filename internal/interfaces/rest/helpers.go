// Package rest renders application results and failures as JSON responses.
package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/DanielPopoola/bitnob-payments-gateway/internal/application"
)

const maxBodyBytes = 1 << 20

// ErrorResponse is the failure body of endpoints that do not run an
// orchestration, such as reads and the webhook receiver.
type ErrorResponse struct {
	Success bool            `json:"success"`
	Error   string          `json:"error"`
	Code    string          `json:"code"`
	Details json.RawMessage `json:"details,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteFailure renders err as a failed envelope for the named operation.
func WriteFailure(w http.ResponseWriter, logger *slog.Logger, label, reference string, err error) {
	status, envelope := application.BuildFailureEnvelope(label, reference, err)
	logFailure(logger, label, reference, status, err)
	WriteJSON(w, status, envelope)
}

// WriteError renders err without a run reference.
func WriteError(w http.ResponseWriter, logger *slog.Logger, err error) {
	status := application.ToHTTPStatus(err)
	logFailure(logger, "request", "", status, err)

	WriteJSON(w, status, ErrorResponse{
		Success: false,
		Error:   application.PublicMessage(err),
		Code:    application.ToErrorCode(err),
		Details: application.ProviderDetails(err),
	})
}

func logFailure(logger *slog.Logger, label, reference string, status int, err error) {
	attrs := []any{
		"operation", label,
		"status", status,
		"category", application.CategorizeError(err),
		"error", err,
	}
	if reference != "" {
		attrs = append(attrs, "reference", reference)
	}

	if status >= http.StatusInternalServerError {
		logger.Error("request failed", attrs...)
		return
	}
	logger.Warn("request rejected", attrs...)
}

// DecodeJSON reads a bounded JSON body into dst. An empty body leaves dst
// untouched.
func DecodeJSON(r *http.Request, w http.ResponseWriter, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return application.NewInvalidInputError(fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
	}
	return application.NewInvalidInputError("request body is not valid JSON")
}

// ReadRawJSON reads a bounded body and checks that it is well-formed JSON.
// An empty body is returned as nil.
func ReadRawJSON(r *http.Request, w http.ResponseWriter) (json.RawMessage, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, application.NewInvalidInputError(fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
		}
		return nil, application.NewInvalidInputError("failed to read request body")
	}

	if len(body) == 0 {
		return nil, nil
	}
	if !json.Valid(body) {
		return nil, application.NewInvalidInputError("request body is not valid JSON")
	}
	return body, nil
}
