package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/DanielPopoola/bitnob-payments-gateway/internal/application"
	"github.com/DanielPopoola/bitnob-payments-gateway/internal/domain"
	"github.com/DanielPopoola/bitnob-payments-gateway/internal/interfaces/rest"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/oapi-codegen/runtime"
)

const (
	testEventName      = "gateway." + domain.StageTest
	defaultInboxLimit  = 20
	maxInboxLimit      = 100
	defaultTestMessage = "Test webhook from Bitnob payments gateway"
)

type WebhookStatusResponse struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Status    string    `json:"status"`
}

type ReceivedSummary struct {
	Method      string `json:"method"`
	BodySize    int    `json:"bodySize"`
	ContentType string `json:"contentType"`
}

type WebhookAckResponse struct {
	Message   string          `json:"message"`
	Timestamp time.Time       `json:"timestamp"`
	Received  ReceivedSummary `json:"received"`
}

type TestWebhookResponse struct {
	Success         bool           `json:"success"`
	Message         string         `json:"message"`
	WebhookResponse map[string]any `json:"webhookResponse"`
	SentData        map[string]any `json:"sentData"`
}

type InboundWebhookResponse struct {
	ID          string          `json:"id"`
	Reference   string          `json:"reference,omitempty"`
	Event       string          `json:"event,omitempty"`
	Payload     json.RawMessage `json:"payload"`
	ContentType string          `json:"contentType,omitempty"`
	UserAgent   string          `json:"userAgent,omitempty"`
	ReceivedAt  time.Time       `json:"receivedAt"`
}

// WebhookStatus lets the provider check that the receiver is reachable.
func (h *Handlers) WebhookStatus(w http.ResponseWriter, _ *http.Request) {
	rest.WriteJSON(w, http.StatusOK, WebhookStatusResponse{
		Message:   "Webhook endpoint is active",
		Timestamp: time.Now().UTC(),
		Status:    "ok",
	})
}

// ReceiveWebhook accepts any JSON the provider pushes. It only logs and
// journals the payload; it never changes the outcome of a run.
func (h *Handlers) ReceiveWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := rest.ReadRawJSON(r, w)
	if err != nil || len(body) == 0 {
		h.logger.Warn("rejected inbound webhook", "method", r.Method, "error", err)
		rest.WriteJSON(w, http.StatusBadRequest, rest.ErrorResponse{
			Success: false,
			Error:   rejectedWebhookMessage(r.Method),
			Code:    application.ErrCodeInvalidInput,
		})
		return
	}

	event, reference := domain.ExtractCorrelation(body)
	contentType := r.Header.Get("Content-Type")

	h.logger.Info("inbound webhook received",
		"request_id", middleware.GetReqID(r.Context()),
		"method", r.Method,
		"event", event,
		"reference", reference,
		"body_size", len(body),
		"content_type", contentType,
	)

	if h.inbox != nil {
		record := &domain.InboundWebhook{
			Reference:   reference,
			Event:       event,
			Payload:     body,
			ContentType: contentType,
			UserAgent:   r.UserAgent(),
			RemoteAddr:  r.RemoteAddr,
		}
		if err := h.inbox.Save(r.Context(), record); err != nil {
			h.logger.Error("failed to journal inbound webhook", "reference", reference, "error", err)
		}
	}

	rest.WriteJSON(w, http.StatusOK, WebhookAckResponse{
		Message:   acceptedWebhookMessage(r.Method),
		Timestamp: time.Now().UTC(),
		Received: ReceivedSummary{
			Method:      r.Method,
			BodySize:    len(body),
			ContentType: contentType,
		},
	})
}

func acceptedWebhookMessage(method string) string {
	if method == http.MethodPost {
		return "Webhook received successfully"
	}
	return method + " webhook received"
}

func rejectedWebhookMessage(method string) string {
	if method == http.MethodPost {
		return "Failed to process webhook"
	}
	return "Invalid JSON"
}

// SendTestWebhook pushes a test event through the configured sink and waits
// for the result.
func (h *Handlers) SendTestWebhook(w http.ResponseWriter, r *http.Request) {
	var req TestWebhookRequest
	if err := h.decodeRequest(w, r, &req); err != nil {
		rest.WriteError(w, h.logger, err)
		return
	}

	message := req.Message
	if message == "" {
		message = defaultTestMessage
	}

	payload := map[string]any{
		"message": message,
		"data":    req.Data,
		"metadata": map[string]any{
			"userAgent": r.UserAgent(),
			"ip":        r.RemoteAddr,
		},
	}

	if err := h.tester.Send(r.Context(), testEventName, payload, ""); err != nil {
		h.logger.Warn("test webhook delivery failed", "error", err)
		rest.WriteJSON(w, http.StatusInternalServerError, rest.ErrorResponse{
			Success: false,
			Error:   "Failed to send test webhook",
			Code:    application.ErrCodeUpstreamUnavailable,
		})
		return
	}

	rest.WriteJSON(w, http.StatusOK, TestWebhookResponse{
		Success:         true,
		Message:         "Test webhook sent successfully",
		WebhookResponse: map[string]any{"status": "delivered"},
		SentData:        payload,
	})
}

// ListInboundWebhooks returns journalled webhooks for one reference.
func (h *Handlers) ListInboundWebhooks(w http.ResponseWriter, r *http.Request) {
	reference, err := bindPathParam(r, "reference")
	if err != nil {
		rest.WriteError(w, h.logger, err)
		return
	}

	limit := defaultInboxLimit
	if err := runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &limit); err != nil {
		rest.WriteError(w, h.logger, application.NewInvalidInputError("invalid query parameter limit"))
		return
	}
	if limit < 1 || limit > maxInboxLimit {
		rest.WriteError(w, h.logger, application.NewInvalidInputError("limit must be between 1 and 100"))
		return
	}

	records, err := h.inbox.FindByReference(r.Context(), reference, limit)
	if err != nil {
		rest.WriteError(w, h.logger, application.NewInternalError(err))
		return
	}

	data := make([]InboundWebhookResponse, 0, len(records))
	for _, rec := range records {
		data = append(data, InboundWebhookResponse{
			ID:          rec.ID,
			Reference:   rec.Reference,
			Event:       rec.Event,
			Payload:     rec.Payload,
			ContentType: rec.ContentType,
			UserAgent:   rec.UserAgent,
			ReceivedAt:  rec.ReceivedAt,
		})
	}

	rest.WriteJSON(w, http.StatusOK, map[string]any{
		"reference": reference,
		"data":      data,
	})
}
