package postgres

import (
	"github.com/DanielPopoola/bitnob-payments-gateway/internal/domain"
)

func toInboxModel(w *domain.InboundWebhook) InboxModel {
	return InboxModel{
		ID:          w.ID,
		Reference:   nullable(w.Reference),
		Event:       nullable(w.Event),
		Payload:     w.Payload,
		ContentType: w.ContentType,
		UserAgent:   w.UserAgent,
		RemoteAddr:  w.RemoteAddr,
		ReceivedAt:  w.ReceivedAt,
	}
}

func toInboundWebhook(m InboxModel) *domain.InboundWebhook {
	return &domain.InboundWebhook{
		ID:          m.ID,
		Reference:   deref(m.Reference),
		Event:       deref(m.Event),
		Payload:     m.Payload,
		ContentType: m.ContentType,
		UserAgent:   m.UserAgent,
		RemoteAddr:  m.RemoteAddr,
		ReceivedAt:  m.ReceivedAt,
	}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
