package domain

import (
	"encoding/json"
	"time"
)

// Lifecycle stages a run reports to the notification sink.
const (
	StageInitiated     = "initiated"
	StageQuoteReceived = "quote_received"
	StageCompleted     = "completed"
	StageFailed        = "failed"
	StageTest          = "test"
)

// EventName builds the wire name of a lifecycle event, e.g. "payout.quote_received".
func EventName(kind Kind, stage string) string {
	return kind.Family() + "." + stage
}

// WebhookEvent is the body posted to the notification sink.
type WebhookEvent struct {
	Event     string          `json:"event"`
	Timestamp time.Time       `json:"timestamp"`
	Reference string          `json:"reference,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
	Source    string          `json:"source"`
}
