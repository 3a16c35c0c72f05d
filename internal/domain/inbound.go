package domain

import (
	"encoding/json"
	"time"
)

// InboundWebhook is a notification the provider pushed to us, typically the
// asynchronous completion of a finalized payout.
type InboundWebhook struct {
	ID          string
	Reference   string
	Event       string
	Payload     json.RawMessage
	ContentType string
	UserAgent   string
	RemoteAddr  string
	ReceivedAt  time.Time
}

// ExtractCorrelation pulls the event name and reference out of a provider
// payload. Providers nest the reference under data, so both places are checked.
func ExtractCorrelation(payload json.RawMessage) (event, reference string) {
	var body struct {
		Event     string `json:"event"`
		Reference string `json:"reference"`
		Data      struct {
			Reference string `json:"reference"`
		} `json:"data"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return "", ""
	}

	reference = body.Reference
	if reference == "" {
		reference = body.Data.Reference
	}
	return body.Event, reference
}
