package domain

import "encoding/json"

// ResultEnvelope is the only shape returned to callers of the orchestration
// endpoints. Exactly one of Message-on-success or Error is meaningful.
type ResultEnvelope struct {
	Success   bool            `json:"success"`
	Error     string          `json:"error,omitempty"`
	Message   string          `json:"message,omitempty"`
	Reference string          `json:"reference,omitempty"`
	Status    string          `json:"status,omitempty"`
	Quote     *Quote          `json:"quote,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
	Details   json.RawMessage `json:"details,omitempty"`
}
