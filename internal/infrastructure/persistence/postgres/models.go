package postgres

import (
	"time"
)

// InboxModel is one row of webhook_inbox. Reference and Event are NULL when
// the payload did not carry them.
type InboxModel struct {
	ID          string
	Reference   *string
	Event       *string
	Payload     []byte
	ContentType string
	UserAgent   string
	RemoteAddr  string
	ReceivedAt  time.Time
}
