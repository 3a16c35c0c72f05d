package application

import (
	"context"
	"net/url"
	"time"

	"github.com/DanielPopoola/bitnob-payments-gateway/internal/domain"
	"github.com/DanielPopoola/bitnob-payments-gateway/internal/infrastructure/upstream"
)

// ProviderClient is the port for the external payments provider.
type ProviderClient interface {
	Post(ctx context.Context, path string, body any) (*upstream.Response, error)
	Put(ctx context.Context, path string, body any) (*upstream.Response, error)
	Get(ctx context.Context, path string, query url.Values) (*upstream.Response, error)
}

// Notifier publishes lifecycle events. Implementations must not block the
// caller and must never report delivery failures back to it.
type Notifier interface {
	Notify(ctx context.Context, event string, payload any, reference string)
}

// InboxRepository is the port for the inbound webhook journal.
type InboxRepository interface {
	Save(ctx context.Context, hook *domain.InboundWebhook) error
	FindByReference(ctx context.Context, reference string, limit int) ([]*domain.InboundWebhook, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
