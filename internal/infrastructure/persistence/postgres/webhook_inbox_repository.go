package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/DanielPopoola/bitnob-payments-gateway/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// WebhookInboxRepository journals inbound provider webhooks so operators can
// correlate them with the reference of the run that caused them.
type WebhookInboxRepository struct {
	db Executor
}

func NewWebhookInboxRepository(db Executor) *WebhookInboxRepository {
	return &WebhookInboxRepository{db: db}
}

// Save assigns an ID and received time when they are missing.
func (r *WebhookInboxRepository) Save(ctx context.Context, w *domain.InboundWebhook) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	if w.ReceivedAt.IsZero() {
		w.ReceivedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO webhook_inbox (
			id, reference, event, payload, content_type, user_agent, remote_addr, received_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	m := toInboxModel(w)
	_, err := r.db.Exec(ctx, query,
		m.ID,
		m.Reference,
		m.Event,
		m.Payload,
		m.ContentType,
		m.UserAgent,
		m.RemoteAddr,
		m.ReceivedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return fmt.Errorf("inbound webhook %s already stored: %w", m.ID, err)
		}
		return fmt.Errorf("failed to save inbound webhook: %w", err)
	}

	return nil
}

// FindByReference returns the newest webhooks first.
func (r *WebhookInboxRepository) FindByReference(ctx context.Context, reference string, limit int) ([]*domain.InboundWebhook, error) {
	query := `
		SELECT id, reference, event, payload, content_type, user_agent, remote_addr, received_at
		FROM webhook_inbox
		WHERE reference = $1
		ORDER BY received_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, reference, limit)
	if err != nil {
		return nil, fmt.Errorf("query inbound webhooks by reference: %w", err)
	}

	results, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.InboundWebhook, error) {
		var m InboxModel
		err := row.Scan(
			&m.ID, &m.Reference, &m.Event, &m.Payload,
			&m.ContentType, &m.UserAgent, &m.RemoteAddr, &m.ReceivedAt,
		)
		return toInboundWebhook(m), err
	})
	if err != nil {
		return nil, fmt.Errorf("scan inbound webhooks: %w", err)
	}

	return results, nil
}

func (r *WebhookInboxRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM webhook_inbox WHERE received_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune inbound webhooks: %w", err)
	}
	return tag.RowsAffected(), nil
}
