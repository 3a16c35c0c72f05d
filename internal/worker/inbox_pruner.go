package worker

import (
	"context"
	"log/slog"
	"time"
)

type inboxStore interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// InboxPruner deletes journalled inbound webhooks once they are older than
// the retention window.
type InboxPruner struct {
	store     inboxStore
	retention time.Duration
	interval  time.Duration
	logger    *slog.Logger
	now       func() time.Time
}

func NewInboxPruner(
	store inboxStore,
	retention time.Duration,
	interval time.Duration,
	logger *slog.Logger,
) *InboxPruner {
	return &InboxPruner{
		store:     store,
		retention: retention,
		interval:  interval,
		logger:    logger,
		now:       time.Now,
	}
}

func (w *InboxPruner) Start(ctx context.Context) {
	w.logger.Info("inbox pruner started", "interval", w.interval, "retention", w.retention)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	if err := w.prune(ctx); err != nil {
		w.logger.Error("inbox prune failed", "error", err)
	}

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("inbox pruner stopping")
			return
		case <-ticker.C:
			if err := w.prune(ctx); err != nil {
				w.logger.Error("inbox prune failed", "error", err)
			}
		}
	}
}

func (w *InboxPruner) prune(ctx context.Context) error {
	cutoff := w.now().Add(-w.retention)

	deleted, err := w.store.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return err
	}

	if deleted > 0 {
		w.logger.Info("pruned inbound webhooks", "deleted", deleted, "cutoff", cutoff)
	}
	return nil
}
