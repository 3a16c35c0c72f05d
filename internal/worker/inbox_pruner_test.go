package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInboxStore struct {
	mu      sync.Mutex
	cutoffs []time.Time
	err     error
	calls   chan struct{}
}

func (f *fakeInboxStore) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	f.mu.Lock()
	f.cutoffs = append(f.cutoffs, cutoff)
	f.mu.Unlock()
	select {
	case f.calls <- struct{}{}:
	default:
	}
	return 3, f.err
}

func newTestPruner(store inboxStore, interval time.Duration) *InboxPruner {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewInboxPruner(store, 7*24*time.Hour, interval, logger)
}

func TestInboxPruner_UsesRetentionForCutoff(t *testing.T) {
	store := &fakeInboxStore{}
	pruner := newTestPruner(store, time.Hour)

	fixed := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	pruner.now = func() time.Time { return fixed }

	require.NoError(t, pruner.prune(context.Background()))

	require.Len(t, store.cutoffs, 1)
	assert.Equal(t, time.Date(2026, 3, 3, 12, 0, 0, 0, time.UTC), store.cutoffs[0])
}

func TestInboxPruner_ReturnsStoreError(t *testing.T) {
	store := &fakeInboxStore{err: errors.New("db down")}
	pruner := newTestPruner(store, time.Hour)

	assert.EqualError(t, pruner.prune(context.Background()), "db down")
}

func TestInboxPruner_RunsImmediatelyAndOnTick(t *testing.T) {
	store := &fakeInboxStore{calls: make(chan struct{}, 8)}
	pruner := newTestPruner(store, 20*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		pruner.Start(ctx)
		close(done)
	}()

	for i := 0; i < 2; i++ {
		select {
		case <-store.calls:
		case <-time.After(2 * time.Second):
			t.Fatal("pruner did not run")
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("pruner did not stop after cancel")
	}
}

func TestInboxPruner_KeepsRunningAfterFailure(t *testing.T) {
	store := &fakeInboxStore{err: errors.New("db down"), calls: make(chan struct{}, 8)}
	pruner := newTestPruner(store, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go pruner.Start(ctx)

	for i := 0; i < 3; i++ {
		select {
		case <-store.calls:
		case <-time.After(2 * time.Second):
			t.Fatal("pruner stopped after a failed run")
		}
	}
}
