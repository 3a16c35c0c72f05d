// Package notify delivers run lifecycle events to an external sink without
// ever holding up the request that produced them.
package notify

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/DanielPopoola/bitnob-payments-gateway/internal/config"
	"github.com/DanielPopoola/bitnob-payments-gateway/internal/domain"
)

const (
	outcomeDelivered = "delivered"
	outcomeFailed    = "failed"
	outcomeDropped   = "dropped"
)

type delivery struct {
	event     string
	reference string
	body      []byte
}

// Dispatcher queues events and delivers them from a fixed pool of workers.
// Events are encoded when queued, so callers may reuse their payloads.
type Dispatcher struct {
	sink    Sink
	source  string
	timeout time.Duration
	drain   time.Duration
	workers int
	queue   chan delivery
	logger  *slog.Logger

	startOnce sync.Once
}

func NewDispatcher(sink Sink, cfg config.NotifierConfig, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		sink:    sink,
		source:  cfg.Source,
		timeout: cfg.Timeout,
		drain:   cmp.Or(cfg.DrainTimeout, cfg.Timeout),
		workers: max(cfg.Workers, 1),
		queue:   make(chan delivery, max(cfg.QueueSize, 1)),
		logger:  logger.With("component", "notifier", "sink", sink.Name()),
	}
}

// Notify enqueues an event and returns immediately. A full queue drops the
// event. The request context is deliberately not carried into delivery.
func (d *Dispatcher) Notify(_ context.Context, event string, payload any, reference string) {
	body, err := d.encode(event, payload, reference)
	if err != nil {
		d.logger.Warn("failed to encode notification", "event", event, "reference", reference, "error", err)
		notificationsTotal.WithLabelValues(d.sink.Name(), outcomeFailed).Inc()
		return
	}

	select {
	case d.queue <- delivery{event: event, reference: reference, body: body}:
	default:
		d.logger.Warn("notification queue full, dropping event", "event", event, "reference", reference)
		notificationsTotal.WithLabelValues(d.sink.Name(), outcomeDropped).Inc()
	}
}

// Send delivers an event synchronously and reports the outcome. It is used
// for connectivity checks, never on the orchestration path.
func (d *Dispatcher) Send(ctx context.Context, event string, payload any, reference string) error {
	body, err := d.encode(event, payload, reference)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	return d.deliver(ctx, delivery{event: event, reference: reference, body: body})
}

// Start runs the workers until ctx is cancelled, then spends at most the
// drain timeout delivering whatever is still queued. Events left after that
// are dropped.
func (d *Dispatcher) Start(ctx context.Context) error {
	started := false
	d.startOnce.Do(func() { started = true })
	if !started {
		return fmt.Errorf("dispatcher already started")
	}

	d.logger.Info("notification dispatcher started", "workers", d.workers, "queue_size", cap(d.queue))

	var wg sync.WaitGroup
	for range d.workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.work(ctx)
		}()
	}
	wg.Wait()

	d.drainQueue()
	d.logger.Info("notification dispatcher stopped")
	return nil
}

func (d *Dispatcher) work(ctx context.Context) {
	for ctx.Err() == nil {
		select {
		case <-ctx.Done():
			return
		case job := <-d.queue:
			d.deliverWithin(context.Background(), job)
		}
	}
}

func (d *Dispatcher) drainQueue() {
	if len(d.queue) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), d.drain)
	defer cancel()

	var wg sync.WaitGroup
	for range d.workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ctx.Err() == nil {
				select {
				case job := <-d.queue:
					d.deliverWithin(ctx, job)
				default:
					return
				}
			}
		}()
	}
	wg.Wait()

	dropped := 0
	for {
		select {
		case job := <-d.queue:
			dropped++
			d.logger.Warn("drain deadline reached, dropping event", "event", job.event, "reference", job.reference)
			notificationsTotal.WithLabelValues(d.sink.Name(), outcomeDropped).Inc()
		default:
			if dropped > 0 {
				d.logger.Warn("notification queue not fully drained", "dropped", dropped, "drain_timeout", d.drain)
			}
			return
		}
	}
}

// deliverWithin bounds one delivery by the sink timeout and by parent.
func (d *Dispatcher) deliverWithin(parent context.Context, job delivery) {
	ctx, cancel := context.WithTimeout(parent, d.timeout)
	defer cancel()

	_ = d.deliver(ctx, job)
}

func (d *Dispatcher) deliver(ctx context.Context, job delivery) error {
	start := time.Now()
	if err := d.sink.Deliver(ctx, job.event, job.body); err != nil {
		d.logger.Warn("notification delivery failed",
			"event", job.event,
			"reference", job.reference,
			"duration", time.Since(start),
			"error", err,
		)
		notificationsTotal.WithLabelValues(d.sink.Name(), outcomeFailed).Inc()
		return err
	}

	d.logger.Debug("notification delivered",
		"event", job.event,
		"reference", job.reference,
		"duration", time.Since(start),
	)
	notificationsTotal.WithLabelValues(d.sink.Name(), outcomeDelivered).Inc()
	return nil
}

func (d *Dispatcher) encode(event string, payload any, reference string) ([]byte, error) {
	msg := domain.WebhookEvent{
		Event:     event,
		Timestamp: time.Now().UTC(),
		Reference: reference,
		Source:    d.source,
	}

	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("error marshalling payload: %w", err)
		}
		msg.Data = data
	}

	return json.Marshal(msg)
}
