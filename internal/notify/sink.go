package notify

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/DanielPopoola/bitnob-payments-gateway/internal/config"
	"github.com/nats-io/nats.go"
)

// Sink delivers one encoded event. Deliver must honour ctx cancellation.
type Sink interface {
	Name() string
	Deliver(ctx context.Context, event string, body []byte) error
}

// NewSink builds the sink selected by cfg.Driver. The returned close function
// releases any connection the sink holds and is always safe to call.
func NewSink(cfg config.NotifierConfig, logger *slog.Logger) (Sink, func(), error) {
	switch cfg.Driver {
	case "webhook":
		if cfg.WebhookURL == "" {
			logger.Warn("no webhook url configured, notifications will only be logged")
			return NewLogSink(logger), func() {}, nil
		}
		return NewWebhookSink(cfg.WebhookURL, cfg.UserAgent), func() {}, nil

	case "nats":
		sink, err := NewNATSSink(cfg.NATSURL, cfg.NATSSubject, logger)
		if err != nil {
			return nil, nil, err
		}
		return sink, sink.Close, nil

	default:
		return NewLogSink(logger), func() {}, nil
	}
}

// WebhookSink POSTs events as JSON to a fixed URL.
type WebhookSink struct {
	url        string
	userAgent  string
	httpClient *http.Client
}

func NewWebhookSink(url, userAgent string) *WebhookSink {
	return &WebhookSink{
		url:        url,
		userAgent:  userAgent,
		httpClient: &http.Client{},
	}
}

func (s *WebhookSink) Name() string { return "webhook" }

func (s *WebhookSink) Deliver(ctx context.Context, _ string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("error creating webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error posting webhook: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook sink returned status %d", resp.StatusCode)
	}
	return nil
}

// NATSSink publishes events on a subject. Events go out on the plain subject;
// subscribers filter by the event field.
type NATSSink struct {
	conn    *nats.Conn
	subject string
}

func NewNATSSink(url, subject string, logger *slog.Logger) (*NATSSink, error) {
	conn, err := nats.Connect(url,
		nats.Name("bitnob-payments-gateway"),
		nats.Timeout(5*time.Second),
		nats.PingInterval(20*time.Second),
		nats.MaxPingsOutstanding(3),
		nats.ReconnectWait(2*time.Second),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warn("NATS disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &NATSSink{conn: conn, subject: subject}, nil
}

func (s *NATSSink) Name() string { return "nats" }

func (s *NATSSink) Deliver(ctx context.Context, _ string, body []byte) error {
	if err := s.conn.Publish(s.subject, body); err != nil {
		return fmt.Errorf("error publishing to %s: %w", s.subject, err)
	}
	return s.conn.FlushWithContext(ctx)
}

func (s *NATSSink) Close() {
	if s.conn != nil && !s.conn.IsClosed() {
		_ = s.conn.Drain()
	}
}

// LogSink only writes events to the log.
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Name() string { return "none" }

func (s *LogSink) Deliver(_ context.Context, event string, body []byte) error {
	s.logger.Info("notification", "event", event, "bytes", len(body))
	return nil
}
