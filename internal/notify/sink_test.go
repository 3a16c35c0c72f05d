package notify

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebhookSink_PostsJSONWithUserAgent(t *testing.T) {
	var gotUA, gotType, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		gotUA = r.Header.Get("User-Agent")
		gotType = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	sink := NewWebhookSink(server.URL, "Bitnob-Gateway-Webhook/1.0")
	err := sink.Deliver(context.Background(), "payout.completed", []byte(`{"event":"payout.completed"}`))

	require.NoError(t, err)
	assert.Equal(t, "Bitnob-Gateway-Webhook/1.0", gotUA)
	assert.Equal(t, "application/json", gotType)
	assert.JSONEq(t, `{"event":"payout.completed"}`, gotBody)
}

func TestWebhookSink_Non2xxIsAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	sink := NewWebhookSink(server.URL, "ua")
	err := sink.Deliver(context.Background(), "payout.completed", []byte(`{}`))

	assert.EqualError(t, err, "webhook sink returned status 502")
}

func TestWebhookSink_RespectsContextDeadline(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := NewWebhookSink(server.URL, "ua").Deliver(ctx, "payout.completed", []byte(`{}`))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewSink_SelectsByDriver(t *testing.T) {
	logger := discardLogger()

	cfg := testNotifierConfig()
	cfg.Driver = "webhook"
	cfg.WebhookURL = "http://localhost:9/hook"
	sink, closeFn, err := NewSink(cfg, logger)
	require.NoError(t, err)
	defer closeFn()
	assert.Equal(t, "webhook", sink.Name())

	cfg.WebhookURL = ""
	sink, _, err = NewSink(cfg, logger)
	require.NoError(t, err)
	assert.Equal(t, "none", sink.Name(), "missing webhook url falls back to logging")

	cfg.Driver = "none"
	sink, _, err = NewSink(cfg, logger)
	require.NoError(t, err)
	assert.Equal(t, "none", sink.Name())
}

func TestNATSSink_Publishes(t *testing.T) {
	url := os.Getenv("NATS_URL")
	if url == "" {
		t.Skip("NATS_URL not set")
	}

	sink, err := NewNATSSink(url, "gateway.events.test", discardLogger())
	require.NoError(t, err)
	defer sink.Close()

	sub, err := sink.conn.SubscribeSync("gateway.events.test")
	require.NoError(t, err)
	require.NoError(t, sink.conn.Flush())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, sink.Deliver(ctx, "payout.completed", []byte(`{"event":"payout.completed"}`)))

	msg, err := sub.NextMsg(2 * time.Second)
	require.NoError(t, err)
	assert.JSONEq(t, `{"event":"payout.completed"}`, string(msg.Data))
}
