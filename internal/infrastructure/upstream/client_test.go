package upstream_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/DanielPopoola/bitnob-payments-gateway/internal/config"
	"github.com/DanielPopoola/bitnob-payments-gateway/internal/infrastructure/upstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *upstream.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return upstream.NewClient(config.UpstreamConfig{
		BaseURL:   srv.URL + "/api/v1/",
		SecretKey: "sk_test_123",
		Timeout:   200 * time.Millisecond,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestClient_PostSendsBearerAndJSON(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/payouts/quotes", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_123", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "offchain", body["source"])
		assert.Equal(t, float64(100000), body["settlementAmount"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":true,"data":{"quoteId":"Q1"}}`))
	})

	resp, err := client.Post(context.Background(), "payouts/quotes", upstream.PayoutQuoteRequest{
		Source:           "offchain",
		FromAsset:        "usdt",
		ToCurrency:       "ngn",
		SettlementAmount: json.Number("100000"),
	})

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"quoteId":"Q1"}`, string(resp.Data()))
}

func TestClient_GetEncodesQuery(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "success", r.URL.Query().Get("status"))
		assert.Empty(t, r.Header.Get("Content-Type"))
		_, _ = w.Write([]byte(`{"data":[]}`))
	})

	resp, err := client.Get(context.Background(), "/transactions", url.Values{
		"page":   []string{"2"},
		"status": []string{"success"},
	})

	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(resp.Data()))
}

func TestClient_DataFallsBackToBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"quoteId":"Q2"}`))
	})

	resp, err := client.Post(context.Background(), "trade", map[string]string{})

	require.NoError(t, err)
	assert.JSONEq(t, `{"quoteId":"Q2"}`, string(resp.Data()))
}

func TestClient_ProviderErrorCarriesMessageAndBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"status":false,"message":"Insufficient balance","error":"insufficient_funds"}`))
	})

	_, err := client.Post(context.Background(), "payouts/finalize", upstream.PayoutFinalizeRequest{QuoteID: "Q1"})

	require.Error(t, err)
	providerErr, ok := upstream.IsProviderError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusPaymentRequired, providerErr.StatusCode)
	assert.Equal(t, "Insufficient balance", providerErr.Message)
	assert.Equal(t, "insufficient_funds", providerErr.Code)
	assert.JSONEq(t, `{"status":false,"message":"Insufficient balance","error":"insufficient_funds"}`, string(providerErr.Body))
}

func TestClient_ProviderErrorFallbacks(t *testing.T) {
	t.Run("error field when message missing", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"quote expired"}`))
		})

		_, err := client.Post(context.Background(), "payouts/finalize", nil)

		providerErr, ok := upstream.IsProviderError(err)
		require.True(t, ok)
		assert.Equal(t, "quote expired", providerErr.Message)
	})

	t.Run("message list", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"message":["amount must be positive"]}`))
		})

		_, err := client.Post(context.Background(), "trade", nil)

		providerErr, ok := upstream.IsProviderError(err)
		require.True(t, ok)
		assert.Equal(t, "amount must be positive", providerErr.Message)
	})

	t.Run("non-JSON body", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`<html>bad gateway</html>`))
		})

		_, err := client.Post(context.Background(), "trade", nil)

		providerErr, ok := upstream.IsProviderError(err)
		require.True(t, ok)
		assert.Equal(t, "upstream returned status 502", providerErr.Message)
		assert.JSONEq(t, `"<html>bad gateway</html>"`, string(providerErr.Body))
	})
}

func TestClient_TransportErrors(t *testing.T) {
	t.Run("timeout", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-time.After(time.Second):
			case <-r.Context().Done():
			}
		})

		_, err := client.Post(context.Background(), "payouts/quotes", nil)

		require.Error(t, err)
		assert.True(t, errors.Is(err, upstream.ErrTransport))
		_, isProvider := upstream.IsProviderError(err)
		assert.False(t, isProvider)
	})

	t.Run("connection refused", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()

		client := upstream.NewClient(config.UpstreamConfig{
			BaseURL:   srv.URL,
			SecretKey: "sk",
			Timeout:   time.Second,
		}, slog.New(slog.NewTextHandler(io.Discard, nil)))

		_, err := client.Get(context.Background(), "transactions", nil)

		require.Error(t, err)
		assert.ErrorIs(t, err, upstream.ErrTransport)
	})

	t.Run("non-JSON success body", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`ok`))
		})

		_, err := client.Post(context.Background(), "payouts/finalize", nil)

		assert.ErrorIs(t, err, upstream.ErrTransport)
	})
}
