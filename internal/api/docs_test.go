package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DocumentIsValid(t *testing.T) {
	doc, err := Load(context.Background())
	require.NoError(t, err)

	for _, path := range []string{
		"/api/v1/payouts",
		"/api/v1/payouts/mobile-money",
		"/api/v1/trades",
		"/api/v1/trades/quote",
		"/api/v1/trades/finalize",
		"/api/v1/swaps/bitcoin",
		"/api/v1/transactions",
		"/api/v1/transactions/{identifier}",
		"/api/v1/virtual-cards/actions/{action}",
		"/api/v1/webhooks/test",
	} {
		assert.NotNil(t, doc.Paths.Find(path), path)
	}
}

func TestDocHandler_ServesRegisteredDocument(t *testing.T) {
	rec := httptest.NewRecorder()
	DocHandler(rec, httptest.NewRequest(http.MethodGet, "/docs/openapi.yaml", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/yaml", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "title: Bitnob Payments Gateway")
}
