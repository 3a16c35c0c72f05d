package postgres_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/DanielPopoola/bitnob-payments-gateway/internal/application/services/testhelpers"
	"github.com/DanielPopoola/bitnob-payments-gateway/internal/domain"
	"github.com/DanielPopoola/bitnob-payments-gateway/internal/infrastructure/persistence/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type WebhookInboxRepositoryTestSuite struct {
	suite.Suite
	testDB *testhelpers.TestDatabase
	repo   *postgres.WebhookInboxRepository
}

func TestWebhookInboxRepositorySuite(t *testing.T) {
	suite.Run(t, new(WebhookInboxRepositoryTestSuite))
}

func (suite *WebhookInboxRepositoryTestSuite) SetupSuite() {
	suite.testDB = testhelpers.SetupTestDatabase(suite.T())
	suite.repo = postgres.NewWebhookInboxRepository(suite.testDB.DB.Pool)
}

func (suite *WebhookInboxRepositoryTestSuite) TearDownSuite() {
	if suite.testDB != nil {
		suite.testDB.Cleanup(suite.T())
	}
}

func (suite *WebhookInboxRepositoryTestSuite) SetupTest() {
	suite.testDB.CleanTables(suite.T())
}

func (suite *WebhookInboxRepositoryTestSuite) Test_Save_AssignsIDAndTimestamp() {
	t := suite.T()
	ctx := context.Background()

	w := &domain.InboundWebhook{
		Reference:   "ref-123",
		Event:       "payout.completed",
		Payload:     json.RawMessage(`{"event":"payout.completed","data":{"reference":"ref-123"}}`),
		ContentType: "application/json",
		UserAgent:   "Bitnob/1.0",
		RemoteAddr:  "10.0.0.1",
	}

	require.NoError(t, suite.repo.Save(ctx, w))
	assert.NotEmpty(t, w.ID)
	assert.False(t, w.ReceivedAt.IsZero())

	found, err := suite.repo.FindByReference(ctx, "ref-123", 10)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, w.ID, found[0].ID)
	assert.Equal(t, "payout.completed", found[0].Event)
	assert.Equal(t, "Bitnob/1.0", found[0].UserAgent)
	assert.JSONEq(t, string(w.Payload), string(found[0].Payload))
}

func (suite *WebhookInboxRepositoryTestSuite) Test_Save_WithoutReference() {
	t := suite.T()
	ctx := context.Background()

	w := &domain.InboundWebhook{Payload: json.RawMessage(`{"ping":true}`)}
	require.NoError(t, suite.repo.Save(ctx, w))

	found, err := suite.repo.FindByReference(ctx, "", 10)
	require.NoError(t, err)
	assert.Empty(t, found, "rows without a reference are stored as NULL and never match")
}

func (suite *WebhookInboxRepositoryTestSuite) Test_Save_DuplicateIDFails() {
	t := suite.T()
	ctx := context.Background()

	w := &domain.InboundWebhook{Payload: json.RawMessage(`{}`)}
	require.NoError(t, suite.repo.Save(ctx, w))

	dup := &domain.InboundWebhook{ID: w.ID, Payload: json.RawMessage(`{}`)}
	err := suite.repo.Save(ctx, dup)
	require.Error(t, err)
	assert.True(t, postgres.IsUniqueViolation(err))
}

func (suite *WebhookInboxRepositoryTestSuite) Test_FindByReference_NewestFirstAndLimited() {
	t := suite.T()
	ctx := context.Background()
	base := time.Now().UTC().Add(-time.Hour)

	for i := range 3 {
		require.NoError(t, suite.repo.Save(ctx, &domain.InboundWebhook{
			Reference:  "ref-order",
			Event:      "payout.update",
			Payload:    json.RawMessage(fmt.Sprintf(`{"seq":%d}`, i)),
			ReceivedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	found, err := suite.repo.FindByReference(ctx, "ref-order", 2)
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.JSONEq(t, `{"seq":2}`, string(found[0].Payload))
	assert.JSONEq(t, `{"seq":1}`, string(found[1].Payload))
}

func (suite *WebhookInboxRepositoryTestSuite) Test_DeleteOlderThan() {
	t := suite.T()
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, suite.repo.Save(ctx, &domain.InboundWebhook{
		Reference: "old", Payload: json.RawMessage(`{}`), ReceivedAt: now.Add(-10 * 24 * time.Hour),
	}))
	require.NoError(t, suite.repo.Save(ctx, &domain.InboundWebhook{
		Reference: "new", Payload: json.RawMessage(`{}`), ReceivedAt: now,
	}))

	deleted, err := suite.repo.DeleteOlderThan(ctx, now.Add(-7*24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	old, err := suite.repo.FindByReference(ctx, "old", 10)
	require.NoError(t, err)
	assert.Empty(t, old)

	recent, err := suite.repo.FindByReference(ctx, "new", 10)
	require.NoError(t, err)
	assert.Len(t, recent, 1)
}
