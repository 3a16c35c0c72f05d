package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/DanielPopoola/bitnob-payments-gateway/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_HappyPathWithInitialize(t *testing.T) {
	run := domain.NewRun(domain.KindBankPayout, "ref-1")
	assert.Equal(t, domain.StateStart, run.State)

	require.NoError(t, run.MarkQuoteRequested())
	require.NoError(t, run.ReceiveQuote(&domain.Quote{QuoteID: "Q1"}))
	require.NoError(t, run.MarkInitialized(json.RawMessage(`{"id":"init"}`)))
	assert.Nil(t, run.CompletedAt)

	require.NoError(t, run.MarkFinalized(json.RawMessage(`{"status":"pending"}`)))

	assert.Equal(t, domain.StateFinalized, run.State)
	assert.Equal(t, "Q1", run.Quote.QuoteID)
	assert.True(t, run.IsTerminal())
	assert.NotNil(t, run.CompletedAt)
}

func TestRun_FinalizeDirectlyAfterQuote(t *testing.T) {
	run := domain.NewRun(domain.KindSpotTrade, "ref-2")

	require.NoError(t, run.MarkQuoteRequested())
	require.NoError(t, run.ReceiveQuote(&domain.Quote{QuoteID: "Q2"}))
	require.NoError(t, run.MarkFinalized(nil))

	assert.Equal(t, domain.StateFinalized, run.State)
}

func TestRun_FailureStates(t *testing.T) {
	t.Run("quote failure is terminal", func(t *testing.T) {
		run := domain.NewRun(domain.KindBankPayout, "ref")
		require.NoError(t, run.MarkQuoteRequested())
		require.NoError(t, run.FailQuote())

		assert.Equal(t, domain.StateQuoteFailed, run.State)
		assert.Equal(t, "quote", run.FailedStep)
		assert.True(t, run.IsTerminal())

		err := run.MarkInitialized(nil)
		require.Error(t, err)
		assert.True(t, domain.IsErrorCode(err, domain.ErrCodeInvalidTransition))
	})

	t.Run("initialize failure blocks finalize", func(t *testing.T) {
		run := domain.NewRun(domain.KindBankPayout, "ref")
		require.NoError(t, run.MarkQuoteRequested())
		require.NoError(t, run.ReceiveQuote(&domain.Quote{QuoteID: "Q"}))
		require.NoError(t, run.FailInitialize())

		assert.Equal(t, "initialize", run.FailedStep)
		assert.Error(t, run.MarkFinalized(nil))
	})

	t.Run("finalize failure after initialize", func(t *testing.T) {
		run := domain.NewRun(domain.KindBankPayout, "ref")
		require.NoError(t, run.MarkQuoteRequested())
		require.NoError(t, run.ReceiveQuote(&domain.Quote{QuoteID: "Q"}))
		require.NoError(t, run.MarkInitialized(nil))
		require.NoError(t, run.FailFinalize())

		assert.Equal(t, domain.StateFinalizeFailed, run.State)
		assert.Equal(t, "finalize", run.FailedStep)
	})
}

func TestRun_IllegalTransitions(t *testing.T) {
	run := domain.NewRun(domain.KindBankPayout, "ref")

	err := run.ReceiveQuote(&domain.Quote{QuoteID: "Q"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot transition from START to QUOTE_RECEIVED")
	assert.Nil(t, run.Quote)

	assert.Error(t, run.MarkFinalized(nil))
	assert.Equal(t, domain.StateStart, run.State)
}

func TestResumeRun(t *testing.T) {
	run := domain.ResumeRun(domain.KindSpotTrade, "ref", &domain.Quote{QuoteID: "Q9"})

	assert.Equal(t, domain.StateQuoteReceived, run.State)
	require.NoError(t, run.MarkFinalized(nil))
	assert.True(t, run.IsTerminal())
}
