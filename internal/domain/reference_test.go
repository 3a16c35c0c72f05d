package domain_test

import (
	"strings"
	"testing"

	"github.com/DanielPopoola/bitnob-payments-gateway/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReference(t *testing.T) {
	t.Run("mints parseable uuids", func(t *testing.T) {
		ref := domain.NewReference()

		parsed, err := uuid.Parse(ref)
		require.NoError(t, err)
		assert.Equal(t, uuid.Version(4), parsed.Version())
	})

	t.Run("never repeats across many runs", func(t *testing.T) {
		seen := make(map[string]struct{}, 1000)
		for range 1000 {
			seen[domain.NewReference()] = struct{}{}
		}
		assert.Len(t, seen, 1000)
	})
}

func TestResolveReference(t *testing.T) {
	t.Run("echoes a supplied reference", func(t *testing.T) {
		ref, err := domain.ResolveReference("order-42")

		require.NoError(t, err)
		assert.Equal(t, "order-42", ref)
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		ref, err := domain.ResolveReference("  order-42 \n")

		require.NoError(t, err)
		assert.Equal(t, "order-42", ref)
	})

	t.Run("generates when blank", func(t *testing.T) {
		ref, err := domain.ResolveReference("   ")

		require.NoError(t, err)
		_, parseErr := uuid.Parse(ref)
		assert.NoError(t, parseErr)
	})

	t.Run("rejects overly long references", func(t *testing.T) {
		_, err := domain.ResolveReference(strings.Repeat("a", domain.MaxReferenceLength+1))

		require.Error(t, err)
		assert.True(t, domain.IsErrorCode(err, domain.ErrCodeInvalidReference))
	})

	t.Run("accepts the maximum length", func(t *testing.T) {
		ref, err := domain.ResolveReference(strings.Repeat("a", domain.MaxReferenceLength))

		require.NoError(t, err)
		assert.Len(t, ref, domain.MaxReferenceLength)
	})

	t.Run("counts characters not bytes", func(t *testing.T) {
		supplied := strings.Repeat("é", domain.MaxReferenceLength)

		ref, err := domain.ResolveReference(supplied)

		require.NoError(t, err)
		assert.Equal(t, supplied, ref)

		_, err = domain.ResolveReference(supplied + "é")
		assert.True(t, domain.IsErrorCode(err, domain.ErrCodeInvalidReference))
	})

	t.Run("rejects embedded whitespace", func(t *testing.T) {
		_, err := domain.ResolveReference("order 42")

		require.Error(t, err)
		assert.True(t, domain.IsValidationError(err))
	})

	t.Run("rejects control characters", func(t *testing.T) {
		_, err := domain.ResolveReference("order\x0042")

		require.Error(t, err)
		assert.True(t, domain.IsErrorCode(err, domain.ErrCodeInvalidReference))
	})
}
