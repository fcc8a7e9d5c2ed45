package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viktorhino/wowkards-mvp/internal/store"
)

func TestRateLimitMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("counts requests inside the window", func(t *testing.T) {
		s := store.NewRateLimitMemoryStore()

		for want := int64(1); want <= 3; want++ {
			count, err := s.Record(ctx, "key", time.Minute)
			require.NoError(t, err)
			assert.Equal(t, want, count)
		}
	})

	t.Run("expired entries are pruned", func(t *testing.T) {
		s := store.NewRateLimitMemoryStore()

		_, err := s.Record(ctx, "key", time.Millisecond)
		require.NoError(t, err)

		time.Sleep(5 * time.Millisecond)

		count, err := s.Record(ctx, "key", time.Millisecond)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("keys do not interfere", func(t *testing.T) {
		s := store.NewRateLimitMemoryStore()

		_, err := s.Record(ctx, "a", time.Minute)
		require.NoError(t, err)

		count, err := s.Record(ctx, "b", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}
