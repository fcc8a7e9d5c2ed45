package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viktorhino/wowkards-mvp/internal/card"
	"github.com/viktorhino/wowkards-mvp/internal/store"
)

func newProfile(id, slug, token string) *card.Profile {
	return &card.Profile{
		ID:        id,
		Slug:      slug,
		Name:      "Jane",
		LastName:  "Doe",
		Email:     "jane-" + id + "@example.com",
		EditToken: token,
		CreatedAt: time.Now(),
	}
}

func TestMemoryStoreCodes(t *testing.T) {
	ctx := context.Background()

	t.Run("get returns a seeded code", func(t *testing.T) {
		s := store.NewMemoryStore()
		s.AddCode(&card.ShortCode{Code: "ab3k", CreatedAt: time.Now()})

		sc, err := s.GetCode(ctx, "ab3k")

		require.NoError(t, err)
		assert.Equal(t, card.StatusUnclaimed, sc.Status)
	})

	t.Run("get unknown code errors", func(t *testing.T) {
		s := store.NewMemoryStore()

		_, err := s.GetCode(ctx, "zzzz")

		assert.ErrorIs(t, err, card.ErrCodeNotFound)
	})

	t.Run("mark claimed transitions exactly once", func(t *testing.T) {
		s := store.NewMemoryStore()
		s.AddCode(&card.ShortCode{Code: "ab3k", CreatedAt: time.Now()})

		err := s.MarkClaimed(ctx, "ab3k", "jane-doe", time.Now())
		require.NoError(t, err)

		err = s.MarkClaimed(ctx, "ab3k", "someone-else", time.Now())
		assert.ErrorIs(t, err, card.ErrCodeClaimed)

		sc, err := s.GetCode(ctx, "ab3k")
		require.NoError(t, err)
		assert.Equal(t, "jane-doe", sc.Slug)
	})

	t.Run("oldest unclaimed skips claimed codes", func(t *testing.T) {
		s := store.NewMemoryStore()
		s.AddCode(&card.ShortCode{Code: "old1", CreatedAt: time.Now().Add(-2 * time.Hour)})
		s.AddCode(&card.ShortCode{Code: "old2", CreatedAt: time.Now().Add(-time.Hour)})
		require.NoError(t, s.MarkClaimed(ctx, "old1", "taken", time.Now()))

		sc, err := s.OldestUnclaimed(ctx)

		require.NoError(t, err)
		assert.Equal(t, "old2", sc.Code)
	})

	t.Run("insert codes skips duplicates", func(t *testing.T) {
		s := store.NewMemoryStore()

		inserted, err := s.InsertCodes(ctx, []string{"aaaa", "bbbb"})
		require.NoError(t, err)
		assert.Equal(t, int64(2), inserted)

		inserted, err = s.InsertCodes(ctx, []string{"bbbb", "cccc"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), inserted)
	})
}

func TestMemoryStoreProfiles(t *testing.T) {
	ctx := context.Background()

	t.Run("insert enforces slug uniqueness", func(t *testing.T) {
		s := store.NewMemoryStore()
		require.NoError(t, s.Insert(ctx, newProfile("1", "jane-doe", "tok1")))

		err := s.Insert(ctx, newProfile("2", "jane-doe", "tok2"))

		assert.ErrorIs(t, err, card.ErrSlugTaken)
	})

	t.Run("insert enforces token uniqueness", func(t *testing.T) {
		s := store.NewMemoryStore()
		require.NoError(t, s.Insert(ctx, newProfile("1", "jane-doe", "tok1")))

		err := s.Insert(ctx, newProfile("2", "john-doe", "tok1"))

		assert.ErrorIs(t, err, card.ErrTokenConflict)
	})

	t.Run("lookups by slug and token", func(t *testing.T) {
		s := store.NewMemoryStore()
		require.NoError(t, s.Insert(ctx, newProfile("1", "jane-doe", "tok1")))

		bySlug, err := s.GetBySlug(ctx, "jane-doe")
		require.NoError(t, err)
		assert.Equal(t, "1", bySlug.ID)

		byToken, err := s.GetByToken(ctx, "tok1")
		require.NoError(t, err)
		assert.Equal(t, "1", byToken.ID)

		_, err = s.GetBySlug(ctx, "nobody")
		assert.ErrorIs(t, err, card.ErrProfileNotFound)

		_, err = s.GetByToken(ctx, "bogus")
		assert.ErrorIs(t, err, card.ErrTokenNotFound)
	})

	t.Run("update applies only set fields", func(t *testing.T) {
		s := store.NewMemoryStore()
		require.NoError(t, s.Insert(ctx, newProfile("1", "jane-doe", "tok1")))

		position := "CTO"
		err := s.Update(ctx, "1", card.ProfilePatch{Position: &position})
		require.NoError(t, err)

		p, err := s.GetBySlug(ctx, "jane-doe")
		require.NoError(t, err)
		assert.Equal(t, "CTO", p.Position)
		assert.Equal(t, "Jane", p.Name)
	})

	t.Run("update of a missing profile errors", func(t *testing.T) {
		s := store.NewMemoryStore()

		err := s.Update(ctx, "missing", card.ProfilePatch{})

		assert.ErrorIs(t, err, card.ErrProfileNotFound)
	})

	t.Run("delete removes the profile", func(t *testing.T) {
		s := store.NewMemoryStore()
		require.NoError(t, s.Insert(ctx, newProfile("1", "jane-doe", "tok1")))

		require.NoError(t, s.Delete(ctx, "1"))

		_, err := s.GetBySlug(ctx, "jane-doe")
		assert.ErrorIs(t, err, card.ErrProfileNotFound)
	})

	t.Run("slug and email checks", func(t *testing.T) {
		s := store.NewMemoryStore()
		require.NoError(t, s.Insert(ctx, newProfile("1", "jane-doe", "tok1")))

		taken, err := s.SlugTaken(ctx, "jane-doe")
		require.NoError(t, err)
		assert.True(t, taken)

		taken, err = s.SlugTaken(ctx, "free-slug")
		require.NoError(t, err)
		assert.False(t, taken)

		taken, err = s.EmailTaken(ctx, "jane-1@example.com")
		require.NoError(t, err)
		assert.True(t, taken)

		taken, err = s.EmailTaken(ctx, "other@example.com")
		require.NoError(t, err)
		assert.False(t, taken)
	})
}
