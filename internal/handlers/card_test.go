package handlers_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viktorhino/wowkards-mvp/internal/analytics"
	"github.com/viktorhino/wowkards-mvp/internal/avatar"
	"github.com/viktorhino/wowkards-mvp/internal/card"
	"github.com/viktorhino/wowkards-mvp/internal/claim"
	"github.com/viktorhino/wowkards-mvp/internal/handlers"
	"github.com/viktorhino/wowkards-mvp/internal/messaging"
	"github.com/viktorhino/wowkards-mvp/internal/store"
	"go.uber.org/zap"
)

// noopPublish returns a publish function that always succeeds.
func noopPublish[T any]() messaging.Publish[T] {
	return func(_ *T) error { return nil }
}

// capturePublish records published events for assertions.
func capturePublish[T any](events *[]*T) messaging.Publish[T] {
	return func(e *T) error {
		*events = append(*events, e)

		return nil
	}
}

// errorPublish returns a publish function that always fails.
func errorPublish[T any](err error) messaging.Publish[T] {
	return func(_ *T) error { return err }
}

func newTestHandler(s *store.MemoryStore) *handlers.CardHandler {
	allocator := claim.NewAllocator(s, s, avatar.NewIngester(avatar.NewMemoryStorage()), "57", zap.NewNop())

	return handlers.NewCardHandler(
		allocator,
		s,
		s,
		noopPublish[analytics.ProfileClaimedEvent](),
		noopPublish[analytics.ProfileViewedEvent](),
		zap.NewNop(),
	)
}

func seedUnclaimed(s *store.MemoryStore, code string) {
	s.AddCode(&card.ShortCode{
		Code:      code,
		Status:    card.StatusUnclaimed,
		CreatedAt: time.Now(),
	})
}

func claimRequest(code string) *handlers.ClaimRequest {
	req := &handlers.ClaimRequest{}
	req.Body.Code = code
	req.Body.Slug = "Jane Doe"
	req.Body.Name = "Jane"
	req.Body.LastName = "Doe"
	req.Body.WhatsApp = "3001234567"
	req.Body.Email = "jane@example.com"

	return req
}

func assertStatus(t *testing.T, err error, status int) {
	t.Helper()

	var se huma.StatusError

	require.ErrorAs(t, err, &se)
	assert.Equal(t, status, se.GetStatus())
}

func TestClaimHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("claims successfully", func(t *testing.T) {
		s := store.NewMemoryStore()
		seedUnclaimed(s, "ab3k")
		handler := newTestHandler(s)

		resp, err := handler.Claim(ctx, claimRequest("ab3k"))

		require.NoError(t, err)
		assert.True(t, resp.Body.OK)
		assert.Equal(t, "jane-doe", resp.Body.Slug)
		assert.Len(t, resp.Body.EditToken, 64)
	})

	t.Run("publishes a claim event with request metadata", func(t *testing.T) {
		s := store.NewMemoryStore()
		seedUnclaimed(s, "ab3k")

		var events []*analytics.ProfileClaimedEvent

		allocator := claim.NewAllocator(s, s, nil, "57", zap.NewNop())
		handler := handlers.NewCardHandler(
			allocator, s, s,
			capturePublish(&events),
			noopPublish[analytics.ProfileViewedEvent](),
			zap.NewNop(),
		)

		metaCtx := handlers.ContextWithRequestMeta(ctx, handlers.RequestMeta{
			ClientIP:  "203.0.113.9",
			UserAgent: "test-agent",
		})

		_, err := handler.Claim(metaCtx, claimRequest("ab3k"))

		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, "ab3k", events[0].Code)
		assert.Equal(t, "jane-doe", events[0].Slug)
		assert.Equal(t, "203.0.113.9", events[0].ClientIP)
		assert.Equal(t, "test-agent", events[0].UserAgent)
	})

	t.Run("claim succeeds even when publishing fails", func(t *testing.T) {
		s := store.NewMemoryStore()
		seedUnclaimed(s, "ab3k")

		allocator := claim.NewAllocator(s, s, nil, "57", zap.NewNop())
		handler := handlers.NewCardHandler(
			allocator, s, s,
			errorPublish[analytics.ProfileClaimedEvent](errors.New("broker down")),
			noopPublish[analytics.ProfileViewedEvent](),
			zap.NewNop(),
		)

		resp, err := handler.Claim(ctx, claimRequest("ab3k"))

		require.NoError(t, err)
		assert.True(t, resp.Body.OK)
	})

	t.Run("validation errors map to 400", func(t *testing.T) {
		s := store.NewMemoryStore()
		seedUnclaimed(s, "ab3k")
		handler := newTestHandler(s)

		req := claimRequest("ab3k")
		req.Body.Email = "not-an-email"

		_, err := handler.Claim(ctx, req)

		assertStatus(t, err, 400)
	})

	t.Run("unknown code maps to 404", func(t *testing.T) {
		handler := newTestHandler(store.NewMemoryStore())

		_, err := handler.Claim(ctx, claimRequest("zzzz"))

		assertStatus(t, err, 404)
	})

	t.Run("claimed code maps to 409", func(t *testing.T) {
		s := store.NewMemoryStore()
		seedUnclaimed(s, "ab3k")
		handler := newTestHandler(s)

		_, err := handler.Claim(ctx, claimRequest("ab3k"))
		require.NoError(t, err)

		req := claimRequest("ab3k")
		req.Body.Slug = "other"
		_, err = handler.Claim(ctx, req)

		assertStatus(t, err, 409)
	})

	t.Run("taken slug maps to 409", func(t *testing.T) {
		s := store.NewMemoryStore()
		seedUnclaimed(s, "ab3k")
		seedUnclaimed(s, "cd4m")
		handler := newTestHandler(s)

		_, err := handler.Claim(ctx, claimRequest("ab3k"))
		require.NoError(t, err)

		_, err = handler.Claim(ctx, claimRequest("cd4m"))

		assertStatus(t, err, 409)
	})
}

func TestSlugCheckHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("free slug is available", func(t *testing.T) {
		handler := newTestHandler(store.NewMemoryStore())

		resp, err := handler.SlugCheck(ctx, &handlers.SlugCheckRequest{Slug: "jane-doe"})

		require.NoError(t, err)
		assert.True(t, resp.Body.OK)
		assert.True(t, resp.Body.Available)
	})

	t.Run("claimed slug is unavailable", func(t *testing.T) {
		s := store.NewMemoryStore()
		seedUnclaimed(s, "ab3k")
		handler := newTestHandler(s)

		_, err := handler.Claim(ctx, claimRequest("ab3k"))
		require.NoError(t, err)

		resp, err := handler.SlugCheck(ctx, &handlers.SlugCheckRequest{Slug: "Jane Doe"})

		require.NoError(t, err)
		assert.True(t, resp.Body.OK)
		assert.False(t, resp.Body.Available)
	})

	t.Run("blank slug is not ok", func(t *testing.T) {
		handler := newTestHandler(store.NewMemoryStore())

		resp, err := handler.SlugCheck(ctx, &handlers.SlugCheckRequest{Slug: "  "})

		require.NoError(t, err)
		assert.False(t, resp.Body.OK)
	})
}

func TestEmailCheckHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("registered email is taken", func(t *testing.T) {
		s := store.NewMemoryStore()
		seedUnclaimed(s, "ab3k")
		handler := newTestHandler(s)

		_, err := handler.Claim(ctx, claimRequest("ab3k"))
		require.NoError(t, err)

		resp, err := handler.EmailCheck(ctx, &handlers.EmailCheckRequest{Email: "Jane@Example.com"})

		require.NoError(t, err)
		assert.True(t, resp.Body.OK)
		assert.True(t, resp.Body.Taken)
	})

	t.Run("unknown email is free", func(t *testing.T) {
		handler := newTestHandler(store.NewMemoryStore())

		resp, err := handler.EmailCheck(ctx, &handlers.EmailCheckRequest{Email: "nobody@example.com"})

		require.NoError(t, err)
		assert.True(t, resp.Body.OK)
		assert.False(t, resp.Body.Taken)
	})
}

func TestFreeCodeHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("redirects to the oldest unclaimed code", func(t *testing.T) {
		s := store.NewMemoryStore()
		s.AddCode(&card.ShortCode{Code: "new2", Status: card.StatusUnclaimed, CreatedAt: time.Now()})
		s.AddCode(&card.ShortCode{Code: "old2", Status: card.StatusUnclaimed, CreatedAt: time.Now().Add(-time.Hour)})
		handler := newTestHandler(s)

		resp, err := handler.FreeCode(ctx, nil)

		require.NoError(t, err)
		assert.Equal(t, 302, resp.Status)
		assert.Equal(t, "/old2", resp.Headers.Location)
	})

	t.Run("404 when everything is claimed", func(t *testing.T) {
		handler := newTestHandler(store.NewMemoryStore())

		_, err := handler.FreeCode(ctx, nil)

		assertStatus(t, err, 404)
	})
}
