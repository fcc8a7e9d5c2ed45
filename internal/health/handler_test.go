package health_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viktorhino/wowkards-mvp/internal/health"
)

type fakeChecker struct {
	err error
}

func (f *fakeChecker) Ping(context.Context) error {
	return f.err
}

func TestCheck(t *testing.T) {
	ctx := context.Background()

	t.Run("all healthy", func(t *testing.T) {
		handler := health.NewHandler(&fakeChecker{}, &fakeChecker{})

		resp, err := handler.Check(ctx, nil)

		require.NoError(t, err)
		assert.Equal(t, "ok", resp.Body.Status)
		assert.Equal(t, "healthy", resp.Body.Postgres)
		assert.Equal(t, "healthy", resp.Body.Redis)
	})

	t.Run("postgres down degrades the service", func(t *testing.T) {
		handler := health.NewHandler(&fakeChecker{err: errors.New("down")}, &fakeChecker{})

		resp, err := handler.Check(ctx, nil)

		require.NoError(t, err)
		assert.Equal(t, "degraded", resp.Body.Status)
		assert.Equal(t, "unhealthy", resp.Body.Postgres)
		assert.Equal(t, "healthy", resp.Body.Redis)
	})

	t.Run("redis down degrades the service", func(t *testing.T) {
		handler := health.NewHandler(&fakeChecker{}, &fakeChecker{err: errors.New("down")})

		resp, err := handler.Check(ctx, nil)

		require.NoError(t, err)
		assert.Equal(t, "degraded", resp.Body.Status)
		assert.Equal(t, "unhealthy", resp.Body.Redis)
	})
}
