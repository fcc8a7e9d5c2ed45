package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viktorhino/wowkards-mvp/internal/middleware"
	"github.com/viktorhino/wowkards-mvp/internal/ratelimit"
	"github.com/viktorhino/wowkards-mvp/internal/store"
	"go.uber.org/zap"
)

type limitedOutput struct {
	Body struct {
		OK bool `json:"ok"`
	}
}

func okHandler(_ context.Context, _ *struct{}) (*limitedOutput, error) {
	out := &limitedOutput{}
	out.Body.OK = true

	return out, nil
}

func newPolicyAPI(policy *ratelimit.Policy) (*chi.Mux, huma.API) {
	router := chi.NewMux()
	api := humachi.New(router, huma.DefaultConfig("Test", "1.0.0"))

	limiter := ratelimit.NewPolicyLimiter(store.NewRateLimitMemoryStore(), policy)
	api.UseMiddleware(middleware.PolicyRateLimiter(
		api, limiter, ratelimit.NewOperationScopeResolver(), zap.NewNop(),
	))

	return router, api
}

func get(router *chi.Mux, path string) int {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("User-Agent", "TestAgent/1.0")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w.Code
}

func TestPolicyRateLimiter(t *testing.T) {
	tightPolicy := &ratelimit.Policy{
		Limits: map[ratelimit.Scope][]ratelimit.LimitConfig{
			ratelimit.ScopeGlobal: {{Window: time.Minute, Max: 2}},
		},
	}

	t.Run("enforces the policy budget", func(t *testing.T) {
		router, api := newPolicyAPI(tightPolicy)
		huma.Get(api, "/limited", okHandler)

		assert.Equal(t, http.StatusOK, get(router, "/limited"))
		assert.Equal(t, http.StatusOK, get(router, "/limited"))
		assert.Equal(t, http.StatusTooManyRequests, get(router, "/limited"))
	})

	t.Run("endpoint limits override the policy", func(t *testing.T) {
		router, api := newPolicyAPI(tightPolicy)

		huma.Register(api, huma.Operation{
			Method: http.MethodGet,
			Path:   "/custom",
			Metadata: map[string]any{
				ratelimit.MetadataKey: ratelimit.EndpointConfig{
					Limits: []ratelimit.LimitConfig{{Window: time.Minute, Max: 5}},
				},
			},
		}, okHandler)

		for range 5 {
			require.Equal(t, http.StatusOK, get(router, "/custom"))
		}

		assert.Equal(t, http.StatusTooManyRequests, get(router, "/custom"))
	})

	t.Run("disabled endpoints bypass limiting", func(t *testing.T) {
		router, api := newPolicyAPI(tightPolicy)

		huma.Register(api, huma.Operation{
			Method: http.MethodGet,
			Path:   "/open",
			Metadata: map[string]any{
				ratelimit.MetadataKey: ratelimit.EndpointConfig{Disabled: true},
			},
		}, okHandler)

		for range 10 {
			require.Equal(t, http.StatusOK, get(router, "/open"))
		}
	})
}

func TestRateLimiter(t *testing.T) {
	t.Run("shared limit applies to every route", func(t *testing.T) {
		router := chi.NewMux()
		api := humachi.New(router, huma.DefaultConfig("Test", "1.0.0"))

		limiter := ratelimit.NewSlidingWindowLimiter(store.NewRateLimitMemoryStore(), 1, time.Minute)
		api.UseMiddleware(middleware.RateLimiter(api, limiter))

		huma.Get(api, "/limited", okHandler)

		assert.Equal(t, http.StatusOK, get(router, "/limited"))
		assert.Equal(t, http.StatusTooManyRequests, get(router, "/limited"))
	})
}
