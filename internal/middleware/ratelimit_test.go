package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/serroba/recipe-links/internal/middleware"
	"github.com/serroba/recipe-links/internal/ratelimit"
	"github.com/serroba/recipe-links/internal/store"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type failingStore struct{}

func (failingStore) Record(context.Context, string, time.Duration) (int64, error) {
	return 0, errors.New("store down")
}

func newLimitedAPI(t *testing.T, rlStore ratelimit.Store, policy *ratelimit.Policy) (*chi.Mux, huma.API) {
	t.Helper()

	router := chi.NewMux()
	api := humachi.New(router, huma.DefaultConfig("Test", "1.0.0"))
	limiter := ratelimit.NewPolicyLimiter(rlStore, policy)
	api.UseMiddleware(middleware.RateLimiter(api, limiter, ratelimit.NewOperationScopeResolver(), zap.NewNop()))

	return router, api
}

func register(api huma.API, method, path string, cfg *ratelimit.EndpointConfig) {
	op := huma.Operation{Method: method, Path: path}
	if cfg != nil {
		op.Metadata = map[string]any{ratelimit.MetadataKey: *cfg}
	}

	huma.Register(api, op, func(_ context.Context, _ *struct{}) (*testOutput, error) {
		return &testOutput{Body: "ok"}, nil
	})
}

func do(router http.Handler, method, path, ua string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("User-Agent", ua)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func smallPolicy() *ratelimit.Policy {
	return &ratelimit.Policy{
		Limits: map[ratelimit.Scope][]ratelimit.LimitConfig{
			ratelimit.ScopeGlobal: {{Window: time.Minute, Max: 100}},
			ratelimit.ScopeRead:   {{Window: time.Minute, Max: 3}},
			ratelimit.ScopeWrite:  {{Window: time.Minute, Max: 1}},
		},
	}
}

func TestRateLimiter(t *testing.T) {
	t.Run("allows requests under the read limit", func(t *testing.T) {
		router, api := newLimitedAPI(t, store.NewRateLimitMemoryStore(), smallPolicy())
		register(api, http.MethodGet, "/read", nil)

		for range 3 {
			assert.Equal(t, http.StatusOK, do(router, http.MethodGet, "/read", "ua").Code)
		}
	})

	t.Run("returns 429 with Retry-After once exceeded", func(t *testing.T) {
		router, api := newLimitedAPI(t, store.NewRateLimitMemoryStore(), smallPolicy())
		register(api, http.MethodPost, "/write", nil)

		assert.Equal(t, http.StatusOK, do(router, http.MethodPost, "/write", "ua").Code)

		w := do(router, http.MethodPost, "/write", "ua")

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "60", w.Header().Get("Retry-After"))
		assert.Contains(t, w.Body.String(), "rate limit exceeded")
	})

	t.Run("different clients have separate budgets", func(t *testing.T) {
		router, api := newLimitedAPI(t, store.NewRateLimitMemoryStore(), smallPolicy())
		register(api, http.MethodPost, "/write", nil)

		assert.Equal(t, http.StatusOK, do(router, http.MethodPost, "/write", "alice").Code)
		assert.Equal(t, http.StatusOK, do(router, http.MethodPost, "/write", "bob").Code)
	})

	t.Run("endpoint limits replace the policy", func(t *testing.T) {
		router, api := newLimitedAPI(t, store.NewRateLimitMemoryStore(), smallPolicy())
		register(api, http.MethodPost, "/mint", &ratelimit.EndpointConfig{
			Limits: []ratelimit.LimitConfig{{Window: time.Minute, Max: 2}},
		})

		assert.Equal(t, http.StatusOK, do(router, http.MethodPost, "/mint", "ua").Code)
		assert.Equal(t, http.StatusOK, do(router, http.MethodPost, "/mint", "ua").Code)
		assert.Equal(t, http.StatusTooManyRequests, do(router, http.MethodPost, "/mint", "ua").Code)
	})

	t.Run("endpoint limits share a counter across path values", func(t *testing.T) {
		router, api := newLimitedAPI(t, store.NewRateLimitMemoryStore(), smallPolicy())
		register(api, http.MethodGet, "/s/{code}", &ratelimit.EndpointConfig{
			Limits: []ratelimit.LimitConfig{{Window: time.Minute, Max: 1}},
		})

		assert.Equal(t, http.StatusOK, do(router, http.MethodGet, "/s/aaaaaa", "ua").Code)
		assert.Equal(t, http.StatusTooManyRequests, do(router, http.MethodGet, "/s/bbbbbb", "ua").Code)
	})

	t.Run("scope override applies policy limits of that scope", func(t *testing.T) {
		router, api := newLimitedAPI(t, store.NewRateLimitMemoryStore(), smallPolicy())
		register(api, http.MethodGet, "/expensive", &ratelimit.EndpointConfig{Scope: ratelimit.ScopeWrite})

		assert.Equal(t, http.StatusOK, do(router, http.MethodGet, "/expensive", "ua").Code)
		assert.Equal(t, http.StatusTooManyRequests, do(router, http.MethodGet, "/expensive", "ua").Code)
	})

	t.Run("disabled endpoints are never limited", func(t *testing.T) {
		router, api := newLimitedAPI(t, failingStore{}, smallPolicy())
		register(api, http.MethodGet, "/health", &ratelimit.EndpointConfig{Disabled: true})

		for range 5 {
			assert.Equal(t, http.StatusOK, do(router, http.MethodGet, "/health", "ua").Code)
		}
	})

	t.Run("store failure is a 500", func(t *testing.T) {
		router, api := newLimitedAPI(t, failingStore{}, smallPolicy())
		register(api, http.MethodGet, "/read", nil)

		assert.Equal(t, http.StatusInternalServerError, do(router, http.MethodGet, "/read", "ua").Code)
	})
}
