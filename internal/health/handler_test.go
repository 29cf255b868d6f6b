package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/redis/go-redis/v9"
	"github.com/serroba/recipe-links/internal/health"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockChecker struct {
	err error
}

func (m *mockChecker) Ping(_ context.Context) error {
	return m.err
}

func TestHandler_Check(t *testing.T) {
	down := &mockChecker{err: errors.New("connection refused")}

	tests := []struct {
		name         string
		redis        health.Checker
		postgres     health.Checker
		wantStatus   string
		wantRedis    string
		wantPostgres string
	}{
		{
			name:         "all dependencies healthy",
			redis:        &mockChecker{},
			postgres:     &mockChecker{},
			wantStatus:   health.StatusOK,
			wantRedis:    health.DependencyHealthy,
			wantPostgres: health.DependencyHealthy,
		},
		{
			name:         "redis down degrades",
			redis:        down,
			postgres:     &mockChecker{},
			wantStatus:   health.StatusDegraded,
			wantRedis:    health.DependencyUnhealthy,
			wantPostgres: health.DependencyHealthy,
		},
		{
			name:         "postgres down degrades",
			redis:        &mockChecker{},
			postgres:     down,
			wantStatus:   health.StatusDegraded,
			wantRedis:    health.DependencyHealthy,
			wantPostgres: health.DependencyUnhealthy,
		},
		{
			name:         "unconfigured dependencies are disabled",
			wantStatus:   health.StatusOK,
			wantRedis:    health.DependencyDisabled,
			wantPostgres: health.DependencyDisabled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := health.NewHandler(tt.redis, tt.postgres)

			resp, err := handler.Check(context.Background(), nil)

			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.Body.Status)
			assert.Equal(t, tt.wantRedis, resp.Body.Redis)
			assert.Equal(t, tt.wantPostgres, resp.Body.Postgres)
		})
	}
}

func TestRegisterRoutes(t *testing.T) {
	_, api := humatest.New(t)
	health.RegisterRoutes(api, health.NewHandler(nil, &mockChecker{}))

	resp := api.Get("/health")

	require.Equal(t, http.StatusOK, resp.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "disabled", body["redis"])
	assert.Equal(t, "healthy", body["postgres"])
}

func TestRedisChecker(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available at %s: %v", addr, err)
	}

	err := health.NewRedisChecker(client).Ping(context.Background())

	assert.NoError(t, err)
}
