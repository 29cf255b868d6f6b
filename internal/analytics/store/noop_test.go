package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/serroba/recipe-links/internal/analytics"
	"github.com/serroba/recipe-links/internal/analytics/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNoop_SaveLinkCreated(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	noop := store.NewNoop(zap.New(core))

	err := noop.SaveLinkCreated(context.Background(), &analytics.LinkCreatedEvent{
		Code:      "aB3dE9",
		FullURL:   "https://example.com/recipes/42/",
		Source:    analytics.SourceAPI,
		CreatedAt: time.Now(),
	})

	require.NoError(t, err)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "aB3dE9", logs.All()[0].ContextMap()["code"])
}

func TestNoop_SaveLinkResolved(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	noop := store.NewNoop(zap.New(core))

	err := noop.SaveLinkResolved(context.Background(), &analytics.LinkResolvedEvent{
		Code:       "aB3dE9",
		ResolvedAt: time.Now(),
		ClientIP:   "127.0.0.1",
		UserAgent:  "TestAgent/1.0",
		Referrer:   "https://referrer.com",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("link resolved event received").Len())
}
