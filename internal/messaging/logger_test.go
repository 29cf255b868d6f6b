package messaging_test

import (
	"errors"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/serroba/recipe-links/internal/messaging"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := messaging.NewZapLogger(zap.New(core))

	logger.Info("subscribed", watermill.LogFields{"topic": "link.created"})
	logger.Error("read failed", errors.New("boom"), nil)
	logger.Trace("polling", nil)
	logger.With(watermill.LogFields{"consumer_group": "analytics"}).Debug("ack", nil)

	entries := logs.All()
	assert.Len(t, entries, 4)
	assert.Equal(t, "link.created", entries[0].ContextMap()["topic"])
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, "boom", entries[1].ContextMap()["error"])
	assert.Equal(t, zapcore.DebugLevel, entries[2].Level)
	assert.Equal(t, "analytics", entries[3].ContextMap()["consumer_group"])
	assert.Equal(t, "watermill", entries[0].LoggerName)
}
