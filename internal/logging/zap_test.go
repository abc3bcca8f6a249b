package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLogger_Levels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := NewZap(zap.New(core))

	logger.Debug("phase sequenced", "phase", "discharge")
	logger.Info("allocator ready", "cache", true)
	logger.Warn("penalty clamped", "using", 0)
	logger.Error("allocation failed", "room", "12")

	entries := logs.AllUntimed()
	require.Len(t, entries, 4)

	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "phase sequenced", entries[0].Message)
	assert.Equal(t, "discharge", entries[0].ContextMap()["phase"])

	assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
	assert.Equal(t, true, entries[1].ContextMap()["cache"])

	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[3].Level)
	assert.Equal(t, "12", entries[3].ContextMap()["room"])
}

func TestZapLogger_LevelFiltering(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	logger := NewZap(zap.New(core))

	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("shown")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "shown", logs.All()[0].Message)
}

func TestNewZap_Nil(t *testing.T) {
	logger := NewZap(nil)
	require.NotNil(t, logger.sugar)

	logger.Info("dropped")
	_ = logger.Sync()
}
