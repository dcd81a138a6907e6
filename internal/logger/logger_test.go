package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitLogger(t *testing.T) {
	prev := Log
	t.Cleanup(func() { Log = prev })

	for _, env := range []string{EnvDevelopment, EnvProduction} {
		require.NoError(t, InitLogger(env, "debug"))
		assert.NotNil(t, Log)
	}

	require.NoError(t, InitLogger(EnvProduction, "warn"))
	assert.False(t, Log.Core().Enabled(zap.InfoLevel))
	assert.True(t, Log.Core().Enabled(zap.WarnLevel))
}

func TestFromContext(t *testing.T) {
	prev := Log
	t.Cleanup(func() { Log = prev })

	core, logs := observer.New(zap.InfoLevel)
	Log = zap.New(core)

	ctx := WithCorrelationID(context.Background(), "abc-123")
	assert.Equal(t, "abc-123", CorrelationID(ctx))
	FromContext(ctx).Info("tagged")
	FromContext(context.Background()).Info("plain")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "abc-123", entries[0].ContextMap()["correlation_id"])
	assert.NotContains(t, entries[1].ContextMap(), "correlation_id")
}
