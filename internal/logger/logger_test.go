package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLevels(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	Init(true, "")
	require.NotNil(t, Log)
	assert.True(t, Log.Enabled(context.Background(), slog.LevelDebug))

	Init(false, "")
	assert.False(t, Log.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, Log.Enabled(context.Background(), slog.LevelInfo))
}
