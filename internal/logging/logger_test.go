package logging

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewBuildsLogger(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EnableColors = false
	logger, err := New(cfg)
	require.NoError(t, err)
	require.NotNil(t, logger)

	logger.Info(ComponentRouter, "computed solution", zap.Int("hops", 2))
	logger.Warn(ComponentExecutor, "step retry scheduled")
	logger.Error(ComponentIndexer, "lookup failed", errors.New("timeout"))
	assert.NoError(t, logger.Sync())
}

func TestNewJSONEncodingDisablesColor(t *testing.T) {
	cfg := Config{Level: zapcore.InfoLevel, EnableColors: true, EnableJSON: true}
	logger, err := New(cfg)
	require.NoError(t, err)
	assert.False(t, logger.colorEnabled)
}
