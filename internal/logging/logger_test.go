package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"itemsvc/internal/config"
)

func TestNewDevelopmentHonoursLevel(t *testing.T) {
	logger, err := New(&config.Config{LogLevel: "info"})
	require.NoError(t, err)
	require.NotNil(t, logger)
	require.False(t, logger.Core().Enabled(zapcore.DebugLevel))
	require.True(t, logger.Core().Enabled(zapcore.InfoLevel))

	logger, err = New(&config.Config{LogLevel: "debug"})
	require.NoError(t, err)
	require.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger, err = New(&config.Config{LogLevel: "loud"})
	require.NoError(t, err)
	require.False(t, logger.Core().Enabled(zapcore.DebugLevel))
	require.True(t, logger.Core().Enabled(zapcore.InfoLevel))
}

func TestNewReleaseWritesFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "nested", "items.log")
	logger, err := New(&config.Config{ReleaseMode: true, LogFile: logFile, LogLevel: "warn"})
	require.NoError(t, err)

	require.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	logger.Warn("hello")
	_ = logger.Sync()

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	require.Contains(t, string(data), `"msg":"hello"`)
}
