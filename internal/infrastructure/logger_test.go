package infrastructure

import (
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loannorm/internal/config"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{input: "debug", want: slog.LevelDebug},
		{input: "info", want: slog.LevelInfo},
		{input: "warn", want: slog.LevelWarn},
		{input: "error", want: slog.LevelError},
		{input: "WARN", want: slog.LevelWarn},
		{input: "unknown", want: slog.LevelInfo},
		{input: "", want: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLogLevel(tt.input))
		})
	}
}

func TestCreateLoggerFileOutput(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "test.log")

	logger, err := createLogger(config.LoggingConfig{
		Level:    "info",
		Output:   "file",
		FilePath: logPath,
	})
	require.NoError(t, err)
	require.NotNil(t, logger)

	logger.Info("hello", slog.String("k", "v"))
	CloseLogFile()

	assert.FileExists(t, logPath)
}

func TestCreateLoggerConsole(t *testing.T) {
	logger, err := createLogger(config.LoggingConfig{Level: "debug", Output: "console"})
	require.NoError(t, err)
	assert.NotNil(t, logger)
	assert.True(t, logger.Enabled(nil, slog.LevelDebug))
}
