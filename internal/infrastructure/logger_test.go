package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cspspay/internal/config"
)

func TestNewRunContext(t *testing.T) {
	ctx := NewRunContext(context.Background())
	runID := GetRunID(ctx)
	assert.NotEmpty(t, runID)

	// Each run gets a distinct identity.
	other := GetRunID(NewRunContext(context.Background()))
	assert.NotEqual(t, runID, other)

	assert.Empty(t, GetRunID(context.Background()))
}

func TestRunIDHandlerInjectsRunID(t *testing.T) {
	var buf bytes.Buffer
	handler := &runIDHandler{Handler: slog.NewJSONHandler(&buf, nil)}
	logger := slog.New(handler)

	ctx := NewRunContext(context.Background())
	logger.InfoContext(ctx, "hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, GetRunID(ctx), entry["run_id"])
	assert.Equal(t, "hello", entry["msg"])
}

func TestRunIDHandlerWithoutRunID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(&runIDHandler{Handler: slog.NewJSONHandler(&buf, nil)})

	logger.Info("no run context")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	_, present := entry["run_id"]
	assert.False(t, present)
}

func TestInitializeLoggerToFile(t *testing.T) {
	ResetLoggerForTesting()
	t.Cleanup(ResetLoggerForTesting)

	logPath := filepath.Join(t.TempDir(), "logs", "test.log")
	logger, err := InitializeLogger(config.LoggingConfig{
		Level:    "debug",
		Output:   "file",
		FilePath: logPath,
	})
	require.NoError(t, err)
	require.NotNil(t, logger)

	logger.Info("written to file")
	require.NoError(t, CloseLogFile())

	assert.FileExists(t, logPath)
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLogLevel(tt.level))
		})
	}
}
