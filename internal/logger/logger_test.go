package logger_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"grammarguide/internal/logger"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"Warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range tests {
		require.Equal(t, want, logger.ParseLevel(in), in)
	}
}

func TestNew_TextLowercasesLevel(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(&buf, slog.LevelInfo, logger.FormatText)
	l.Info("entry created", "module", "service")

	require.Contains(t, buf.String(), "level=info")
	require.Contains(t, buf.String(), "module=service")
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(&buf, slog.LevelDebug, logger.FormatJSON)
	l.Debug("http request", "status_code", 201)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "http request", line["msg"])
	require.EqualValues(t, 201, line["status_code"])
}

func TestNew_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(&buf, slog.LevelWarn, logger.FormatTint)
	l.Info("hidden")
	require.Empty(t, buf.String())

	l.Warn("shown")
	require.Contains(t, buf.String(), "shown")
}
