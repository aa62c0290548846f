package logs

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"crawl/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseLogLevel(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := parseLogLevel("verbose")
	assert.Error(t, err)
}

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithWriter(&buf, config.Log{Level: "warn"})
	require.NoError(t, err)

	logger.Info("dropped")
	logger.Warn("kept", slog.Int("stops", 4))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.EqualValues(t, 4, entry["stops"])
}

func TestNew_AddsServiceName(t *testing.T) {
	cfg := &config.Config{}
	cfg.Env.ServiceName = "crawl"

	logger, err := New(Params{Config: cfg})
	require.NoError(t, err)
	assert.NotNil(t, logger)
}
