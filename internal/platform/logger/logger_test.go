package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"fatal", slog.LevelError, false},
		{"verbose", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			assert.Equal(t, tt.want, got)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSetup_WritesJSONAtConfiguredLevel(t *testing.T) {
	original := slog.Default()
	defer slog.SetDefault(original)

	buf := &TestLogBuffer{}
	l, err := setup(config.ServerConfig{LogLevel: "warn"}, buf)
	require.NoError(t, err)
	require.NotNil(t, l)

	l.Info("hidden")
	l.Warn("shown", "key", "value")

	entries, err := buf.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "shown", entries[0]["msg"])
	assert.Equal(t, "value", entries[0]["key"])
	assert.Equal(t, "tasks-api", entries[0]["service"])
	assert.Same(t, l, slog.Default())
}

func TestFromContext(t *testing.T) {
	t.Parallel()

	stored, _ := NewTestLogger()
	fallback, _ := NewTestLogger()

	ctx := WithLogger(context.Background(), stored)
	assert.Same(t, stored, FromContext(ctx))
	assert.Same(t, stored, FromContextOrDefault(ctx, fallback))
	assert.Same(t, fallback, FromContextOrDefault(context.Background(), fallback))
	assert.NotNil(t, FromContextOrDefault(context.Background(), nil))
}
