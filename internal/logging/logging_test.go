package logging_test

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/logging"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
	}

	for in, want := range tests {
		assert.Equal(t, want, logging.ParseLevel(in), in)
	}
}

func TestNew_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer

	logger := logging.New(&buf, "warn")
	logger.Info("hidden")
	logger.Warn("shown", "key", "expenses")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "key=expenses")
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tally.log")

	logger, closeFn, err := logging.NewFile(path, "info")
	require.NoError(t, err)

	logger.Info("ledger loaded", "count", 2)
	require.NoError(t, closeFn())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "ledger loaded")
}
