package logging

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestCrashRecorder_KeepsLastEntries(t *testing.T) {
	recorder := NewCrashRecorder(t.TempDir(), 3)

	for i := 1; i <= 5; i++ {
		recorder.Record(fmt.Sprintf("line %d", i))
	}

	assert.Equal(t, []string{"line 3", "line 4", "line 5"}, recorder.GetRecentLogs())
}

func TestCrashRecorder_PartiallyFilled(t *testing.T) {
	recorder := NewCrashRecorder(t.TempDir(), 0)

	recorder.Record("only line")

	assert.Equal(t, []string{"only line"}, recorder.GetRecentLogs())
}

func TestCrashRecorder_WriteCrashFile(t *testing.T) {
	dir := t.TempDir()
	recorder := NewCrashRecorder(dir, 10)
	recorder.Record("searching cars")
	recorder.Record("exporting cars")

	path, err := recorder.WriteCrashFile("boom")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, dir))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Panic: boom")
	assert.Contains(t, string(content), "searching cars\nexporting cars\n")
}

func TestCrashRecorder_RecoverAndLogPanicRepanics(t *testing.T) {
	dir := t.TempDir()
	recorder := NewCrashRecorder(dir, 10)

	assert.PanicsWithValue(t, "kaboom", func() {
		defer recorder.RecoverAndLogPanic()
		panic("kaboom")
	})

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestNewLogger_TeesIntoRecorder(t *testing.T) {
	recorder := NewCrashRecorder(t.TempDir(), 10)

	logger, err := NewLogger("local", "info", recorder)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("search finished", zap.Int("count", 2))

	logs := recorder.GetRecentLogs()
	require.Len(t, logs, 1)
	assert.Contains(t, logs[0], "search finished")
	assert.Contains(t, logs[0], `"count": 2`)
}

func TestNewLogger_Errors(t *testing.T) {
	_, err := NewLogger("staging", "", nil)
	assert.Error(t, err)

	_, err = NewLogger("prod", "loud", nil)
	assert.Error(t, err)

	logger, err := NewLogger("prod", "warn", nil)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
}

func TestFromContext(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))

	logger := zap.NewExample()
	ctx := ContextWithLogger(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx))
}
