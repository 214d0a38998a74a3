package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/felixgeelhaar/buildlayout/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNopLogger(t *testing.T) {
	logger := NewNopLogger()
	ctx := context.Background()

	logger.Debug(ctx, "debug")
	logger.Info(ctx, "info")
	logger.Warn(ctx, "warn")
	logger.Error(ctx, "error")

	assert.Same(t, logger, logger.With(ports.F("k", "v")))
	assert.Equal(t, ports.LevelInfo, logger.Level())

	logger.SetLevel(ports.LevelDebug)
	assert.Equal(t, ports.LevelDebug, logger.Level())
}

func TestNopLogger_ConcurrentLevel(t *testing.T) {
	logger := NewNopLogger()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			logger.SetLevel(ports.LevelWarn)
		}
	}()
	for i := 0; i < 100; i++ {
		_ = logger.Level()
		logger.Info(context.Background(), "dropped", ports.F("i", i))
	}
	<-done
	assert.Equal(t, ports.LevelWarn, logger.Level())
}

func TestFromContext(t *testing.T) {
	ctx := context.Background()
	_, isNop := FromContext(ctx).(*NopLogger)
	assert.True(t, isNop)

	console := NewConsoleLogger()
	assert.Same(t, console, FromContext(ports.ContextWithLogger(ctx, console)))
}

func TestConsoleLogger_TextOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLogger(WithOutput(&buf), WithLevel(ports.LevelDebug))
	logger.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	logger.Info(context.Background(), "assigned output", ports.F("project", "pluginA"), ports.F("steps", 2))

	assert.Equal(t, "03:04:05 [INFO] assigned output project=pluginA steps=2\n", buf.String())
}

func TestConsoleLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLogger(WithOutput(&buf), WithLevel(ports.LevelWarn), WithTimestamp(false))
	ctx := context.Background()

	logger.Debug(ctx, "debug message")
	logger.Info(ctx, "info message")
	assert.Empty(t, buf.String())

	logger.Warn(ctx, "warn message")
	logger.Error(ctx, "error message")
	assert.Contains(t, buf.String(), "[WARN] warn message")
	assert.Contains(t, buf.String(), "[ERROR] error message")
}

func TestConsoleLogger_WithDoesNotModifyParent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLogger(WithOutput(&buf), WithTimestamp(false), WithLevelLabel(false))
	derived := logger.With(ports.F("run_id", "abc"))
	ctx := context.Background()

	logger.Info(ctx, "parent")
	derived.Info(ctx, "child", ports.F("project", "app"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "parent", lines[0])
	assert.Equal(t, "child run_id=abc project=app", lines[1])
}

func TestConsoleLogger_SetLevelSharedLock(t *testing.T) {
	logger := NewConsoleLogger()
	logger.SetLevel(ports.LevelError)
	assert.Equal(t, ports.LevelError, logger.Level())
}

func TestZapLogger_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZapLogger(&buf, ports.LevelInfo)
	ctx := context.Background()

	logger.Debug(ctx, "hidden")
	logger.With(ports.F("run_id", "r1")).Info(ctx, "pinned toolchain", ports.F("version", "17"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "pinned toolchain", entry["msg"])
	assert.Equal(t, "r1", entry["run_id"])
	assert.Equal(t, "17", entry["version"])
	assert.Contains(t, entry, "ts")
}

func TestZapLogger_Level(t *testing.T) {
	logger := NewZapLogger(&bytes.Buffer{}, ports.LevelWarn)
	assert.Equal(t, ports.LevelWarn, logger.Level())

	derived := logger.With(ports.F("k", "v"))
	logger.SetLevel(ports.LevelDebug)
	assert.Equal(t, ports.LevelDebug, derived.Level())
	assert.NoError(t, logger.Sync())
}
