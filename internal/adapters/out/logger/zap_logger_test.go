package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suchimauz/staff-roster-scheduler/internal/core/ports/out"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLogger_ModuleAndFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	root := New(zap.New(core))

	log := root.WithModule("ShiftLifecycleService").WithFields(out.LogFields{"snapshot": "v1"})
	log.Info("shifts.create.completed", out.LogFields{"shiftId": "s1"})

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "shifts.create.completed", entry.Message)
	assert.Equal(t, zapcore.InfoLevel, entry.Level)

	fields := entry.ContextMap()
	assert.Equal(t, "ShiftLifecycleService", fields["module"])
	assert.Equal(t, "v1", fields["snapshot"])
	assert.Equal(t, "s1", fields["shiftId"])
}

func TestZapLogger_WithFieldsDoesNotLeak(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	root := New(zap.New(core))

	_ = root.WithFields(out.LogFields{"leak": true})
	root.Warn("board.cache.miss", nil)

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.NotContains(t, fields, "leak")
	assert.Equal(t, "unknown", fields["module"])
}

func TestZapLogger_LevelFilter(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	log := New(zap.New(core))

	log.Debug("debug.event", nil)
	log.Info("info.event", nil)
	log.Error("error.event", out.LogFields{"error": "boom"})

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "error.event", logs.All()[0].Message)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, out.LogLevelDebug, out.ParseLogLevel("debug"))
	assert.Equal(t, out.LogLevelWarn, out.ParseLogLevel(" WARN "))
	assert.Equal(t, out.LogLevelInfo, out.ParseLogLevel("verbose"))
}
