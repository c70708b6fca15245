package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_Level(t *testing.T) {
	tests := []struct {
		level    string
		expected zapcore.Level
	}{
		{level: "debug", expected: zapcore.DebugLevel},
		{level: "warn", expected: zapcore.WarnLevel},
		{level: "error", expected: zapcore.ErrorLevel},
		{level: "info", expected: zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			l, err := New(Options{Level: tt.level, Format: "json"})
			require.NoError(t, err)
			assert.True(t, l.Core().Enabled(tt.expected))
			if tt.expected > zapcore.DebugLevel {
				assert.False(t, l.Core().Enabled(tt.expected-1))
			}
		})
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(Options{Level: "bogus", Format: "json"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bogus")

	_, err = NewStructured(Options{Level: "bogus"})
	assert.Error(t, err)
}

func TestZapLogger_Fields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewZapAdapter(zap.New(core))

	l.WithFields(map[string]interface{}{"activity": "Chess Club"}).
		WithError(errors.New("disk full")).
		Warn("save failed", map[string]interface{}{"email": "a@x.com"})

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "save failed", entries[0].Message)
	assert.Equal(t, "Chess Club", fields["activity"])
	assert.Equal(t, "a@x.com", fields["email"])
	assert.Equal(t, "disk full", fields["error"])
}

func TestZapLogger_Named(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewZapAdapter(zap.New(core)).Named("activities")

	l.Info("loaded", nil)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "activities", entries[0].LoggerName)
}

func TestZapLogger_NilErrorAndEmptyFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewZapAdapter(zap.New(core))

	assert.Same(t, l, l.WithError(nil))
	assert.Same(t, l, l.WithFields(nil))

	l.Info("no fields", nil)
	require.Len(t, logs.All(), 1)
	assert.Empty(t, logs.All()[0].Context)
}

func TestToZapFields_SortedAndErrorAware(t *testing.T) {
	fields := toZapFields(map[string]interface{}{
		"status": 200,
		"cause":  errors.New("boom"),
		"email":  "a@x.com",
	})

	require.Len(t, fields, 3)
	assert.Equal(t, "cause", fields[0].Key)
	assert.Equal(t, zapcore.ErrorType, fields[0].Type)
	assert.Equal(t, "email", fields[1].Key)
	assert.Equal(t, "status", fields[2].Key)
}
