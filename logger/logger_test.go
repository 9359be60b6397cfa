package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

// TestNopLoggerBeforeInitialize verifies package-level helpers are safe
// before Initialize is called
func TestNopLoggerBeforeInitialize(t *testing.T) {
	require.NotNil(t, Logger)
	assert.NotPanics(t, func() {
		Info("pre-init message")
		Infow("pre-init structured", "key", "value")
		Errorw("pre-init error", "err", "boom")
	})
}

// TestInitialize covers both output modes
func TestInitialize(t *testing.T) {
	testCases := []struct {
		name       string
		jsonOutput bool
	}{
		{name: "json output", jsonOutput: true},
		{name: "console output", jsonOutput: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := Initialize(tc.jsonOutput)
			require.NoError(t, err)
			assert.Equal(t, tc.jsonOutput, JSONOutput)
			assert.NotNil(t, Logger)
			Cleanup()
		})
	}
}

// TestVerbosityToLevel checks flag-count to zap level mapping
func TestVerbosityToLevel(t *testing.T) {
	testCases := []struct {
		verbosity int
		expected  zapcore.Level
	}{
		{VerbosityUser, zapcore.WarnLevel},
		{VerbosityInfo, zapcore.InfoLevel},
		{VerbosityDebug, zapcore.DebugLevel},
		{VerbosityTrace, zapcore.DebugLevel},
		{7, zapcore.DebugLevel},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, VerbosityToLevel(tc.verbosity), "verbosity %d", tc.verbosity)
	}

	assert.False(t, ShouldLogTrace(VerbosityDebug))
	assert.True(t, ShouldLogTrace(VerbosityTrace))
}

// TestInitializeFromVerbosity checks trace gating follows the flag count
func TestInitializeFromVerbosity(t *testing.T) {
	require.NoError(t, InitializeFromVerbosity(false, VerbosityDebug))
	assert.False(t, TraceEnabled())

	require.NoError(t, InitializeFromVerbosity(false, VerbosityTrace))
	assert.True(t, TraceEnabled())
}
