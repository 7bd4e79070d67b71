package log_test

import (
	"bytes"
	"strings"
	"testing"

	"bennypowers.dev/csstree/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogLevels(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(nil) // Reset after test

	t.Run("Info level logs Info, Warn, Error but not Debug", func(t *testing.T) {
		buf.Reset()
		log.SetLevel(log.LevelInfo)

		log.Debug("debug message")
		log.Info("info message")
		log.Warn("warn message")
		log.Error("error message")

		output := buf.String()
		assert.NotContains(t, output, "debug message", "Debug should not be logged at Info level")
		assert.Contains(t, output, "info message")
		assert.Contains(t, output, "warn message")
		assert.Contains(t, output, "error message")
	})

	t.Run("Error level only logs Error", func(t *testing.T) {
		buf.Reset()
		log.SetLevel(log.LevelError)

		log.Info("info message")
		log.Warn("warn message")
		log.Error("error message")

		output := buf.String()
		assert.NotContains(t, output, "info message")
		assert.NotContains(t, output, "warn message")
		assert.Contains(t, output, "error message")
	})

	t.Run("Enabled follows the level", func(t *testing.T) {
		log.SetLevel(log.LevelWarn)
		assert.False(t, log.Enabled(log.LevelInfo))
		assert.True(t, log.Enabled(log.LevelError))
	})
}

func TestLogFormat(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	log.SetLevel(log.LevelDebug)
	defer log.SetOutput(nil)
	defer log.SetLevel(log.LevelInfo)

	t.Run("prefix and level label", func(t *testing.T) {
		buf.Reset()
		log.Warn("Skipping %s", "a.css")
		assert.Equal(t, "[CSSTREE] WARN: Skipping a.css\n", buf.String())
	})

	t.Run("percent signs in arguments are not reinterpreted", func(t *testing.T) {
		buf.Reset()
		log.Info("%s", "width: 50%")
		assert.Contains(t, buf.String(), "width: 50%\n")
	})

	t.Run("one line per message", func(t *testing.T) {
		buf.Reset()
		log.Debug("message 1")
		log.Error("message 2")

		lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
		require.Len(t, lines, 2)
		assert.Contains(t, lines[0], "DEBUG: message 1")
		assert.Contains(t, lines[1], "ERROR: message 2")
	})
}

func TestNilOutput(t *testing.T) {
	log.SetOutput(nil)
	log.SetLevel(log.LevelDebug)
	defer log.SetLevel(log.LevelInfo)

	// Must not panic
	log.Error("dropped")
	assert.False(t, log.Enabled(log.LevelError))
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		want log.Level
	}{
		{"debug", log.LevelDebug},
		{"INFO", log.LevelInfo},
		{"warn", log.LevelWarn},
		{"warning", log.LevelWarn},
		{"Error", log.LevelError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := log.ParseLevel(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := log.ParseLevel("verbose")
	assert.Error(t, err)
	assert.Equal(t, "ERROR", log.LevelError.String())
}

func TestGetLevel(t *testing.T) {
	originalLevel := log.GetLevel()
	defer log.SetLevel(originalLevel)

	log.SetLevel(log.LevelDebug)
	assert.Equal(t, log.LevelDebug, log.GetLevel())
}
