package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger_Levels(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	tests := []struct {
		verbosity int
		want      zerolog.Level
	}{
		{0, zerolog.WarnLevel},
		{1, zerolog.InfoLevel},
		{2, zerolog.DebugLevel},
		{3, zerolog.TraceLevel},
		{7, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		SetupLogger(tt.verbosity)
		assert.Equal(t, tt.want, zerolog.GlobalLevel(), "verbosity %d", tt.verbosity)
	}
}

func TestSetupLogger_CreatesLogFile(t *testing.T) {
	state := t.TempDir()
	t.Setenv("XDG_STATE_HOME", state)
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	SetupLogger(1)
	log.Info().Msg("hello from test")

	data, err := os.ReadFile(filepath.Join(state, "tuna", "tuna.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from test")
}

func TestGetLogFilePath(t *testing.T) {
	t.Run("xdg_state_home", func(t *testing.T) {
		t.Setenv("XDG_STATE_HOME", "/custom/state")
		assert.Equal(t, filepath.Join("/custom/state", "tuna", "tuna.log"), getLogFilePath())
	})

	t.Run("home_fallback", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("XDG_STATE_HOME", "")
		t.Setenv("HOME", home)
		assert.Equal(t, filepath.Join(home, ".local", "state", "tuna", "tuna.log"), getLogFilePath())
	})
}

func TestGetLogger(t *testing.T) {
	var buf bytes.Buffer
	previous := log.Logger
	defer func() { log.Logger = previous }()
	log.Logger = zerolog.New(&buf).Level(zerolog.DebugLevel)

	logger := GetLogger("dispatcher")
	logger.Info().Msg("test message")

	assert.Contains(t, buf.String(), `"component":"dispatcher"`)
}

func TestLogCommand(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	LogCommand(logger, "pip", []string{"config", "get", "global.index-url"})

	output := buf.String()
	assert.Contains(t, output, "pip")
	assert.Contains(t, output, "global.index-url")
	assert.Contains(t, output, "Executing command")
}

func TestLogOperationStart(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	done := LogOperationStart(logger, "status")
	done()

	output := buf.String()
	assert.Contains(t, output, "Operation started")
	assert.Contains(t, output, "Operation completed")
	assert.Contains(t, output, "duration")
}
