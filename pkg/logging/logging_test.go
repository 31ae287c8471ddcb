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

func TestLevelFor(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zerolog.Level
	}{
		{-1, zerolog.WarnLevel},
		{0, zerolog.WarnLevel},
		{1, zerolog.InfoLevel},
		{2, zerolog.DebugLevel},
		{3, zerolog.TraceLevel},
		{7, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, levelFor(tt.verbosity), "verbosity %d", tt.verbosity)
	}
}

func TestSetupLoggerWritesLogFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "state", "pkgdb.log")
	t.Setenv(EnvLogFile, logPath)
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	var console bytes.Buffer
	SetupLoggerWithOutput(1, &console)

	logger := GetLogger("test")
	logger.Info().Str("path", "bin/foo").Msg("installed")

	assert.Contains(t, console.String(), "installed")
	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"component":"test"`)
	assert.Contains(t, string(data), `"path":"bin/foo"`)
}

func TestSetupLoggerFileDisabled(t *testing.T) {
	t.Setenv(EnvLogFile, "-")
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	assert.Equal(t, "", getLogFilePath())

	var console bytes.Buffer
	SetupLoggerWithOutput(0, &console)
	log.Info().Msg("hidden")
	log.Warn().Msg("shown")

	assert.NotContains(t, console.String(), "hidden")
	assert.Contains(t, console.String(), "shown")
}

func TestLogOperationStart(t *testing.T) {
	var buf bytes.Buffer
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	done := LogOperationStart(logger, "install")
	done()

	out := buf.String()
	assert.Contains(t, out, "Operation started")
	assert.Contains(t, out, "Operation completed")
	assert.Contains(t, out, "duration")
}

func TestLogCommand(t *testing.T) {
	var buf bytes.Buffer
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	log.Logger = zerolog.New(&buf).Level(zerolog.DebugLevel)

	LogCommand("install", []string{"foo#1.0.pkg.tar.gz"})

	assert.Contains(t, buf.String(), "foo#1.0.pkg.tar.gz")
	assert.Contains(t, buf.String(), "Executing command")
}
