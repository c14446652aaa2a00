package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omicsworks/seqgate/internal/constants"
)

func TestInitLoggerWithWriter_Levels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		verbose bool
		quiet   bool
		want    zerolog.Level
	}{
		{name: "verbose mode", verbose: true, want: zerolog.DebugLevel},
		{name: "quiet mode", quiet: true, want: zerolog.WarnLevel},
		{name: "default mode", want: zerolog.InfoLevel},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := InitLoggerWithWriter(tc.verbose, tc.quiet, &buf)
			assert.Equal(t, tc.want, logger.GetLevel())
		})
	}
}

func TestSelectLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		verbose       bool
		quiet         bool
		expectedLevel zerolog.Level
	}{
		{name: "default returns info", expectedLevel: zerolog.InfoLevel},
		{name: "verbose returns debug", verbose: true, expectedLevel: zerolog.DebugLevel},
		{name: "quiet returns warn", quiet: true, expectedLevel: zerolog.WarnLevel},
		{name: "verbose takes precedence", verbose: true, quiet: true, expectedLevel: zerolog.DebugLevel},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.expectedLevel, selectLevel(tc.verbose, tc.quiet))
		})
	}
}

func TestSelectOutput_NonTTY(t *testing.T) {
	// Test runs detached from a terminal, so the raw stderr path applies.
	output := selectOutput()
	assert.Equal(t, os.Stderr, output)
}

func TestSelectOutput_RespectsNoColor(t *testing.T) {
	// Can't use t.Parallel() with t.Setenv()
	t.Setenv("NO_COLOR", "1")

	assert.Equal(t, os.Stderr, selectOutput())
}

func TestLogEntryStructure_MatchesExpectedFields(t *testing.T) {
	t.Parallel()

	configureZerologGlobals()

	var buf bytes.Buffer
	logger := InitLoggerWithWriter(false, false, &buf)

	logger.Info().
		Str("dataset_id", "liver_R1").
		Str("input_type", "FASTQ").
		Str("status", "PASS").
		Int64("file_size", 2048).
		Msg("file validated")

	output := buf.String()

	// "ts" and "event" replace zerolog's stock field names.
	assert.Contains(t, output, `"ts":`)
	assert.Contains(t, output, `"level":`)
	assert.Contains(t, output, `"event":`)
	assert.Contains(t, output, `"dataset_id":"liver_R1"`)
	assert.Contains(t, output, `"input_type":"FASTQ"`)
	assert.Contains(t, output, `"status":"PASS"`)
	assert.Contains(t, output, `"file_size":2048`)
	assert.Contains(t, output, "file validated")
}

func TestConfigureZerologGlobals_Idempotent(t *testing.T) {
	t.Parallel()

	configureZerologGlobals()
	configureZerologGlobals()
	configureZerologGlobals()

	assert.Equal(t, "ts", zerolog.TimestampFieldName)
	assert.Equal(t, "event", zerolog.MessageFieldName)
}

func TestInitLoggerWithWriter_CustomOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := InitLoggerWithWriter(true, false, &buf)

	logger.Debug().Msg("debug message")

	assert.Contains(t, buf.String(), "debug message")
}

func TestInitLoggerWithWriter_QuietSuppressesInfo(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := InitLoggerWithWriter(false, true, &buf)

	logger.Info().Msg("routine message")

	assert.Empty(t, buf.String())
}

func TestCreateLogFileWriter_WritesUnderSeqgateHome(t *testing.T) {
	// Can't use t.Parallel() with t.Setenv()
	tmpDir := t.TempDir()
	t.Setenv(constants.EnvHome, tmpDir)

	writer, err := createLogFileWriter()
	require.NoError(t, err)
	require.NotNil(t, writer)

	// The logs directory is created on demand.
	logDir := filepath.Join(tmpDir, constants.LogsDir)
	info, err := os.Stat(logDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// Writing brings the file itself into existence.
	_, err = writer.Write([]byte(`{"level":"info","event":"test"}`))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	logPath := filepath.Join(tmpDir, constants.LogsDir, constants.CLILogFileName)
	info, err = os.Stat(logPath)
	require.NoError(t, err)
	assert.False(t, info.IsDir())
	assert.Positive(t, info.Size())
}

func TestCreateLogFileWriter_FailsOnInvalidPath(t *testing.T) {
	// Can't use t.Parallel() with t.Setenv()

	// A regular file where the home directory should be makes MkdirAll fail.
	tmpDir := t.TempDir()
	filePath := filepath.Join(tmpDir, "not_a_directory")
	require.NoError(t, os.WriteFile(filePath, []byte("test"), 0o600))

	t.Setenv(constants.EnvHome, filePath)

	writer, err := createLogFileWriter()
	require.Error(t, err)
	assert.Nil(t, writer)
	assert.Contains(t, err.Error(), "failed to create log directory")
}

func TestLogFilePath(t *testing.T) {
	// Can't use t.Parallel() with t.Setenv()
	tmpDir := t.TempDir()
	t.Setenv(constants.EnvHome, tmpDir)

	path, err := LogFilePath()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(tmpDir, constants.LogsDir, constants.CLILogFileName), path)
}

func TestLogFilePath_EnvironmentOverride(t *testing.T) {
	// Can't use t.Parallel() with t.Setenv()
	tmpDir := t.TempDir()
	t.Setenv(constants.EnvHome, tmpDir)

	custom := filepath.Join(tmpDir, "custom", "audit.log")
	t.Setenv("SEQGATE_LOGGING_FILE", custom)

	path, err := LogFilePath()
	require.NoError(t, err)
	assert.Equal(t, custom, path)
}

func TestInitLogger_WritesToFile(t *testing.T) {
	// Can't use t.Parallel() with t.Setenv()
	tmpDir := t.TempDir()
	t.Setenv(constants.EnvHome, tmpDir)

	logFileWriter = nil

	logger := InitLogger(false, false)
	logger.Info().Str("dataset_id", "kidney_R2").Msg("file validated")

	// Close flushes the rotating sink.
	CloseLogFile()

	logPath := filepath.Join(tmpDir, constants.LogsDir, constants.CLILogFileName)
	data, err := os.ReadFile(logPath) //#nosec G304 -- path under t.TempDir()
	require.NoError(t, err)
	assert.Contains(t, string(data), "dataset_id")
	assert.Contains(t, string(data), "kidney_R2")
	assert.Contains(t, string(data), "file validated")
}

func TestInitLogger_HandlesFileCreationFailure(t *testing.T) {
	// Can't use t.Parallel() with t.Setenv()
	t.Setenv(constants.EnvHome, "/dev/null/invalid")

	logFileWriter = nil

	// Degrades to console-only logging instead of failing the command.
	logger := InitLogger(false, false)
	assert.NotEqual(t, zerolog.Logger{}, logger)
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())

	assert.Nil(t, logFileWriter)
}

func TestCloseLogFile_NoOpWhenNil(_ *testing.T) {
	// Can't use t.Parallel() when touching package-level state.
	logFileWriter = nil

	// Must not panic.
	CloseLogFile()
}

func TestPrepareLoggerSetup(t *testing.T) {
	// Can't use t.Parallel() with t.Setenv()

	t.Run("level, console, and file writer resolved", func(t *testing.T) {
		tmpDir := t.TempDir()
		t.Setenv(constants.EnvHome, tmpDir)

		setup, err := prepareLoggerSetup(true, false)

		require.NoError(t, err)
		assert.Equal(t, zerolog.DebugLevel, setup.level)
		assert.NotNil(t, setup.console)
		assert.NotNil(t, setup.fileWriter)
	})

	t.Run("file writer failure still yields a usable setup", func(t *testing.T) {
		t.Setenv(constants.EnvHome, "/dev/null/invalid")

		setup, err := prepareLoggerSetup(false, false)

		require.Error(t, err)
		require.NotNil(t, setup)
		assert.Equal(t, zerolog.InfoLevel, setup.level)
		assert.NotNil(t, setup.console)
		assert.Nil(t, setup.fileWriter)
	})
}

func TestBuildLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	setup := &loggerSetup{level: zerolog.DebugLevel}

	logger := buildLogger(setup, &buf)

	assert.Equal(t, zerolog.DebugLevel, logger.GetLevel())
	assert.NotEqual(t, zerolog.Logger{}, logger)
}
