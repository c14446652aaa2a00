// Package cli provides the command-line interface for seqgate.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/omicsworks/seqgate/internal/config"
	"github.com/omicsworks/seqgate/internal/constants"
)

// logFileWriter keeps the rotating file sink reachable so CloseLogFile can
// flush it at shutdown.
var logFileWriter io.WriteCloser //nolint:gochecknoglobals // closed at shutdown

// zerologOnce guards the one-time zerolog field-name configuration.
var zerologOnce sync.Once //nolint:gochecknoglobals // one-time setup

// globalLogMu serializes replacement of the zerolog global logger.
var globalLogMu sync.Mutex //nolint:gochecknoglobals // guards log.Logger

// configureZerologGlobals renames zerolog's timestamp and message fields to
// "ts" and "event". Short names keep the rotating file log compact. Safe to
// call any number of times.
func configureZerologGlobals() {
	zerologOnce.Do(func() {
		zerolog.TimestampFieldName = "ts"
		zerolog.MessageFieldName = "event"
	})
}

// loggerSetup carries the pieces InitLogger assembles a logger from.
type loggerSetup struct {
	level      zerolog.Level
	fileWriter io.WriteCloser
	console    io.Writer
}

// prepareLoggerSetup resolves the level, console writer, and file writer.
// A file-writer error is returned but non-fatal: the setup is still usable
// for console-only logging.
func prepareLoggerSetup(verbose, quiet bool) (*loggerSetup, error) {
	configureZerologGlobals()

	setup := &loggerSetup{
		level:   selectLevel(verbose, quiet),
		console: selectOutput(),
	}

	fileWriter, err := createLogFileWriter()
	if err == nil {
		setup.fileWriter = fileWriter
	}
	return setup, err
}

// buildLogger assembles the timestamped logger from a setup and writer.
func buildLogger(setup *loggerSetup, writer io.Writer) zerolog.Logger {
	return zerolog.New(writer).Level(setup.level).With().Timestamp().Logger()
}

// InitLogger builds the logger every command shares.
//
// The level follows the verbosity flags: --verbose means debug, --quiet
// means warn, and the default is info. Console output goes to stderr, as
// pretty console lines on a TTY without NO_COLOR and as raw JSON
// otherwise.
//
// Everything is also mirrored to a rotating file, by default
// ~/.seqgate/logs/seqgate.log (override via logging.file or SEQGATE_HOME).
// When that file cannot be created the logger degrades to console-only
// rather than failing the command.
func InitLogger(verbose, quiet bool) zerolog.Logger {
	setup, err := prepareLoggerSetup(verbose, quiet)

	writer := setup.console
	if err == nil && setup.fileWriter != nil {
		logFileWriter = setup.fileWriter
		writer = zerolog.MultiLevelWriter(setup.console, setup.fileWriter)
	}

	logger := buildLogger(setup, writer)
	setGlobalLogger(logger)
	return logger
}

// setGlobalLogger points the zerolog/log package global at the CLI logger
// so stray log.Info() calls format identically. Safe for concurrent use.
func setGlobalLogger(cliLogger zerolog.Logger) {
	globalLogMu.Lock()
	defer globalLogMu.Unlock()
	log.Logger = cliLogger
}

// InitLoggerWithWriter builds a logger against a caller-supplied writer.
// Tests use it to capture output without touching the filesystem.
func InitLoggerWithWriter(verbose, quiet bool, w io.Writer) zerolog.Logger {
	configureZerologGlobals()

	logger := zerolog.New(w).Level(selectLevel(verbose, quiet)).With().Timestamp().Logger()
	setGlobalLogger(logger)

	return logger
}

// CloseLogFile closes the rotating file sink if one was opened. main calls
// it after the command finishes.
func CloseLogFile() {
	if logFileWriter != nil {
		_ = logFileWriter.Close()
		logFileWriter = nil
	}
}

// selectLevel maps the verbosity flags to a zerolog level. Verbose wins
// because cobra already rejects the flags being combined.
func selectLevel(verbose, quiet bool) zerolog.Level {
	switch {
	case verbose:
		return zerolog.DebugLevel
	case quiet:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}

// selectOutput returns the console sink: raw stderr for pipes and NO_COLOR
// environments, a pretty console writer for interactive terminals.
func selectOutput() io.Writer {
	if !term.IsTerminal(int(os.Stderr.Fd())) || os.Getenv("NO_COLOR") != "" {
		return os.Stderr
	}
	return zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
	}
}

// createLogFileWriter opens the rotating file sink at the configured log
// path, creating the directory when needed.
func createLogFileWriter() (io.WriteCloser, error) {
	logPath, err := config.LogFilePath()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	return &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    constants.LogMaxSizeMB,
		MaxBackups: constants.LogMaxBackups,
		MaxAge:     constants.LogMaxAgeDays,
		Compress:   constants.LogCompress,
	}, nil
}

// LogFilePath reports where the rotating log lives, for display to users.
func LogFilePath() (string, error) {
	return config.LogFilePath()
}
