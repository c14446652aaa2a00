// Package errors defines the sentinel errors seqgate commands use to
// categorize failures, plus small wrapping helpers. Callers match
// sentinels with errors.Is through any number of Wrap layers.
//
// The package imports only the standard library so every internal package
// can depend on it without cycles.
package errors

import "errors"

// Sentinels, lowercase per Go convention. Command code decides exit codes
// and user-facing phrasing from these; see user.go for the latter.
var (
	// ErrValidationFailed indicates that at least one file processed in the
	// current invocation received a FAIL verdict, whether its record was
	// added or skipped as a duplicate. The ingest command returns it so the
	// process exits non-zero.
	ErrValidationFailed = errors.New("validation failed")

	// ErrFileNotFound indicates an input file does not exist. This is a
	// precondition error surfaced before format detection, distinct from
	// content-validation failures.
	ErrFileNotFound = errors.New("input file not found")

	// ErrFileUnreadable indicates an input file exists but cannot be opened
	// or read. Like ErrFileNotFound this is a precondition error.
	ErrFileUnreadable = errors.New("input file unreadable")

	// ErrUnknownFormat indicates the detector could not classify a file.
	// Validation records it as a FAIL rather than silently skipping the file.
	ErrUnknownFormat = errors.New("unrecognized format")

	// ErrStatsUnavailable indicates the external alignment-stats tool is not
	// installed or its output could not be parsed. Both modes degrade a BAM
	// verdict to WARN, never FAIL.
	ErrStatsUnavailable = errors.New("alignment statistics unavailable")

	// ErrLedgerCorrupted indicates the durable JSON report exists but cannot
	// be parsed. The ledger is the source of truth for cumulative counts, so
	// this aborts the run instead of silently discarding prior results.
	ErrLedgerCorrupted = errors.New("ledger state corrupted")

	// ErrNoInputs indicates an ingest invocation supplied no file paths,
	// either positionally or through a manifest.
	ErrNoInputs = errors.New("no input files")

	// ErrManifestInvalid indicates a manifest file could not be parsed or
	// contains entries without a path.
	ErrManifestInvalid = errors.New("invalid manifest")

	// ErrConfigNil indicates that a nil config was passed to validation.
	ErrConfigNil = errors.New("config is nil")

	// ErrConfigInvalidValidation indicates an invalid validation configuration value.
	ErrConfigInvalidValidation = errors.New("invalid validation configuration")

	// ErrConfigInvalidReports indicates an invalid reports configuration value.
	ErrConfigInvalidReports = errors.New("invalid reports configuration")

	// ErrConfigInvalidSamtools indicates an invalid samtools configuration value.
	ErrConfigInvalidSamtools = errors.New("invalid samtools configuration")

	// ErrConfigInvalidWatch indicates an invalid watch configuration value.
	ErrConfigInvalidWatch = errors.New("invalid watch configuration")

	// ErrInvalidOutputFormat indicates an invalid output format was specified.
	ErrInvalidOutputFormat = errors.New("invalid output format")

	// ErrEmptyValue indicates that a required value was empty.
	ErrEmptyValue = errors.New("value cannot be empty")

	// ErrCommandNotConfigured indicates that a mock command was not configured in tests.
	ErrCommandNotConfigured = errors.New("command not configured")

	// ErrNonInteractiveMode indicates that an operation requiring confirmation
	// was attempted in non-interactive mode without the force flag.
	ErrNonInteractiveMode = errors.New("use --force in non-interactive mode")

	// ErrJSONErrorOutput indicates that an error has already been output as JSON.
	// This ensures a non-zero exit code while preventing duplicate error messages.
	// Commands should silence cobra's error printing when this is returned.
	ErrJSONErrorOutput = errors.New("error output as JSON")
)

// ExitCode2Error marks an error as invalid user input so the process
// exits with code 2 instead of 1.
type ExitCode2Error struct {
	Err error
}

// NewExitCode2Error marks err as invalid user input.
func NewExitCode2Error(err error) *ExitCode2Error {
	return &ExitCode2Error{Err: err}
}

// Error returns the underlying message unchanged; the wrapper only carries
// the exit-code classification.
func (e *ExitCode2Error) Error() string {
	return e.Err.Error()
}

// Unwrap exposes the underlying error to errors.Is and errors.As.
func (e *ExitCode2Error) Unwrap() error {
	return e.Err
}

// IsExitCode2Error reports whether err or anything it wraps is classified
// as invalid user input.
func IsExitCode2Error(err error) bool {
	var e *ExitCode2Error
	return errors.As(err, &e)
}
