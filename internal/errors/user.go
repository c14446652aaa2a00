package errors

import "errors"

// ErrorInfo holds the user-facing message and suggested action for an error.
type ErrorInfo struct {
	// Message is the plain-language description shown to the user.
	Message string
	// Action suggests a next step, empty when there is none.
	Action string
}

// errorEntry pairs a sentinel with its ErrorInfo.
type errorEntry struct {
	err  error
	info ErrorInfo
}

// errorInfoEntries maps sentinels to their user-facing phrasing in one
// place so UserMessage and Actionable cannot drift apart. A slice rather
// than a map because lookups traverse wrapped chains with errors.Is.
//
//nolint:gochecknoglobals // static lookup table
var errorInfoEntries = []errorEntry{
	{
		err: ErrValidationFailed,
		info: ErrorInfo{
			Message: "One or more files failed validation.",
			Action:  "Review the results table or rerun with --verbose for per-file detail.",
		},
	},
	{
		err: ErrFileNotFound,
		info: ErrorInfo{
			Message: "An input file could not be found.",
			Action:  "Check the path or glob pattern and try again.",
		},
	},
	{
		err: ErrFileUnreadable,
		info: ErrorInfo{
			Message: "An input file exists but could not be read.",
			Action:  "Check file permissions on the input.",
		},
	},
	{
		err: ErrLedgerCorrupted,
		info: ErrorInfo{
			Message: "The cumulative report file is damaged and cannot be loaded.",
			Action:  "Move the report aside, or run 'seqgate ledger reset' to start fresh.",
		},
	},
	{
		err: ErrStatsUnavailable,
		info: ErrorInfo{
			Message: "samtools is not available, so BAM files get reduced verification.",
			Action:  "Install samtools and run 'seqgate doctor' to confirm detection.",
		},
	},
	{
		err: ErrNoInputs,
		info: ErrorInfo{
			Message: "No input files were supplied.",
			Action:  "Pass one or more file paths, or provide --manifest.",
		},
	},
	{
		err: ErrManifestInvalid,
		info: ErrorInfo{
			Message: "The ingest manifest could not be parsed.",
			Action:  "Check the YAML syntax and make sure every entry has a path.",
		},
	},
	{
		err: ErrInvalidOutputFormat,
		info: ErrorInfo{
			Message: "Invalid output format.",
			Action:  "Use --output text or --output json.",
		},
	},
	{
		err: ErrNonInteractiveMode,
		info: ErrorInfo{
			Message: "This operation needs confirmation, which requires a terminal.",
			Action:  "Rerun with --force in scripts or CI.",
		},
	},
}

// lookupErrorInfo resolves err against the table, traversing wrapped
// chains. Unrecognized errors fall back to their own message.
func lookupErrorInfo(err error) ErrorInfo {
	for _, entry := range errorInfoEntries {
		if errors.Is(err, entry.err) {
			return entry.info
		}
	}
	return ErrorInfo{Message: err.Error()}
}

// UserMessage returns plain-language phrasing for known sentinels and the
// error's own message otherwise.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	return lookupErrorInfo(err).Message
}

// Actionable returns the user-facing message plus a suggested next step.
// The action is empty for errors with no clear remedy.
func Actionable(err error) (message, action string) {
	if err == nil {
		return "", ""
	}
	info := lookupErrorInfo(err)
	return info.Message, info.Action
}
