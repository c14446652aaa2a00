// Package constants provides centralized constant values used throughout seqgate.
// This package is the single source of truth for all shared constants and MUST NOT
// import any other internal packages.
package constants

import (
	"strings"
	"time"
)

// File names used by seqgate for report persistence.
const (
	// JSONReportFileName is the default name of the cumulative JSON report.
	// The JSON report is the durable backing store for the result ledger.
	JSONReportFileName = "ingest_report.json"

	// HTMLReportFileName is the default name of the rendered HTML report.
	HTMLReportFileName = "ingest_report.html"

	// CLILogFileName is the name of the global CLI log file.
	// This file is located in ~/.seqgate/logs/seqgate.log
	CLILogFileName = "seqgate.log"
)

// Directory names and paths used by seqgate for organizing data.
const (
	// SeqgateHome is the hidden directory name where seqgate stores its
	// global configuration and logs. Created in the user's home directory.
	SeqgateHome = ".seqgate"

	// DefaultReportDir is the default output directory for reports,
	// relative to the working directory.
	DefaultReportDir = "ingest_output"

	// LogsDir is the directory name where log files are stored.
	LogsDir = "logs"
)

// Timeout configurations for external operations.
const (
	// DefaultSamtoolsTimeout is the default maximum duration for one
	// samtools flagstat invocation. BAM statistics collection is a single
	// bounded call with no retry.
	DefaultSamtoolsTimeout = 60 * time.Second

	// DefaultWatchInterval is the default refresh interval for the
	// status --watch dashboard.
	DefaultWatchInterval = 2 * time.Second
)

// Validation thresholds.
const (
	// DefaultShapeErrorWarnThreshold is the fraction of data rows allowed to
	// have a column count different from the header before a tabular file is
	// failed outright. At or below the threshold the result is a warning.
	DefaultShapeErrorWarnThreshold = 0.05

	// QualityASCIIMin is the lowest quality character accepted in FASTQ
	// quality strings (printable ASCII '!').
	QualityASCIIMin = 33

	// QualityASCIIMax is the highest quality character accepted in FASTQ
	// quality strings (printable ASCII '~').
	QualityASCIIMax = 126
)

// Format suffixes recognized by the detector and stripped when deriving
// dataset identifiers. Compound suffixes are listed first so they match
// before their single-extension tails.
//
//nolint:gochecknoglobals // Package-level list shared by detector and record builder
var KnownSuffixes = []string{
	".fastq.gz",
	".fq.gz",
	".fastq",
	".fq",
	".bam",
	".tsv",
	".csv",
	".txt",
}

// StripKnownSuffix removes the first matching format suffix from a file
// name. Matching is case-insensitive; the returned name keeps its original
// casing. Names without a recognized suffix are returned unchanged.
func StripKnownSuffix(name string) string {
	lower := strings.ToLower(name)
	for _, suffix := range KnownSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return name[:len(name)-len(suffix)]
		}
	}
	return name
}

// Paired-end filename markers. A file whose base name ends in one of these
// (after the format suffix is stripped) is advisory-flagged as one half of
// a read pair.
//
//nolint:gochecknoglobals // Package-level list shared by the FASTQ validator
var PairedEndMarkers = []string{"_R1", "_R2", "_1", "_2"}

// Log rotation settings for the global CLI log file.
const (
	// LogMaxSizeMB is the maximum size in megabytes before rotation.
	LogMaxSizeMB = 10

	// LogMaxBackups is the number of rotated files to retain.
	LogMaxBackups = 3

	// LogMaxAgeDays is the maximum age in days of a rotated file.
	LogMaxAgeDays = 28

	// LogCompress controls gzip compression of rotated files.
	LogCompress = true
)
