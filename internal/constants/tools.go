// Package constants provides centralized constant values used throughout seqgate.
// This file covers the external tools doctor probes for.
package constants

import "time"

// ToolDetectionTimeout bounds the whole parallel probe pass. Doctor should
// answer quickly even when a binary hangs on --version.
const ToolDetectionTimeout = 2 * time.Second

// Binaries probed by doctor.
const (
	// ToolSamtools collects alignment statistics from BAM files.
	ToolSamtools = "samtools"

	// ToolGzip is optional. seqgate decompresses in-process, but operators
	// like to see whether the system binary is around.
	ToolGzip = "gzip"
)

// VersionFlagStandard is the GNU-style version flag both probes use.
const VersionFlagStandard = "--version"
