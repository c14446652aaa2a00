package config

import (
	"github.com/omicsworks/seqgate/internal/constants"
)

// DefaultConfig returns a new Config with sensible default values.
// These defaults are used as the base layer that can be overridden by
// config files, environment variables, and CLI flags.
func DefaultConfig() *Config {
	return &Config{
		Reports: ReportsConfig{
			// Dir: relative to the working directory so each project keeps
			// its own cumulative history by default.
			Dir: constants.DefaultReportDir,

			// JSONName: the durable ledger backing store.
			JSONName: constants.JSONReportFileName,

			// HTMLName: the rendered projection of the same ledger.
			HTMLName: constants.HTMLReportFileName,
		},
		Validation: ValidationConfig{
			// ShapeErrorWarnThreshold: 5% tolerates scattered malformed rows
			// in hand-edited tabular files without passing garbage.
			ShapeErrorWarnThreshold: constants.DefaultShapeErrorWarnThreshold,
		},
		Samtools: SamtoolsConfig{
			// Timeout: flagstat streams the whole BAM, so large files need
			// headroom. One bounded call, no retry.
			Timeout: constants.DefaultSamtoolsTimeout,
		},
		Watch: WatchConfig{
			// Interval: 2 seconds keeps the dashboard responsive without
			// hammering the filesystem.
			Interval: constants.DefaultWatchInterval,
		},
		Logging: LoggingConfig{
			// File: empty means the default ~/.seqgate/logs location.
			File: "",
		},
	}
}
