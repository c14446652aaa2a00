// Package config provides configuration management for seqgate with layered precedence.
//
// Configuration sources are loaded in the following order (highest precedence first):
//  1. CLI flags (passed via LoadWithOverrides)
//  2. Environment variables (SEQGATE_* prefix)
//  3. Project config (.seqgate/config.yaml)
//  4. Global config (~/.seqgate/config.yaml)
//  5. Built-in defaults
//
// Each higher level completely overrides the lower level for the same key.
//
// IMPORTANT: This package may import internal/constants and internal/errors,
// but MUST NOT import internal/domain or other internal packages.
package config

import (
	"path/filepath"
	"time"
)

// Config is the root configuration structure for seqgate.
// It contains all configuration sections for the application.
type Config struct {
	// Reports contains settings for report output location and file names.
	Reports ReportsConfig `yaml:"reports" mapstructure:"reports"`

	// Validation contains settings for content validation.
	Validation ValidationConfig `yaml:"validation" mapstructure:"validation"`

	// Samtools contains settings for the external alignment-stats tool.
	Samtools SamtoolsConfig `yaml:"samtools" mapstructure:"samtools"`

	// Watch contains settings for the live status dashboard.
	Watch WatchConfig `yaml:"watch" mapstructure:"watch"`

	// Logging contains settings for the CLI log file.
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
}

// ReportsConfig contains settings for report persistence.
// The JSON report doubles as the durable backing store for the result
// ledger, so its location determines which cumulative history a run
// merges into.
type ReportsConfig struct {
	// Dir is the directory where the JSON and HTML reports are written.
	// Relative paths are resolved against the working directory.
	// Default: "ingest_output"
	Dir string `yaml:"dir" mapstructure:"dir"`

	// JSONName is the file name of the cumulative JSON report inside Dir.
	// Default: "ingest_report.json"
	JSONName string `yaml:"json_name" mapstructure:"json_name"`

	// HTMLName is the file name of the rendered HTML report inside Dir.
	// Default: "ingest_report.html"
	HTMLName string `yaml:"html_name" mapstructure:"html_name"`
}

// JSONPath returns the full path of the cumulative JSON report.
func (c *ReportsConfig) JSONPath() string {
	return filepath.Join(c.Dir, c.JSONName)
}

// HTMLPath returns the full path of the rendered HTML report.
func (c *ReportsConfig) HTMLPath() string {
	return filepath.Join(c.Dir, c.HTMLName)
}

// ValidationConfig contains settings for content validation.
type ValidationConfig struct {
	// ShapeErrorWarnThreshold is the fraction of tabular data rows allowed
	// to have a column count different from the header before the file is
	// failed outright. At or below the threshold the verdict is WARN.
	// Default: 0.05, Valid range: 0.0 to 1.0
	ShapeErrorWarnThreshold float64 `yaml:"shape_error_warn_threshold" mapstructure:"shape_error_warn_threshold"`
}

// SamtoolsConfig contains settings for the samtools collaborator.
// seqgate degrades BAM verification to a warning when samtools is
// unavailable, so these settings never make or break a run.
type SamtoolsConfig struct {
	// Timeout is the maximum duration for one samtools flagstat invocation.
	// There is no retry; a timeout degrades the BAM verdict to WARN.
	// Default: 60s
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// WatchConfig contains settings for the status --watch dashboard.
type WatchConfig struct {
	// Interval is how often the dashboard re-reads the report file.
	// Default: 2s, Valid range: 100ms to 10 minutes
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`
}

// LoggingConfig contains settings for the rotating CLI log file.
type LoggingConfig struct {
	// File overrides the log file path. When empty, logs go to the
	// default location (~/.seqgate/logs/seqgate.log).
	File string `yaml:"file,omitempty" mapstructure:"file"`
}
