package config

import (
	"strings"
	"time"

	"github.com/omicsworks/seqgate/internal/errors"
)

// Watch interval bounds. Anything faster than 100ms burns CPU re-reading
// an unchanged file; anything slower than 10 minutes is not a live view.
const (
	minWatchInterval = 100 * time.Millisecond
	maxWatchInterval = 10 * time.Minute
)

// Validate checks the configuration for invalid or inconsistent values.
// It returns an error describing the first validation failure found.
//
// Validation rules:
//   - Reports dir and file names must not be empty
//   - Report file names must be bare names, not paths
//   - Shape-error threshold must be within [0, 1]
//   - Samtools timeout must be positive
//   - Watch interval must be between 100ms and 10 minutes
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.ErrConfigNil
	}

	// Validate Reports config
	if err := validateReportsConfig(&cfg.Reports); err != nil {
		return err
	}

	// Validate Validation config
	if err := validateValidationConfig(&cfg.Validation); err != nil {
		return err
	}

	// Validate Samtools config
	if err := validateSamtoolsConfig(&cfg.Samtools); err != nil {
		return err
	}

	// Validate Watch config
	if err := validateWatchConfig(&cfg.Watch); err != nil {
		return err
	}

	return nil
}

// validateReportsConfig checks report-specific configuration values.
func validateReportsConfig(cfg *ReportsConfig) error {
	if cfg.Dir == "" {
		return errors.Wrap(errors.ErrConfigInvalidReports,
			"reports.dir must not be empty")
	}

	if cfg.JSONName == "" {
		return errors.Wrap(errors.ErrConfigInvalidReports,
			"reports.json_name must not be empty")
	}

	if cfg.HTMLName == "" {
		return errors.Wrap(errors.ErrConfigInvalidReports,
			"reports.html_name must not be empty")
	}

	// File names join onto reports.dir; path separators would silently
	// relocate the ledger.
	if strings.ContainsRune(cfg.JSONName, '/') || strings.ContainsRune(cfg.JSONName, '\\') {
		return errors.Wrapf(errors.ErrConfigInvalidReports,
			"reports.json_name must be a bare file name, got %q", cfg.JSONName)
	}

	if strings.ContainsRune(cfg.HTMLName, '/') || strings.ContainsRune(cfg.HTMLName, '\\') {
		return errors.Wrapf(errors.ErrConfigInvalidReports,
			"reports.html_name must be a bare file name, got %q", cfg.HTMLName)
	}

	return nil
}

// validateValidationConfig checks validation-specific configuration values.
func validateValidationConfig(cfg *ValidationConfig) error {
	if cfg.ShapeErrorWarnThreshold < 0 || cfg.ShapeErrorWarnThreshold > 1 {
		return errors.Wrapf(errors.ErrConfigInvalidValidation,
			"validation.shape_error_warn_threshold must be between 0 and 1, got %g",
			cfg.ShapeErrorWarnThreshold)
	}

	return nil
}

// validateSamtoolsConfig checks samtools-specific configuration values.
func validateSamtoolsConfig(cfg *SamtoolsConfig) error {
	if cfg.Timeout <= 0 {
		return errors.Wrapf(errors.ErrConfigInvalidSamtools,
			"samtools.timeout must be positive, got %s", cfg.Timeout)
	}

	return nil
}

// validateWatchConfig checks watch-specific configuration values.
func validateWatchConfig(cfg *WatchConfig) error {
	if cfg.Interval < minWatchInterval || cfg.Interval > maxWatchInterval {
		return errors.Wrapf(errors.ErrConfigInvalidWatch,
			"watch.interval must be between %s and %s, got %s",
			minWatchInterval, maxWatchInterval, cfg.Interval)
	}

	return nil
}
