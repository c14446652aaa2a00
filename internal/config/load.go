package config

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/omicsworks/seqgate/internal/constants"
	"github.com/omicsworks/seqgate/internal/errors"
)

// newViperInstance returns a viper preloaded with defaults and SEQGATE_*
// environment mapping (dots in keys become underscores).
func newViperInstance() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load assembles the effective configuration. Precedence, highest first:
//
//  1. SEQGATE_* environment variables
//  2. Project config (.seqgate/config.yaml)
//  3. Global config ($SEQGATE_HOME/config.yaml, default ~/.seqgate)
//  4. Built-in defaults
//
// Missing config files are not errors; unreadable or invalid ones are.
// CLI flags sit above all of these and are applied by LoadWithOverrides.
func Load(ctx context.Context) (*Config, error) {
	v := newViperInstance()
	if err := loadConfigFiles(v); err != nil {
		return nil, err
	}

	cfg, err := unmarshalAndValidate(v)
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().
		Str("component", "config").
		Str("reports.dir", cfg.Reports.Dir).
		Float64("validation.shape_error_warn_threshold", cfg.Validation.ShapeErrorWarnThreshold).
		Dur("samtools.timeout", cfg.Samtools.Timeout).
		Dur("watch.interval", cfg.Watch.Interval).
		Msg("configuration loaded")

	return cfg, nil
}

// LoadWithOverrides loads configuration and lays CLI flag values on top.
// Only non-zero override fields apply, so unset flags fall through to the
// file and environment values underneath.
func LoadWithOverrides(ctx context.Context, overrides *Config) (*Config, error) {
	cfg, err := Load(ctx)
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		applyOverrides(cfg, overrides)
		// Flags can push a previously valid config out of range.
		if err := Validate(cfg); err != nil {
			return nil, errors.Wrap(err, "invalid configuration after overrides")
		}
	}

	return cfg, nil
}

// LoadFromPaths loads configuration from explicit file locations, project
// over global. Either path may be empty. Tests use this to stay clear of
// the real home directory.
func LoadFromPaths(_ context.Context, projectConfigPath, globalConfigPath string) (*Config, error) {
	v := newViperInstance()

	if err := mergeConfigFile(v, globalConfigPath, "global"); err != nil {
		return nil, err
	}
	if err := mergeConfigFile(v, projectConfigPath, "project"); err != nil {
		return nil, err
	}

	return unmarshalAndValidate(v)
}

// LogFilePath resolves the CLI log file location. A logging.file value from
// the environment or the config files wins; otherwise the file lives under
// the seqgate home (~/.seqgate/logs/seqgate.log).
func LogFilePath() (string, error) {
	v := newViperInstance()
	// Logger setup runs before any command, and a broken config file must
	// not block startup, so merge errors are ignored here.
	_ = loadConfigFiles(v)

	if file := v.GetString("logging.file"); file != "" {
		return file, nil
	}

	dir, err := GlobalConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, constants.LogsDir, constants.CLILogFileName), nil
}

// loadConfigFiles merges the global then the project config file into v.
// Both files are optional.
func loadConfigFiles(v *viper.Viper) error {
	if path, err := GlobalConfigPath(); err == nil {
		if err := mergeConfigFile(v, path, "global"); err != nil {
			return err
		}
	}
	return mergeConfigFile(v, ProjectConfigPath(), "project")
}

// mergeConfigFile merges one YAML file into v. Missing files are skipped;
// later merges win, which is how project settings beat global ones.
func mergeConfigFile(v *viper.Viper, path, scope string) error {
	if path == "" || !fileExists(path) {
		return nil
	}

	v.SetConfigFile(path)
	if err := v.MergeInConfig(); err != nil && !isConfigNotFoundError(err) {
		return errors.Wrapf(err, "failed to read %s config file", scope)
	}
	return nil
}

// unmarshalAndValidate decodes the merged viper state into a Config and
// runs the range checks.
func unmarshalAndValidate(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg, viperDecoderOption()); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := Validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return &cfg, nil
}

func isConfigNotFoundError(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return stderrors.As(err, &notFound)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// setDefaults seeds v with the same values DefaultConfig carries. Keys
// must match the YAML tag names exactly.
func setDefaults(v *viper.Viper) {
	v.SetDefault("reports.dir", constants.DefaultReportDir)
	v.SetDefault("reports.json_name", constants.JSONReportFileName)
	v.SetDefault("reports.html_name", constants.HTMLReportFileName)

	v.SetDefault("validation.shape_error_warn_threshold", constants.DefaultShapeErrorWarnThreshold)

	v.SetDefault("samtools.timeout", constants.DefaultSamtoolsTimeout.String())
	v.SetDefault("watch.interval", constants.DefaultWatchInterval.String())

	v.SetDefault("logging.file", "")
}

// applyOverrides copies non-zero override fields onto cfg.
//
// A shape-error threshold of exactly 0 cannot arrive through here because
// the float64 zero value reads as "not set". Use a config file or the
// SEQGATE_VALIDATION_SHAPE_ERROR_WARN_THRESHOLD environment variable for a
// zero-tolerance threshold.
func applyOverrides(cfg, overrides *Config) {
	if overrides.Reports.Dir != "" {
		cfg.Reports.Dir = overrides.Reports.Dir
	}
	if overrides.Reports.JSONName != "" {
		cfg.Reports.JSONName = overrides.Reports.JSONName
	}
	if overrides.Reports.HTMLName != "" {
		cfg.Reports.HTMLName = overrides.Reports.HTMLName
	}

	if overrides.Validation.ShapeErrorWarnThreshold != 0 {
		cfg.Validation.ShapeErrorWarnThreshold = overrides.Validation.ShapeErrorWarnThreshold
	}

	if overrides.Samtools.Timeout != 0 {
		cfg.Samtools.Timeout = overrides.Samtools.Timeout
	}

	if overrides.Watch.Interval != 0 {
		cfg.Watch.Interval = overrides.Watch.Interval
	}

	if overrides.Logging.File != "" {
		cfg.Logging.File = overrides.Logging.File
	}
}

// viperDecoderOption teaches viper's mapstructure decoding to read duration
// strings like "90s" into time.Duration fields.
func viperDecoderOption() viper.DecoderConfigOption {
	return viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
		),
	)
}
