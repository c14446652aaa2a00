package constants

// Configuration file names.
const (
	// GlobalConfigName is the name of the seqgate configuration file. The same
	// name is used in the global seqgate home (~/.seqgate/config.yaml) and in
	// a project's .seqgate directory (./.seqgate/config.yaml).
	GlobalConfigName = "config.yaml"
)

// Environment variable names honored by seqgate.
const (
	// EnvHome overrides the seqgate home directory (default ~/.seqgate).
	EnvHome = "SEQGATE_HOME"

	// EnvPrefix is the prefix for configuration environment variables,
	// e.g. SEQGATE_REPORTS_DIR maps to reports.dir.
	EnvPrefix = "SEQGATE"
)
