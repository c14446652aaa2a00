package config

import (
	"os"
	"path/filepath"

	"github.com/omicsworks/seqgate/internal/constants"
	"github.com/omicsworks/seqgate/internal/errors"
)

// GlobalConfigDir locates the per-user seqgate directory. SEQGATE_HOME
// overrides it outright; otherwise it is .seqgate under the user's home.
func GlobalConfigDir() (string, error) {
	if home := os.Getenv(constants.EnvHome); home != "" {
		return home, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to resolve home directory")
	}
	return filepath.Join(home, constants.SeqgateHome), nil
}

// GlobalConfigPath is the global config file inside GlobalConfigDir,
// usually ~/.seqgate/config.yaml.
func GlobalConfigPath() (string, error) {
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to resolve global config path")
	}
	return filepath.Join(dir, constants.GlobalConfigName), nil
}

// ProjectConfigDir is the per-project config directory, .seqgate relative
// to wherever seqgate runs.
func ProjectConfigDir() string {
	return constants.SeqgateHome
}

// ProjectConfigPath is the project config file, .seqgate/config.yaml
// relative to the working directory.
func ProjectConfigPath() string {
	return filepath.Join(ProjectConfigDir(), constants.GlobalConfigName)
}
