// Package cli provides the command-line interface for seqgate.
package cli

import (
	"cmp"
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/omicsworks/seqgate/internal/errors"
)

// BuildInfo carries the version identifiers main stamps in via ldflags.
type BuildInfo struct {
	// Version is the semantic version, e.g. "1.0.0".
	Version string
	// Commit is the git commit hash.
	Commit string
	// Date is the build date.
	Date string
}

// The shared logger is set once in PersistentPreRunE and read by command
// handlers through GetLogger. The mutex keeps parallel tests that execute
// whole commands from racing on it.
var (
	globalLogger   zerolog.Logger //nolint:gochecknoglobals // shared CLI logger
	globalLoggerMu sync.RWMutex   //nolint:gochecknoglobals // guards globalLogger
)

// GetLogger returns the logger initialized by the root command.
//
// Valid only after PersistentPreRunE has run; before that it returns a
// zero-value logger that discards everything. Safe for concurrent use.
func GetLogger() zerolog.Logger {
	globalLoggerMu.RLock()
	defer globalLoggerMu.RUnlock()
	return globalLogger
}

// newRootCmd builds the root command and registers every subcommand.
// Constructing a fresh instance per call keeps tests independent.
func newRootCmd(flags *GlobalFlags, info BuildInfo) *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "seqgate",
		Short: "seqgate - validation gatekeeper for genomic data files",
		Long: `seqgate validates genomic data files (FASTQ, BAM, microarray tables, count
matrices) before they enter downstream analysis, and maintains a cumulative
ledger of validation results.

Features:
  • Format detection by file name conventions
  • Per-format structural validation with PASS/WARN/FAIL outcomes
  • First-write-wins dedup ledger persisted as a JSON report
  • Standalone HTML report for sharing with collaborators
  • Live status dashboard for long ingest sessions`,
		Version: formatVersion(info),
		// Bare "seqgate" shows help. Routing through RunE means the
		// persistent pre-run still validates global flags first.
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := BindGlobalFlags(v, cmd); err != nil {
				return fmt.Errorf("failed to bind flags: %w", err)
			}

			if !IsValidOutputFormat(flags.Output) {
				return fmt.Errorf("%w: %q must be one of %v", errors.ErrInvalidOutputFormat, flags.Output, ValidOutputFormats())
			}

			globalLoggerMu.Lock()
			globalLogger = InitLogger(flags.Verbose, flags.Quiet)
			globalLoggerMu.Unlock()

			return nil
		},
		// main prints its own user-facing error text, so cobra must not
		// dump usage on top of it.
		SilenceUsage: true,
	}

	AddGlobalFlags(cmd, flags)

	AddIngestCommand(cmd)
	AddStatusCommand(cmd)
	AddDoctorCommand(cmd)
	AddLedgerCommand(cmd)
	AddVersionCommand(cmd)
	AddCompletionCommand(cmd)

	return cmd
}

// formatVersion renders the --version string, substituting placeholders
// for anything the build did not stamp.
func formatVersion(info BuildInfo) string {
	return fmt.Sprintf("%s (commit: %s, built: %s)",
		cmp.Or(info.Version, "dev"),
		cmp.Or(info.Commit, "none"),
		cmp.Or(info.Date, "unknown"))
}

// Execute runs the root command with the provided context and build info.
func Execute(ctx context.Context, info BuildInfo) error {
	flags := &GlobalFlags{}
	//nolint:contextcheck // cobra threads the context via cmd.Context()
	cmd := newRootCmd(flags, info)
	return cmd.ExecuteContext(ctx)
}
