// Package cli provides the command-line interface for seqgate.
package cli

import (
	stderrors "errors"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/omicsworks/seqgate/internal/constants"
	"github.com/omicsworks/seqgate/internal/errors"
)

// Exit codes reported to the shell.
const (
	// ExitSuccess means the command completed and no file failed in the
	// current invocation.
	ExitSuccess = 0
	// ExitError covers runtime failures and validation failures among
	// the current invocation's files.
	ExitError = 1
	// ExitInvalidInput covers bad flags, bad arguments, and unusable
	// invocations.
	ExitInvalidInput = 2
)

// Output format values accepted by --output.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// GlobalFlags holds the persistent flags shared by every command.
type GlobalFlags struct {
	// Output selects the rendering: human text or machine JSON.
	Output string
	// Verbose lowers the log threshold to debug.
	Verbose bool
	// Quiet raises the log threshold to warn and trims command output.
	Quiet bool
}

// AddGlobalFlags registers the persistent flags on cmd. Verbose and quiet
// are mutually exclusive; cobra enforces that at parse time.
func AddGlobalFlags(cmd *cobra.Command, flags *GlobalFlags) {
	pf := cmd.PersistentFlags()
	pf.StringVarP(&flags.Output, "output", "o", OutputText, "output format (text|json)")
	pf.BoolVarP(&flags.Verbose, "verbose", "v", false, "enable verbose output")
	pf.BoolVarP(&flags.Quiet, "quiet", "q", false, "suppress non-essential output")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
}

// BindGlobalFlags connects the persistent flags to viper so config files
// and SEQGATE_* environment variables (SEQGATE_OUTPUT, SEQGATE_VERBOSE,
// ...) can set them. Flags are looked up on the root command because
// subcommand PersistentPreRunE hooks call this too.
func BindGlobalFlags(v *viper.Viper, cmd *cobra.Command) error {
	rootFlags := cmd.Root().PersistentFlags()
	for _, name := range []string{"output", "verbose", "quiet"} {
		if err := v.BindPFlag(name, rootFlags.Lookup(name)); err != nil {
			return err
		}
	}

	v.SetEnvPrefix(constants.EnvPrefix)
	v.AutomaticEnv()

	return nil
}

// ValidOutputFormats lists the values --output accepts.
func ValidOutputFormats() []string {
	return []string{OutputText, OutputJSON}
}

// IsValidOutputFormat reports whether format is an accepted --output value.
func IsValidOutputFormat(format string) bool {
	return slices.Contains(ValidOutputFormats(), format)
}

// ExitCodeForError maps an error to the process exit code: nil is success,
// anything recognizably caused by user input exits 2, and everything else
// exits 1.
func ExitCodeForError(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.IsExitCode2Error(err):
		return ExitInvalidInput
	case stderrors.Is(err, errors.ErrInvalidOutputFormat):
		return ExitInvalidInput
	case isInvalidInputError(err.Error()):
		return ExitInvalidInput
	default:
		return ExitError
	}
}

// cobraInputErrors are message fragments cobra produces for flag and
// argument mistakes. Cobra exposes no sentinel errors for these, so
// matching on text is the only handle.
var cobraInputErrors = []string{
	"unknown flag",
	"unknown shorthand flag",
	"flag needs an argument",
	"invalid argument",
	"if any flags in the group",
	"required flag",
	"unknown command",
}

// isInvalidInputError reports whether errMsg looks like one of cobra's own
// parse failures.
func isInvalidInputError(errMsg string) bool {
	for _, fragment := range cobraInputErrors {
		if strings.Contains(errMsg, fragment) {
			return true
		}
	}
	return false
}
