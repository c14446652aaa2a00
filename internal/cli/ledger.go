// Package cli provides the command-line interface for seqgate.
package cli

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/omicsworks/seqgate/internal/ctxutil"
	"github.com/omicsworks/seqgate/internal/errors"
	"github.com/omicsworks/seqgate/internal/ledger"
	"github.com/omicsworks/seqgate/internal/tui"
)

// AddLedgerCommand adds the ledger command group to the root command.
func AddLedgerCommand(root *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Inspect or reset the cumulative result ledger",
		Long: `Maintain the JSON report that backs the cumulative result ledger.

The report is the durable source of truth: 'path' prints its resolved
location, 'reset' deletes it so the next ingest starts from an empty
history.`,
	}

	addLedgerPathCmd(cmd)
	addLedgerResetCmd(cmd)

	root.AddCommand(cmd)
}

// addLedgerPathCmd adds the path subcommand to the ledger command.
func addLedgerPathCmd(parent *cobra.Command) {
	var reportDir string

	cmd := &cobra.Command{
		Use:   "path",
		Short: "Print the resolved report path backing the ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := runLedgerPath(cmd.Context(), cmd, os.Stdout, reportDir)
			// If JSON error was already output, silence cobra's error printing
			// but still return error for non-zero exit code
			if stderrors.Is(err, errors.ErrJSONErrorOutput) {
				cmd.SilenceErrors = true
			}
			return err
		},
	}

	cmd.Flags().StringVar(&reportDir, "report-dir", "", `report directory (default "./ingest_output")`)

	parent.AddCommand(cmd)
}

// runLedgerPath executes the ledger path command.
func runLedgerPath(ctx context.Context, cmd *cobra.Command, w io.Writer, reportDir string) error {
	// Check for cancellation at entry
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	// Get output format from global flags
	output := cmd.Flag("output").Value.String()

	return runLedgerPathWithOutput(ctx, w, reportDir, output)
}

// runLedgerPathWithOutput executes the ledger path command with an explicit output format.
func runLedgerPathWithOutput(ctx context.Context, w io.Writer, reportDir, output string) error {
	cfg, err := loadStatusConfig(ctx, reportDir)
	if err != nil {
		return handleLedgerError(output, w, err)
	}

	if output == OutputJSON {
		return tui.NewOutput(w, OutputJSON).JSON(ledgerPathResult{Path: cfg.Reports.JSONPath()})
	}

	_, _ = fmt.Fprintln(w, cfg.Reports.JSONPath())
	return nil
}

// addLedgerResetCmd adds the reset subcommand to the ledger command.
func addLedgerResetCmd(parent *cobra.Command) {
	var force bool
	var reportDir string

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete the durable report and start a fresh ledger",
		Long: `Delete the JSON report backing the cumulative ledger, so the next ingest
starts from an empty history and every dataset can be validated fresh.

This operation cannot be undone. Use --force to skip confirmation.

Examples:
  seqgate ledger reset            # Confirm and reset
  seqgate ledger reset --force    # Reset without confirmation`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := runLedgerReset(cmd.Context(), cmd, os.Stdout, force, reportDir)
			// If JSON error was already output, silence cobra's error printing
			// but still return error for non-zero exit code
			if stderrors.Is(err, errors.ErrJSONErrorOutput) {
				cmd.SilenceErrors = true
			}
			return err
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")
	cmd.Flags().StringVar(&reportDir, "report-dir", "", `report directory (default "./ingest_output")`)

	parent.AddCommand(cmd)
}

// runLedgerReset executes the ledger reset command.
func runLedgerReset(ctx context.Context, cmd *cobra.Command, w io.Writer, force bool, reportDir string) error {
	// Check for cancellation at entry
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	// Get output format from global flags
	output := cmd.Flag("output").Value.String()

	return runLedgerResetWithOutput(ctx, w, force, reportDir, output)
}

// runLedgerResetWithOutput executes the ledger reset command with an explicit output format.
func runLedgerResetWithOutput(ctx context.Context, w io.Writer, force bool, reportDir, output string) error {
	// Respect NO_COLOR environment variable
	tui.CheckNoColor()

	cfg, err := loadStatusConfig(ctx, reportDir)
	if err != nil {
		return handleLedgerError(output, w, err)
	}

	store := ledger.NewFileStore(cfg.Reports.JSONPath())

	proceed, err := resetConfirmation(store.Path(), force, output, w)
	if err != nil {
		return err
	}
	if !proceed {
		_, _ = fmt.Fprintln(w, "Operation canceled.")
		return nil
	}

	if err := store.Reset(ctx); err != nil {
		return handleLedgerError(output, w, fmt.Errorf("failed to reset ledger: %w", err))
	}

	logger := GetLogger()
	logger.Info().Str("path", store.Path()).Msg("ledger reset")

	if output == OutputJSON {
		return outputResetSuccessJSON(w, store.Path())
	}

	tui.NewOutput(w, output).Success(fmt.Sprintf("Ledger reset (%s)", store.Path()))
	return nil
}

// resetConfirmation resolves whether the reset should proceed. Force skips
// the prompt entirely; otherwise an interactive confirmation is required.
func resetConfirmation(path string, force bool, output string, w io.Writer) (bool, error) {
	if force {
		return true, nil
	}

	if !terminalCheck() {
		if output == OutputJSON {
			_ = outputLedgerErrorJSON(w, "cannot reset ledger: use --force in non-interactive mode")
			return false, stderrors.Join(errors.ErrNonInteractiveMode, errors.ErrJSONErrorOutput)
		}
		return false, fmt.Errorf("cannot reset ledger: %w", errors.ErrNonInteractiveMode)
	}

	confirmed, err := confirmReset(path)
	if err != nil {
		if output == OutputJSON {
			_ = outputLedgerErrorJSON(w, fmt.Sprintf("failed to get confirmation: %v", err))
			return false, stderrors.Join(err, errors.ErrJSONErrorOutput)
		}
		return false, fmt.Errorf("failed to get confirmation: %w", err)
	}

	return confirmed, nil
}

// createResetConfirmForm is the default factory for creating reset confirmation forms.
// This variable can be overridden in tests to inject mock forms.
//
//nolint:gochecknoglobals // Test injection point - standard Go testing pattern
var createResetConfirmForm = defaultCreateResetConfirmForm

// formRunner is an interface that matches huh.Form's Run method.
type formRunner interface {
	Run() error
}

// defaultCreateResetConfirmForm creates the actual Charm Huh form for reset confirmation.
func defaultCreateResetConfirmForm(path string, confirm *bool) formRunner {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Reset the validation ledger?").
				Description(fmt.Sprintf("This deletes %s and cannot be undone.", path)).
				Affirmative("Yes, reset").
				Negative("No, cancel").
				Value(confirm),
		),
	)
}

// confirmReset prompts the user for confirmation before resetting the ledger.
func confirmReset(path string) (bool, error) {
	var confirm bool
	form := createResetConfirmForm(path, &confirm)

	if err := form.Run(); err != nil {
		return false, err
	}

	return confirm, nil
}

// terminalCheck is a variable for the terminal check function, allowing tests to override it.
//
//nolint:gochecknoglobals // Required for test injection of terminal detection
var terminalCheck = isTerminal

// isTerminal returns true if stdin is a terminal.
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// handleLedgerError reports a command-aborting error in the requested format.
// JSON mode writes an error payload and joins ErrJSONErrorOutput so the
// caller silences cobra's own printing while keeping the exit code mapping.
func handleLedgerError(output string, w io.Writer, err error) error {
	if output == OutputJSON {
		_ = outputLedgerErrorJSON(w, err.Error())
		return stderrors.Join(err, errors.ErrJSONErrorOutput)
	}

	if _, action := errors.Actionable(err); action != "" {
		return fmt.Errorf("%w (%s)", err, action)
	}
	return err
}

// ledgerPathResult is the JSON payload for the ledger path command.
type ledgerPathResult struct {
	Path string `json:"path"`
}

// ledgerResetResult is the JSON payload for ledger reset operations.
type ledgerResetResult struct {
	Status string `json:"status"`
	Path   string `json:"path,omitempty"`
	Error  string `json:"error,omitempty"`
}

// outputResetSuccessJSON outputs a success result as JSON.
func outputResetSuccessJSON(w io.Writer, path string) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ledgerResetResult{Status: "reset", Path: path})
}

// outputLedgerErrorJSON outputs an error result as JSON.
// The encoding error is typically ignored with `_ =` by callers: if we cannot
// write JSON there is no useful fallback, and the joined ErrJSONErrorOutput
// already signals cobra to suppress its own error printing.
func outputLedgerErrorJSON(w io.Writer, errMsg string) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ledgerResetResult{Status: "error", Error: errMsg})
}
