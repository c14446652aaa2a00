// Package cli provides the command-line interface for seqgate.
package cli

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/omicsworks/seqgate/internal/config"
	"github.com/omicsworks/seqgate/internal/ctxutil"
	"github.com/omicsworks/seqgate/internal/domain"
	"github.com/omicsworks/seqgate/internal/errors"
	"github.com/omicsworks/seqgate/internal/ledger"
	"github.com/omicsworks/seqgate/internal/report"
	"github.com/omicsworks/seqgate/internal/tui"
)

// statusFlags holds the flags for the status command.
type statusFlags struct {
	reportDir string
	watch     bool
}

// AddStatusCommand adds the status command to the root command.
func AddStatusCommand(root *cobra.Command) {
	flags := &statusFlags{}

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show cumulative validation results",
		Long: `Show the cumulative validation ledger as a table with aggregate counts,
without ingesting anything.

With --watch, a live dashboard polls the report file on an interval
(default 2s) and re-renders on changes. Press 'q' or Ctrl+C to exit.

Examples:
  seqgate status                    # One-shot summary of the ledger
  seqgate status --watch            # Live dashboard for long ingest sessions
  seqgate status -o json            # Machine-readable records and counts`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := runStatus(cmd.Context(), cmd, os.Stdout, flags)
			// If JSON error was already output, silence cobra's error printing
			// but still return error for non-zero exit code
			if stderrors.Is(err, errors.ErrJSONErrorOutput) {
				cmd.SilenceErrors = true
			}
			return err
		},
	}

	cmd.Flags().StringVar(&flags.reportDir, "report-dir", "", `report directory (default "./ingest_output")`)
	cmd.Flags().BoolVar(&flags.watch, "watch", false, "live dashboard that polls the report file")

	root.AddCommand(cmd)
}

// runStatus executes the status command.
func runStatus(ctx context.Context, cmd *cobra.Command, w io.Writer, flags *statusFlags) error {
	// Check for cancellation at entry
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	// Get output format from global flags
	output := cmd.Flag("output").Value.String()
	quiet, _ := cmd.Flags().GetBool("quiet")

	return runStatusWithOutput(ctx, w, flags, output, quiet)
}

// runStatusWithOutput executes the status command with explicit output settings.
func runStatusWithOutput(ctx context.Context, w io.Writer, flags *statusFlags, output string, quiet bool) error {
	// The dashboard owns the terminal; it has no JSON form.
	if flags.watch && output == OutputJSON {
		return errors.NewExitCode2Error(stderrors.New("cannot use --watch with --output json"))
	}

	// Respect NO_COLOR environment variable
	tui.CheckNoColor()

	cfg, err := loadStatusConfig(ctx, flags.reportDir)
	if err != nil {
		return handleStatusError(output, w, err)
	}

	store := ledger.NewFileStore(cfg.Reports.JSONPath())

	if flags.watch {
		return runStatusWatch(ctx, store, cfg, quiet)
	}

	led, err := store.Load(ctx)
	if err != nil {
		return handleStatusError(output, w, fmt.Errorf("failed to load report: %w", err))
	}

	counts := report.Aggregate(led)

	if output == OutputJSON {
		return tui.NewOutput(w, OutputJSON).JSON(statusResult{
			Records: led.Records(),
			Counts:  counts,
			Path:    store.Path(),
		})
	}

	out := tui.NewOutput(w, OutputText)
	if led.Len() == 0 {
		out.Info("No ingest results yet. Run 'seqgate ingest <files>' to validate data files.")
		return nil
	}

	_ = tui.NewResultsTable(led.Records()).Render(w)
	_, _ = fmt.Fprintln(w)
	out.Info(tui.FormatCounts(counts))
	out.Detail("report: " + store.Path())

	return nil
}

// loadStatusConfig loads the layered configuration with the report directory
// flag applied as the highest-precedence override.
func loadStatusConfig(ctx context.Context, reportDir string) (*config.Config, error) {
	overrides := &config.Config{}
	overrides.Reports.Dir = reportDir

	cfg, err := config.LoadWithOverrides(ctx, overrides)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// runStatusWatch starts the live dashboard. It blocks until the user quits
// with 'q'/Ctrl+C or the context is canceled.
func runStatusWatch(ctx context.Context, store *ledger.FileStore, cfg *config.Config, quiet bool) error {
	model := tui.NewWatchModel(ctx, store, tui.WatchConfig{
		Interval: cfg.Watch.Interval,
		Quiet:    quiet,
	})

	if _, err := tea.NewProgram(model, tea.WithContext(ctx)).Run(); err != nil {
		// Outer cancellation (SIGTERM) kills the program; report the
		// cancellation rather than the bubbletea internals.
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("failed to run status dashboard: %w", err)
	}
	return nil
}

// handleStatusError reports a command-aborting error in the requested format.
// JSON mode writes an error payload and joins ErrJSONErrorOutput so the
// caller silences cobra's own printing while keeping the exit code mapping.
func handleStatusError(output string, w io.Writer, err error) error {
	if output == OutputJSON {
		_ = outputStatusErrorJSON(w, err.Error())
		return stderrors.Join(err, errors.ErrJSONErrorOutput)
	}

	if _, action := errors.Actionable(err); action != "" {
		return fmt.Errorf("%w (%s)", err, action)
	}
	return err
}

// statusResult is the JSON payload for the status command.
type statusResult struct {
	Records []domain.Record `json:"records"`
	Counts  report.Counts   `json:"counts"`
	Path    string          `json:"path"`
}

// statusErrorResult is the JSON payload for a failed status command.
type statusErrorResult struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

// outputStatusErrorJSON outputs an error result as JSON.
func outputStatusErrorJSON(w io.Writer, errMsg string) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(statusErrorResult{Status: "error", Error: errMsg})
}
