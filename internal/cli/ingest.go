// Package cli provides the command-line interface for seqgate.
package cli

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/omicsworks/seqgate/internal/clock"
	"github.com/omicsworks/seqgate/internal/config"
	"github.com/omicsworks/seqgate/internal/ctxutil"
	"github.com/omicsworks/seqgate/internal/detect"
	"github.com/omicsworks/seqgate/internal/domain"
	"github.com/omicsworks/seqgate/internal/errors"
	"github.com/omicsworks/seqgate/internal/ingest"
	"github.com/omicsworks/seqgate/internal/ledger"
	"github.com/omicsworks/seqgate/internal/manifest"
	"github.com/omicsworks/seqgate/internal/report"
	"github.com/omicsworks/seqgate/internal/samtools"
	"github.com/omicsworks/seqgate/internal/tui"
	"github.com/omicsworks/seqgate/internal/validate"
)

// ingestFlags holds the flags for the ingest command.
type ingestFlags struct {
	reportDir string
	datasetID string
	jsonName  string
	htmlName  string
	noReport  bool
	manifest  string
}

// AddIngestCommand adds the ingest command to the root command.
func AddIngestCommand(root *cobra.Command) {
	flags := &ingestFlags{}

	cmd := &cobra.Command{
		Use:   "ingest [files...]",
		Short: "Validate genomic data files and merge the outcomes into the ledger",
		Long: `Validate one or more genomic data files and merge the outcomes into the
cumulative result ledger.

Each input is classified by its file name (FASTQ, BAM, microarray table,
count matrix), checked against format-specific structural rules, and recorded
as PASS, WARN, or FAIL. The first result for a dataset wins: re-ingesting the
same dataset is reported as a skipped duplicate and the original record is
kept.

The run exits non-zero when any file processed in this invocation fails
validation, including files skipped as duplicates.

Examples:
  seqgate ingest liver_R1.fastq.gz liver.bam    # Validate two files
  seqgate ingest --manifest batch.yaml           # Validate a manifest batch
  seqgate ingest --no-report reads.fastq         # Validate without reports`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runIngest(cmd.Context(), cmd, os.Stdout, args, flags)
			// If JSON error was already output, silence cobra's error printing
			// but still return error for non-zero exit code
			if stderrors.Is(err, errors.ErrJSONErrorOutput) {
				cmd.SilenceErrors = true
			}
			return err
		},
	}

	cmd.Flags().StringVar(&flags.reportDir, "report-dir", "", `report directory (default "./ingest_output")`)
	cmd.Flags().StringVar(&flags.datasetID, "dataset-id", "", "dataset ID override for inputs without their own")
	cmd.Flags().StringVar(&flags.jsonName, "json", "", `JSON report file name (default "ingest_report.json")`)
	cmd.Flags().StringVar(&flags.htmlName, "html", "", `HTML report file name (default "ingest_report.html")`)
	cmd.Flags().BoolVar(&flags.noReport, "no-report", false, "validate without writing reports")
	cmd.Flags().StringVar(&flags.manifest, "manifest", "", "YAML manifest of additional inputs")

	root.AddCommand(cmd)
}

// runIngest executes the ingest command.
func runIngest(ctx context.Context, cmd *cobra.Command, w io.Writer, args []string, flags *ingestFlags) error {
	// Check for cancellation at entry
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	// Get output format from global flags
	output := cmd.Flag("output").Value.String()
	quiet, _ := cmd.Flags().GetBool("quiet")

	return runIngestWithOutput(ctx, w, args, flags, output, quiet)
}

// runIngestWithOutput executes the ingest command with explicit output settings.
func runIngestWithOutput(ctx context.Context, w io.Writer, args []string, flags *ingestFlags, output string, quiet bool) error {
	logger := GetLogger()

	// Respect NO_COLOR environment variable
	tui.CheckNoColor()

	inputs, err := collectInputs(args, flags)
	if err != nil {
		return handleIngestError(output, w, err)
	}

	cfg, err := loadIngestConfig(ctx, flags)
	if err != nil {
		return handleIngestError(output, w, err)
	}

	store := ledger.NewFileStore(cfg.Reports.JSONPath())
	led, err := store.Load(ctx)
	if err != nil {
		return handleIngestError(output, w, fmt.Errorf("failed to load ledger: %w", err))
	}

	pipeline := ingest.NewPipeline(
		detect.New(),
		validate.New(samtools.NewProvider(cfg.Samtools.Timeout), cfg.Validation.ShapeErrorWarnThreshold),
		clock.RealClock{},
		logger,
	)

	results, summary, err := pipeline.Run(ctx, inputs, led)
	if err != nil {
		// The run was interrupted; nothing is persisted so a re-run starts
		// from the last durable state.
		return handleIngestError(output, w, fmt.Errorf("ingest interrupted: %w", err))
	}

	if !flags.noReport {
		if err := persistReports(ctx, store, led, cfg); err != nil {
			return handleIngestError(output, w, err)
		}
	}

	if output == OutputJSON {
		if err := outputIngestJSON(w, summary, results); err != nil {
			return err
		}
	} else {
		renderIngestText(w, results, summary, cfg, flags.noReport, quiet)
	}

	return failOnRunFailures(results, output)
}

// collectInputs merges positional arguments with manifest entries. A
// per-entry dataset_id takes precedence over the --dataset-id flag, which
// applies to every input without an override of its own.
func collectInputs(args []string, flags *ingestFlags) ([]ingest.Input, error) {
	inputs := make([]ingest.Input, 0, len(args))
	for _, path := range args {
		inputs = append(inputs, ingest.Input{Path: path, DatasetID: flags.datasetID})
	}

	if flags.manifest != "" {
		entries, err := manifest.Load(flags.manifest)
		if err != nil {
			return nil, fmt.Errorf("failed to load manifest: %w", err)
		}
		for _, entry := range entries {
			datasetID := entry.DatasetID
			if datasetID == "" {
				datasetID = flags.datasetID
			}
			inputs = append(inputs, ingest.Input{Path: entry.Path, DatasetID: datasetID})
		}
	}

	if len(inputs) == 0 {
		return nil, errors.NewExitCode2Error(errors.ErrNoInputs)
	}

	return inputs, nil
}

// loadIngestConfig loads the layered configuration with the report location
// flags applied as highest-precedence overrides.
func loadIngestConfig(ctx context.Context, flags *ingestFlags) (*config.Config, error) {
	overrides := &config.Config{}
	overrides.Reports.Dir = flags.reportDir
	overrides.Reports.JSONName = flags.jsonName
	overrides.Reports.HTMLName = flags.htmlName

	cfg, err := config.LoadWithOverrides(ctx, overrides)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// persistReports writes the JSON report (the ledger's durable form) and the
// HTML projection of it.
func persistReports(ctx context.Context, store *ledger.FileStore, led *ledger.Ledger, cfg *config.Config) error {
	if err := store.Persist(ctx, led); err != nil {
		return fmt.Errorf("failed to persist report: %w", err)
	}

	htmlWriter, err := report.NewHTMLWriter()
	if err != nil {
		return fmt.Errorf("failed to prepare HTML report: %w", err)
	}
	if err := htmlWriter.Write(cfg.Reports.HTMLPath(), led); err != nil {
		return fmt.Errorf("failed to write HTML report: %w", err)
	}
	return nil
}

// renderIngestText prints the per-file results table and the run summary.
// Quiet mode prints only the run summary line.
func renderIngestText(w io.Writer, results []ingest.FileResult, summary ingest.RunSummary, cfg *config.Config, noReport, quiet bool) {
	out := tui.NewOutput(w, OutputText)

	if quiet {
		out.Info(tui.FormatRunLine(summary.Processed, summary.Added, summary.Skipped))
		return
	}

	if len(results) > 0 {
		records := make([]domain.Record, 0, len(results))
		for _, res := range results {
			records = append(records, res.Record)
		}
		_ = tui.NewResultsTable(records).Render(w)

		for _, res := range results {
			if !res.Added {
				out.Detail(fmt.Sprintf("%s: duplicate dataset, first result kept", res.Record.DatasetID))
			}
		}
		_, _ = fmt.Fprintln(w)
	}

	out.Info(tui.FormatRunLine(summary.Processed, summary.Added, summary.Skipped))
	out.Info(tui.FormatCounts(summary.Counts))
	if summary.Counts.AllClear {
		out.Success("all files passed validation")
	}
	if !noReport {
		out.Detail("report: " + cfg.Reports.JSONPath())
	}
}

// failOnRunFailures maps FAIL outcomes among the current invocation's
// results to ErrValidationFailed so the process exits non-zero. A failing
// file counts even when its record is a duplicate skip: the ledger keeps
// the first record, but the file still failed validation in this run.
func failOnRunFailures(results []ingest.FileResult, output string) error {
	for _, res := range results {
		if res.Record.Failed() {
			if output == OutputJSON {
				// The verdict is already in the JSON payload; suppress
				// cobra's error line but keep the non-zero exit code.
				return stderrors.Join(errors.ErrValidationFailed, errors.ErrJSONErrorOutput)
			}
			return errors.ErrValidationFailed
		}
	}
	return nil
}

// handleIngestError reports a run-aborting error in the requested format.
// JSON mode writes an error payload and joins ErrJSONErrorOutput so the
// caller silences cobra's own printing while keeping the exit code mapping.
func handleIngestError(output string, w io.Writer, err error) error {
	if output == OutputJSON {
		_ = outputIngestErrorJSON(w, err.Error())
		return stderrors.Join(err, errors.ErrJSONErrorOutput)
	}

	// Text mode lets cobra print the error once; attach the suggested
	// action when one is known.
	if _, action := errors.Actionable(err); action != "" {
		return fmt.Errorf("%w (%s)", err, action)
	}
	return err
}

// ingestResult is the JSON payload for a completed ingest run.
type ingestResult struct {
	ingest.RunSummary
	Results []fileOutcome `json:"results"`
}

// fileOutcome is one per-file entry of an ingestResult.
type fileOutcome struct {
	domain.Record
	Added bool `json:"added"`
}

// outputIngestJSON outputs the run summary and per-file outcomes as JSON.
func outputIngestJSON(w io.Writer, summary ingest.RunSummary, results []ingest.FileResult) error {
	out := ingestResult{
		RunSummary: summary,
		Results:    make([]fileOutcome, 0, len(results)),
	}
	for _, res := range results {
		out.Results = append(out.Results, fileOutcome{Record: res.Record, Added: res.Added})
	}
	return tui.NewOutput(w, OutputJSON).JSON(out)
}

// ingestErrorResult is the JSON payload for a run that aborted before
// producing a summary.
type ingestErrorResult struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

// outputIngestErrorJSON outputs an error result as JSON.
// The encoding error is typically ignored with `_ =` by callers: if we cannot
// write JSON there is no useful fallback, and the joined ErrJSONErrorOutput
// already signals cobra to suppress its own error printing.
func outputIngestErrorJSON(w io.Writer, errMsg string) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ingestErrorResult{Status: "error", Error: errMsg})
}
