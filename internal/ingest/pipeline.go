// Package ingest orchestrates the validation pipeline: precondition checks,
// format detection, per-format validation, record building, and ledger merge,
// strictly in input order. Per-file problems become FAIL records rather than
// pipeline errors; only cancellation stops a run early.
package ingest

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/omicsworks/seqgate/internal/clock"
	"github.com/omicsworks/seqgate/internal/ctxutil"
	"github.com/omicsworks/seqgate/internal/detect"
	"github.com/omicsworks/seqgate/internal/domain"
	seqgateerrors "github.com/omicsworks/seqgate/internal/errors"
	"github.com/omicsworks/seqgate/internal/ledger"
	"github.com/omicsworks/seqgate/internal/report"
	"github.com/omicsworks/seqgate/internal/validate"
)

// Input is one file queued for ingestion, optionally carrying a dataset ID
// override from a manifest entry or the --dataset-id flag.
type Input struct {
	Path      string
	DatasetID string
}

// FileResult pairs the record built for one input with its merge disposition
// in the current invocation.
type FileResult struct {
	Record domain.Record
	Added  bool
}

// RunSummary aggregates one invocation: how many inputs were processed, how
// many records were newly added vs skipped as duplicates, and the cumulative
// per-status counts over the full ledger after the merge.
type RunSummary struct {
	RunID     string        `json:"run_id"`
	Processed int           `json:"processed"`
	Added     int           `json:"added"`
	Skipped   int           `json:"skipped"`
	Counts    report.Counts `json:"counts"`
}

// Pipeline runs the ingest stages for an ordered list of inputs.
type Pipeline struct {
	detector  *detect.Detector
	validator *validate.Validator
	clock     clock.Clock
	logger    zerolog.Logger
}

// NewPipeline creates a Pipeline.
func NewPipeline(detector *detect.Detector, validator *validate.Validator, clk clock.Clock, logger zerolog.Logger) *Pipeline {
	return &Pipeline{
		detector:  detector,
		validator: validator,
		clock:     clk,
		logger:    logger,
	}
}

// newRunID generates a short per-invocation identifier for logs and the
// run summary.
func newRunID() string {
	return "run-" + uuid.New().String()[:8]
}

// Run processes inputs strictly in order, merging each record into the
// ledger. Cancellation is honored between files, never mid-record; every
// other per-file problem is captured as a FAIL record so one bad input
// cannot block the rest of the batch.
func (p *Pipeline) Run(ctx context.Context, inputs []Input, led *ledger.Ledger) ([]FileResult, RunSummary, error) {
	summary := RunSummary{RunID: newRunID()}
	logger := p.logger.With().Str("run_id", summary.RunID).Logger()

	results := make([]FileResult, 0, len(inputs))
	for _, input := range inputs {
		if err := ctxutil.Canceled(ctx); err != nil {
			summary.Counts = report.Aggregate(led)
			return results, summary, err
		}

		record := p.processFile(ctx, logger, input)
		added := led.Merge(record)
		if added {
			summary.Added++
		} else {
			summary.Skipped++
			logger.Debug().
				Str("dataset_id", record.DatasetID).
				Msg("duplicate dataset skipped, first record retained")
		}
		summary.Processed++
		results = append(results, FileResult{Record: record, Added: added})
	}

	summary.Counts = report.Aggregate(led)
	return results, summary, nil
}

// processFile runs precondition checks, detection, and validation for one
// input and assembles its record.
func (p *Pipeline) processFile(ctx context.Context, logger zerolog.Logger, input Input) domain.Record {
	start := time.Now()

	info, err := os.Stat(input.Path)
	if err != nil {
		record := BuildRecord(input.Path, input.DatasetID, domain.InputTypeUnknown,
			preconditionOutcome(err), 0, p.clock.Now().UTC())
		logger.Debug().
			Str("file", input.Path).
			Str("status", record.ValidationStatus.String()).
			Msg("precondition check failed")
		return record
	}
	if info.IsDir() {
		return BuildRecord(input.Path, input.DatasetID, domain.InputTypeUnknown,
			validate.Fail(fmt.Sprintf("%v: path is a directory", seqgateerrors.ErrFileUnreadable)),
			0, p.clock.Now().UTC())
	}

	inputType := p.detector.Detect(input.Path)
	outcome := p.validator.Validate(ctx, input.Path, inputType)
	record := BuildRecord(input.Path, input.DatasetID, inputType, outcome, info.Size(), p.clock.Now().UTC())

	logger.Debug().
		Str("file", input.Path).
		Str("dataset_id", record.DatasetID).
		Str("input_type", inputType.String()).
		Str("status", record.ValidationStatus.String()).
		Dur("elapsed", time.Since(start)).
		Msg("validated file")
	return record
}

// preconditionOutcome maps a stat error onto its FAIL outcome. Missing and
// unreadable files are distinct conditions, both surfaced before detection
// ever runs.
func preconditionOutcome(err error) validate.Outcome {
	if os.IsNotExist(err) {
		return validate.Fail(seqgateerrors.ErrFileNotFound.Error())
	}
	return validate.Fail(fmt.Sprintf("%v: %v", seqgateerrors.ErrFileUnreadable, err))
}
