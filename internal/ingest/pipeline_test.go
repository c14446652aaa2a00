package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omicsworks/seqgate/internal/detect"
	"github.com/omicsworks/seqgate/internal/domain"
	"github.com/omicsworks/seqgate/internal/ledger"
	"github.com/omicsworks/seqgate/internal/samtools"
	"github.com/omicsworks/seqgate/internal/validate"
)

// fixedClock pins Now to a known instant.
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

// newTestPipeline builds a pipeline with no external stats tool and a
// pinned clock.
func newTestPipeline() *Pipeline {
	validator := validate.New(&samtools.UnavailableProvider{}, -1)
	clk := fixedClock{now: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)}
	return NewPipeline(detect.New(), validator, clk, zerolog.Nop())
}

// writeFASTQ writes a minimal valid FASTQ file and returns its path.
func writeFASTQ(t *testing.T, dir, name string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("@r1\nACGTN\n+\nIIIII\n"), 0o600))
	return path
}

// TestPipelineRun verifies the orchestration of detection, validation,
// record building, and ledger merge.
func TestPipelineRun(t *testing.T) {
	t.Run("valid fastq is validated and added", func(t *testing.T) {
		path := writeFASTQ(t, t.TempDir(), "sample_R1.fastq")
		led := ledger.New()

		results, summary, err := newTestPipeline().Run(context.Background(), []Input{{Path: path}}, led)
		require.NoError(t, err)
		require.Len(t, results, 1)

		record := results[0].Record
		assert.True(t, results[0].Added)
		assert.Equal(t, "sample_R1", record.DatasetID)
		assert.Equal(t, domain.InputTypeFASTQ, record.InputType)
		assert.Equal(t, domain.StatusPass, record.ValidationStatus)
		assert.Equal(t, time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC), record.Timestamp)

		assert.Equal(t, 1, summary.Processed)
		assert.Equal(t, 1, summary.Added)
		assert.Equal(t, 0, summary.Skipped)
		assert.Equal(t, 1, summary.Counts.Total)
		assert.Equal(t, 1, summary.Counts.Passed)
		assert.True(t, summary.Counts.AllClear)
		assert.Regexp(t, `^run-[0-9a-f]{8}$`, summary.RunID)
	})

	t.Run("reingesting the same path skips the duplicate", func(t *testing.T) {
		path := writeFASTQ(t, t.TempDir(), "sample_R1.fastq")
		led := ledger.New()
		pipeline := newTestPipeline()

		_, first, err := pipeline.Run(context.Background(), []Input{{Path: path}}, led)
		require.NoError(t, err)
		require.Equal(t, 1, first.Added)

		results, second, err := pipeline.Run(context.Background(), []Input{{Path: path}}, led)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.False(t, results[0].Added)
		assert.Equal(t, 0, second.Added)
		assert.Equal(t, 1, second.Skipped)
		assert.Equal(t, 1, second.Counts.Total, "cumulative total unchanged by duplicate")
	})

	t.Run("missing file becomes a FAIL record", func(t *testing.T) {
		led := ledger.New()
		missing := filepath.Join(t.TempDir(), "absent.fastq")

		results, summary, err := newTestPipeline().Run(context.Background(), []Input{{Path: missing}}, led)
		require.NoError(t, err)
		require.Len(t, results, 1)

		record := results[0].Record
		assert.Equal(t, domain.StatusFail, record.ValidationStatus)
		assert.Equal(t, domain.InputTypeUnknown, record.InputType)
		assert.Contains(t, record.ValidationMessage, "input file not found")
		assert.Equal(t, int64(0), record.FileSize)
		assert.False(t, summary.Counts.AllClear)
	})

	t.Run("directory input becomes a FAIL record", func(t *testing.T) {
		led := ledger.New()
		dir := t.TempDir()

		results, _, err := newTestPipeline().Run(context.Background(), []Input{{Path: dir}}, led)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, domain.StatusFail, results[0].Record.ValidationStatus)
		assert.Contains(t, results[0].Record.ValidationMessage, "path is a directory")
	})

	t.Run("one failing file does not block the rest", func(t *testing.T) {
		dir := t.TempDir()
		valid := writeFASTQ(t, dir, "ok_R1.fastq")
		missing := filepath.Join(dir, "absent.bam")
		led := ledger.New()

		results, summary, err := newTestPipeline().Run(context.Background(),
			[]Input{{Path: missing}, {Path: valid}}, led)
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, domain.StatusFail, results[0].Record.ValidationStatus)
		assert.Equal(t, domain.StatusPass, results[1].Record.ValidationStatus)
		assert.Equal(t, 2, summary.Processed)
		assert.Equal(t, 2, summary.Added)
	})

	t.Run("per-input dataset ID override", func(t *testing.T) {
		path := writeFASTQ(t, t.TempDir(), "sample_R1.fastq")
		led := ledger.New()

		results, _, err := newTestPipeline().Run(context.Background(),
			[]Input{{Path: path, DatasetID: "custom_id"}}, led)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "custom_id", results[0].Record.DatasetID)
		assert.Equal(t, "sample_R1", results[0].Record.SampleName)
		assert.True(t, led.Has("custom_id"))
	})

	t.Run("summary counts cover the full ledger", func(t *testing.T) {
		led := ledger.New()
		require.True(t, led.Merge(domain.Record{
			DatasetID:        "earlier_failure",
			ValidationStatus: domain.StatusFail,
		}))
		path := writeFASTQ(t, t.TempDir(), "fresh_R1.fastq")

		_, summary, err := newTestPipeline().Run(context.Background(), []Input{{Path: path}}, led)
		require.NoError(t, err)
		assert.Equal(t, 2, summary.Counts.Total)
		assert.Equal(t, 1, summary.Counts.Passed)
		assert.Equal(t, 1, summary.Counts.Failed)
		assert.False(t, summary.Counts.AllClear)
		assert.Equal(t, 1, summary.Processed, "processed counts only this invocation")
	})

	t.Run("canceled context stops before processing", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		led := ledger.New()
		path := writeFASTQ(t, t.TempDir(), "sample_R1.fastq")

		results, _, err := newTestPipeline().Run(ctx, []Input{{Path: path}}, led)
		require.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, results)
		assert.Equal(t, 0, led.Len())
	})
}
