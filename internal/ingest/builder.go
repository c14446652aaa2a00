package ingest

import (
	"math"
	"path/filepath"
	"time"

	"github.com/omicsworks/seqgate/internal/constants"
	"github.com/omicsworks/seqgate/internal/domain"
	"github.com/omicsworks/seqgate/internal/validate"
)

// DeriveDatasetID returns the stable identifier for a file: its base name
// with the first matching known format suffix stripped. Compound suffixes
// are ordered before their tails in constants.KnownSuffixes, so
// "liver_rep2_R1.fastq.gz" derives "liver_rep2_R1" rather than
// "liver_rep2_R1.fastq".
func DeriveDatasetID(path string) string {
	return constants.StripKnownSuffix(filepath.Base(path))
}

// BuildRecord assembles the immutable result record for one validated file.
// overrideID, when non-empty, is used verbatim as the dataset ID; the sample
// name always remains the identifier derived from the file name.
func BuildRecord(path, overrideID string, inputType domain.InputType, outcome validate.Outcome, fileSize int64, timestamp time.Time) domain.Record {
	derived := DeriveDatasetID(path)
	datasetID := derived
	if overrideID != "" {
		datasetID = overrideID
	}

	return domain.Record{
		DatasetID:         datasetID,
		SampleName:        derived,
		InputType:         inputType,
		FilePath:          path,
		FileSize:          fileSize,
		FileSizeMB:        bytesToMB(fileSize),
		ValidationStatus:  outcome.Status,
		ValidationMessage: outcome.Message,
		Metrics:           outcome.Metrics,
		Timestamp:         timestamp,
	}
}

// bytesToMB converts a byte count to megabytes rounded to two decimals.
func bytesToMB(size int64) float64 {
	return math.Round(float64(size)/(1024*1024)*100) / 100
}
