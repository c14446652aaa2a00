// Package domain provides shared domain types for the seqgate validation pipeline.
// These types are used across all internal packages to ensure consistent data structures.
//
// This package follows strict import rules:
//   - CAN import: internal/constants, internal/errors, standard library
//   - MUST NOT import: any other internal packages
//
// All JSON field names use snake_case to match the durable report contract.
package domain

import (
	"time"
)

// Metrics holds format-specific measurements collected during validation.
// Fields are pointers so that "not measured" is distinguishable from zero:
// a BAM file validated without samtools has no read count at all, which is
// different from a count of zero.
type Metrics struct {
	// TotalReads is the number of reads in a FASTQ or BAM file.
	TotalReads *int64 `json:"total_reads,omitempty"`

	// SequenceLength is the observed read length in a FASTQ file,
	// taken from the first record.
	SequenceLength *int `json:"sequence_length,omitempty"`

	// IsPairedEnd indicates whether the file appears to be one half of a
	// read pair. Derived from filename markers for FASTQ and from the
	// stats tool for BAM. Advisory metadata, never a failure condition.
	IsPairedEnd *bool `json:"is_paired_end,omitempty"`

	// GeneCount is the number of data rows in a count matrix.
	GeneCount *int `json:"gene_count,omitempty"`

	// SampleCount is the number of sample columns in a count matrix.
	SampleCount *int `json:"sample_count,omitempty"`

	// ProbeCount is the number of data rows in a microarray intensity table.
	ProbeCount *int `json:"probe_count,omitempty"`

	// IntensityColumns is the number of intensity/signal columns in a
	// microarray intensity table.
	IntensityColumns *int `json:"intensity_columns,omitempty"`
}

// Record is the immutable snapshot of one validated file. Records are
// created once by the record builder and never mutated afterwards; the
// ledger retains the first record seen for each dataset ID and discards
// later arrivals.
//
// Example JSON representation:
//
//	{
//	    "dataset_id": "liver_rep2_R1",
//	    "sample_name": "liver_rep2_R1",
//	    "input_type": "FASTQ",
//	    "file_path": "/data/liver_rep2_R1.fastq.gz",
//	    "file_size": 73400320,
//	    "file_size_mb": 70.0,
//	    "validation_status": "PASS",
//	    "validation_message": "FASTQ validation successful (1,250,000 reads)",
//	    "total_reads": 1250000,
//	    "sequence_length": 101,
//	    "is_paired_end": true,
//	    "timestamp": "2026-03-14T09:30:00Z"
//	}
type Record struct {
	// DatasetID is the stable identifier deduplicating a logical sample
	// across repeated ingestions. Derived from the file name unless the
	// caller supplies an override.
	DatasetID string `json:"dataset_id"`

	// SampleName is the human-oriented sample label, equal to the base
	// identifier derived from the file name.
	SampleName string `json:"sample_name"`

	// InputType is the detected format.
	InputType InputType `json:"input_type"`

	// FilePath is the path the file was ingested from.
	FilePath string `json:"file_path"`

	// FileSize is the size on disk in bytes.
	FileSize int64 `json:"file_size"`

	// FileSizeMB is FileSize in megabytes, rounded to two decimals.
	// Carried in the report for human consumption.
	FileSizeMB float64 `json:"file_size_mb"`

	// ValidationStatus is the per-file verdict.
	ValidationStatus ValidationStatus `json:"validation_status"`

	// ValidationMessage explains the verdict. Always non-empty and specific
	// to the failing or warning condition.
	ValidationMessage string `json:"validation_message"`

	// Metrics carries the format-specific measurements, flattened into the
	// record's JSON object.
	Metrics

	// Timestamp is the creation instant of this record.
	Timestamp time.Time `json:"timestamp"`
}

// Failed reports whether the record carries a FAIL verdict.
func (r *Record) Failed() bool {
	return r.ValidationStatus == StatusFail
}

// Warned reports whether the record carries a WARN verdict.
func (r *Record) Warned() bool {
	return r.ValidationStatus == StatusWarn
}

// Passed reports whether the record carries a PASS verdict.
func (r *Record) Passed() bool {
	return r.ValidationStatus == StatusPass
}
