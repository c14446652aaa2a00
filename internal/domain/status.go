// Package domain provides shared domain types for the seqgate validation pipeline.
package domain

import "github.com/omicsworks/seqgate/internal/constants"

// Re-export InputType and ValidationStatus from the constants package.
// This allows consumers to import domain types and status types together,
// providing a unified API for working with seqgate domain objects.
//
// Example usage:
//
//	import "github.com/omicsworks/seqgate/internal/domain"
//
//	record := domain.Record{
//	    InputType:        domain.InputTypeFASTQ,
//	    ValidationStatus: domain.StatusPass,
//	}
type (
	// InputType classifies a file into one of the recognized formats.
	InputType = constants.InputType

	// ValidationStatus represents the verdict of validating a single file.
	ValidationStatus = constants.ValidationStatus
)

// Re-export InputType constants for convenience.
// These mirror the values in internal/constants/status.go.
const (
	// InputTypeFASTQ is line-oriented raw sequencing reads, 4 lines per read.
	InputTypeFASTQ = constants.InputTypeFASTQ

	// InputTypeBAM is the binary aligned-reads container format.
	InputTypeBAM = constants.InputTypeBAM

	// InputTypeCELL is tabular microarray intensity data keyed by probe IDs.
	InputTypeCELL = constants.InputTypeCELL

	// InputTypeMATRIX is a tabular gene-by-sample expression count table.
	InputTypeMATRIX = constants.InputTypeMATRIX

	// InputTypeUnknown is the fallback when no detection rule matches.
	InputTypeUnknown = constants.InputTypeUnknown
)

// Re-export ValidationStatus constants for convenience.
const (
	// StatusPass indicates the file satisfied every structural check.
	StatusPass = constants.StatusPass

	// StatusWarn indicates a noteworthy inconsistency or reduced verification.
	StatusWarn = constants.StatusWarn

	// StatusFail indicates a structural violation or unreadable input.
	StatusFail = constants.StatusFail
)
