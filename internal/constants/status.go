package constants

// InputType classifies a file into one of the formats seqgate understands.
// Values use the uppercase names carried in the JSON report.
type InputType string

// Input type constants define the closed set of recognized formats.
// Validator dispatch switches exhaustively over these values, so adding a
// format is a compile-time-checked extension.
const (
	// InputTypeFASTQ is line-oriented raw sequencing reads, 4 lines per read.
	InputTypeFASTQ InputType = "FASTQ"

	// InputTypeBAM is the binary aligned-reads container format.
	InputTypeBAM InputType = "BAM"

	// InputTypeCELL is tabular microarray intensity data keyed by probe IDs.
	InputTypeCELL InputType = "CELL"

	// InputTypeMATRIX is a tabular gene-by-sample expression count table.
	InputTypeMATRIX InputType = "MATRIX"

	// InputTypeUnknown is the fallback when no detection rule matches.
	// Validation reports it as a failure, never a silent skip.
	InputTypeUnknown InputType = "UNKNOWN"
)

// String returns the string representation of the InputType.
// This implements fmt.Stringer for convenient logging and debugging.
func (t InputType) String() string {
	return string(t)
}

// Valid reports whether the value is one of the recognized input types.
func (t InputType) Valid() bool {
	switch t {
	case InputTypeFASTQ, InputTypeBAM, InputTypeCELL, InputTypeMATRIX, InputTypeUnknown:
		return true
	default:
		return false
	}
}

// ValidationStatus represents the verdict of validating a single file.
// Values use the uppercase names carried in the JSON report.
type ValidationStatus string

// Validation status constants define the three possible verdicts.
const (
	// StatusPass indicates the file satisfied every structural check.
	StatusPass ValidationStatus = "PASS"

	// StatusWarn indicates the file is structurally sound but carries a
	// noteworthy inconsistency or could not be verified in depth.
	StatusWarn ValidationStatus = "WARN"

	// StatusFail indicates a structural violation, an unrecognized format,
	// or an unreadable input.
	StatusFail ValidationStatus = "FAIL"
)

// String returns the string representation of the ValidationStatus.
// This implements fmt.Stringer for convenient logging and debugging.
func (s ValidationStatus) String() string {
	return string(s)
}

// Valid reports whether the value is one of the recognized statuses.
func (s ValidationStatus) Valid() bool {
	switch s {
	case StatusPass, StatusWarn, StatusFail:
		return true
	default:
		return false
	}
}
