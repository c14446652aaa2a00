// Package validate implements the per-format structural validators.
//
// Validators are stateless: each reads one file and produces an Outcome.
// They never return Go errors for content problems; every verdict, including
// unreadable inputs, is captured as data so one bad file cannot stop a batch.
// FASTQ is validated in a single streaming pass; the tabular formats are
// buffered, which is a per-validator strategy choice rather than a global
// assumption.
package validate

import (
	"github.com/omicsworks/seqgate/internal/domain"
)

// Outcome is the structured result of validating one file.
// Exactly one status is set and Message is always non-empty and specific
// to the condition that produced it.
type Outcome struct {
	// Status is the verdict: PASS, WARN, or FAIL.
	Status domain.ValidationStatus `json:"status"`

	// Message explains the verdict in human terms.
	Message string `json:"message"`

	// Metrics carries format-specific measurements, populated even for
	// warnings where the file was structurally parseable.
	Metrics domain.Metrics `json:"metrics"`
}

// Pass builds a passing outcome.
func Pass(msg string) Outcome {
	return Outcome{Status: domain.StatusPass, Message: msg}
}

// Warn builds a warning outcome.
func Warn(msg string) Outcome {
	return Outcome{Status: domain.StatusWarn, Message: msg}
}

// Fail builds a failing outcome.
func Fail(msg string) Outcome {
	return Outcome{Status: domain.StatusFail, Message: msg}
}

// WithMetrics returns a copy of the outcome carrying the given metrics.
func (o Outcome) WithMetrics(m domain.Metrics) Outcome {
	o.Metrics = m
	return o
}

// int64Ptr returns a pointer to v for optional metric fields.
func int64Ptr(v int64) *int64 { return &v }

// intPtr returns a pointer to v for optional metric fields.
func intPtr(v int) *int { return &v }

// boolPtr returns a pointer to v for optional metric fields.
func boolPtr(v bool) *bool { return &v }
