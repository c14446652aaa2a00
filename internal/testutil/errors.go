// Package testutil provides testing utilities for seqgate.
//
// This package contains mock errors and test helpers used across test files.
// It should only be imported by test files (*_test.go).
package testutil

import "errors"

// Mock errors for testing purposes.
// These errors are used to simulate various failure scenarios in tests.
var (
	// ErrMockToolNotFound simulates a missing external tool (used in tests).
	ErrMockToolNotFound = errors.New("tool not found")

	// ErrMockExecFailed simulates a subprocess execution failure (used in tests).
	ErrMockExecFailed = errors.New("exec failed")

	// ErrMockStatFailed simulates a file stat failure (used in tests).
	ErrMockStatFailed = errors.New("stat failed")

	// ErrMockStoreUnavailable simulates an unavailable ledger store (used in tests).
	ErrMockStoreUnavailable = errors.New("ledger store unavailable")

	// ErrMockTimeout simulates a timed-out external call (used in tests).
	ErrMockTimeout = errors.New("operation timed out")
)
