package cli

import "testing"

// Helpers for the ledger reset tests, which have to fake both the TTY
// check and the huh confirmation form.

// stubForm satisfies formRunner without rendering anything.
type stubForm struct {
	err error
}

func (s *stubForm) Run() error { return s.err }

// forceTerminal pins the package-level TTY check for the duration of the
// test, so confirmation paths run the same on CI as on a real terminal.
func forceTerminal(t *testing.T, interactive bool) {
	t.Helper()

	original := terminalCheck
	terminalCheck = func() bool { return interactive }
	t.Cleanup(func() { terminalCheck = original })
}

// stubConfirmForm swaps the reset confirmation form for one that answers
// immediately. The returned pointer captures the ledger path the factory
// was handed, for tests that want to assert on it.
func stubConfirmForm(t *testing.T, answer bool, runErr error) *string {
	t.Helper()

	original := createResetConfirmForm
	t.Cleanup(func() { createResetConfirmForm = original })

	captured := new(string)
	createResetConfirmForm = func(path string, confirm *bool) formRunner {
		*captured = path
		*confirm = answer
		return &stubForm{err: runErr}
	}
	return captured
}
