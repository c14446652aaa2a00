// Package samtools provides the alignment-statistics capability used by the
// BAM validator.
//
// The capability is an interface with two implementations: a subprocess-backed
// provider that shells out to samtools flagstat, and a null provider reporting
// unavailability. Callers treat a missing tool and a parse failure the same
// way, so BAM verdicts degrade to WARN instead of failing when statistics
// cannot be collected.
package samtools

import (
	"context"
	"os/exec"
	"time"

	"github.com/omicsworks/seqgate/internal/constants"
	seqgateerrors "github.com/omicsworks/seqgate/internal/errors"
)

// Stats holds the alignment statistics collected for one BAM file.
type Stats struct {
	// TotalReads is the total read count reported by the tool.
	TotalReads int64

	// IsPairedEnd indicates whether any reads are paired in sequencing.
	IsPairedEnd bool
}

// StatsProvider supplies alignment statistics for a BAM file.
//
// Implementations return an error wrapping errors.ErrStatsUnavailable both
// when the tool is missing and when its output cannot be parsed; callers do
// not distinguish the two failure modes.
type StatsProvider interface {
	// Stats collects statistics for the BAM file at path.
	Stats(ctx context.Context, path string) (Stats, error)
}

// CommandExecutor abstracts command execution for testability.
type CommandExecutor interface {
	// LookPath searches for an executable named file in the PATH.
	LookPath(file string) (string, error)

	// Run executes a command and returns its combined output.
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// DefaultCommandExecutor implements CommandExecutor using os/exec.
type DefaultCommandExecutor struct{}

// LookPath searches for an executable in the PATH.
func (e *DefaultCommandExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// Run executes a command and returns its output.
func (e *DefaultCommandExecutor) Run(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

// UnavailableProvider always reports that statistics are unavailable.
// It is selected when samtools is not on the PATH, keeping the BAM
// validator's degraded path exercised through the same interface.
type UnavailableProvider struct{}

// Stats always returns ErrStatsUnavailable.
func (p *UnavailableProvider) Stats(_ context.Context, _ string) (Stats, error) {
	return Stats{}, seqgateerrors.Wrap(seqgateerrors.ErrStatsUnavailable, "samtools not installed")
}

// NewProvider returns the best available provider: flagstat-backed when
// samtools is on the PATH, the unavailable provider otherwise.
func NewProvider(timeout time.Duration) StatsProvider {
	return NewProviderWithExecutor(&DefaultCommandExecutor{}, timeout)
}

// NewProviderWithExecutor is NewProvider with an injected executor for tests.
func NewProviderWithExecutor(executor CommandExecutor, timeout time.Duration) StatsProvider {
	if _, err := executor.LookPath(constants.ToolSamtools); err != nil {
		return &UnavailableProvider{}
	}
	return NewFlagstatProviderWithExecutor(executor, timeout)
}

// Interface compliance checks.
var (
	_ StatsProvider   = (*UnavailableProvider)(nil)
	_ CommandExecutor = (*DefaultCommandExecutor)(nil)
)
