package samtools

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/omicsworks/seqgate/internal/constants"
	seqgateerrors "github.com/omicsworks/seqgate/internal/errors"
)

// FlagstatProvider collects BAM statistics by running samtools flagstat.
// One bounded invocation per file, no retry: a timeout or non-zero exit is
// reported as statistics-unavailable and the caller degrades gracefully.
type FlagstatProvider struct {
	executor CommandExecutor
	timeout  time.Duration
}

// NewFlagstatProvider creates a provider with the default executor.
func NewFlagstatProvider(timeout time.Duration) *FlagstatProvider {
	return NewFlagstatProviderWithExecutor(&DefaultCommandExecutor{}, timeout)
}

// NewFlagstatProviderWithExecutor creates a provider with a custom executor.
func NewFlagstatProviderWithExecutor(executor CommandExecutor, timeout time.Duration) *FlagstatProvider {
	if timeout <= 0 {
		timeout = constants.DefaultSamtoolsTimeout
	}
	return &FlagstatProvider{
		executor: executor,
		timeout:  timeout,
	}
}

// Stats runs samtools flagstat against the BAM file and parses its output.
func (p *FlagstatProvider) Stats(ctx context.Context, path string) (Stats, error) {
	// Check for cancellation at entry
	select {
	case <-ctx.Done():
		return Stats{}, ctx.Err()
	default:
	}

	runCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	output, err := p.executor.Run(runCtx, constants.ToolSamtools, "flagstat", path)
	if err != nil {
		return Stats{}, seqgateerrors.Wrapf(seqgateerrors.ErrStatsUnavailable, "samtools flagstat failed: %v", err)
	}

	return parseFlagstat(output)
}

// parseFlagstat extracts the totals from flagstat output. The first line is
// "<N> + <M> in total (QC-passed reads + QC-failed reads)"; the paired flag
// comes from the "paired in sequencing" line when present.
func parseFlagstat(output string) (Stats, error) {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) == "" {
		return Stats{}, seqgateerrors.Wrap(seqgateerrors.ErrStatsUnavailable, "empty flagstat output")
	}

	total, ok := leadingInt(lines[0])
	if !ok {
		return Stats{}, seqgateerrors.Wrapf(seqgateerrors.ErrStatsUnavailable,
			"cannot parse flagstat total from %q", strings.TrimSpace(lines[0]))
	}

	stats := Stats{TotalReads: total}
	for _, line := range lines[1:] {
		if strings.Contains(line, "paired in sequencing") {
			if paired, ok := leadingInt(line); ok {
				stats.IsPairedEnd = paired > 0
			}
			break
		}
	}
	return stats, nil
}

// leadingInt parses the first whitespace-separated field of a line as an
// integer.
func leadingInt(line string) (int64, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return 0, false
	}
	n, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Interface compliance check.
var _ StatsProvider = (*FlagstatProvider)(nil)
