// Package tui provides terminal output components for seqgate.
package tui

import (
	"fmt"

	"github.com/omicsworks/seqgate/internal/report"
)

// FormatCounts renders cumulative verdict counts as a one-line summary,
// e.g. "5 datasets: 3 passed, 1 warned, 1 failed".
func FormatCounts(counts report.Counts) string {
	word := "datasets"
	if counts.Total == 1 {
		word = "dataset"
	}
	return fmt.Sprintf("%d %s: %d passed, %d warned, %d failed",
		counts.Total, word, counts.Passed, counts.Warned, counts.Failed)
}

// FormatRunLine renders the per-invocation summary line,
// e.g. "Processed 3 files: 2 added, 1 duplicate skipped".
func FormatRunLine(processed, added, skipped int) string {
	fileWord := "files"
	if processed == 1 {
		fileWord = "file"
	}
	line := fmt.Sprintf("Processed %d %s: %d added", processed, fileWord, added)
	if skipped > 0 {
		dupWord := "duplicates"
		if skipped == 1 {
			dupWord = "duplicate"
		}
		line += fmt.Sprintf(", %d %s skipped", skipped, dupWord)
	}
	return line
}
