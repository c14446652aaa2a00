// Package report reduces the ledger into aggregate counts and renders the
// human-readable report artifacts. The JSON report itself is written by the
// ledger store (it is the ledger's durable backing store); everything here
// is a projection of that state.
package report

import (
	"github.com/omicsworks/seqgate/internal/ledger"
)

// Counts is the per-status tally over the full ledger. AllClear is true iff
// no record carries a FAIL verdict.
type Counts struct {
	Total    int  `json:"total_files"`
	Passed   int  `json:"passed"`
	Warned   int  `json:"warned"`
	Failed   int  `json:"failed"`
	AllClear bool `json:"all_clear"`
}

// Aggregate reduces the ledger into cumulative counts. The counts always
// cover the entire ledger, never just the current invocation's inputs, so
// Passed+Warned+Failed equals the ledger size.
func Aggregate(led *ledger.Ledger) Counts {
	counts := Counts{Total: led.Len()}
	for _, record := range led.Records() {
		switch {
		case record.Passed():
			counts.Passed++
		case record.Warned():
			counts.Warned++
		case record.Failed():
			counts.Failed++
		}
	}
	counts.AllClear = counts.Failed == 0
	return counts
}
