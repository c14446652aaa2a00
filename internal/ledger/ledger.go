// Package ledger implements the cumulative result ledger: an append-and-dedup
// collection of validation records persisted as the JSON report between
// invocations.
//
// The ledger is keyed by dataset ID with a first-write-wins policy: merging a
// record whose dataset ID is already present keeps the existing entry and
// discards the new one. Insertion order is preserved for display. The JSON
// report file is the ledger's durable backing store and the single source of
// truth for cumulative counts; the lifecycle is caller-driven
// (Load, Merge per record, Persist) with no module-level state.
//
// The ledger is not designed for concurrent multi-process access: two
// ingestion processes must not share a report path.
package ledger

import (
	"github.com/omicsworks/seqgate/internal/domain"
)

// Ledger is an insertion-ordered collection of validation records with
// uniqueness on dataset ID.
type Ledger struct {
	records []domain.Record
	index   map[string]int
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{
		records: []domain.Record{},
		index:   make(map[string]int),
	}
}

// Merge inserts the record unless its dataset ID is already present.
// Returns true when the record was added, false when it was skipped as a
// duplicate. The existing entry is never modified: first write wins.
func (l *Ledger) Merge(record domain.Record) bool {
	if _, exists := l.index[record.DatasetID]; exists {
		return false
	}
	l.index[record.DatasetID] = len(l.records)
	l.records = append(l.records, record)
	return true
}

// Get returns the record for a dataset ID.
func (l *Ledger) Get(datasetID string) (domain.Record, bool) {
	pos, ok := l.index[datasetID]
	if !ok {
		return domain.Record{}, false
	}
	return l.records[pos], true
}

// Has reports whether a dataset ID is present.
func (l *Ledger) Has(datasetID string) bool {
	_, ok := l.index[datasetID]
	return ok
}

// Records returns the records in insertion order. The slice is a copy; the
// ledger's entries are immutable once merged.
func (l *Ledger) Records() []domain.Record {
	out := make([]domain.Record, len(l.records))
	copy(out, l.records)
	return out
}

// Len returns the number of records.
func (l *Ledger) Len() int {
	return len(l.records)
}
