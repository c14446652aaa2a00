package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/omicsworks/seqgate/internal/clock"
	"github.com/omicsworks/seqgate/internal/domain"
	seqgateerrors "github.com/omicsworks/seqgate/internal/errors"
)

// Directory and file permission constants.
const (
	dirPerm  = 0o750 // Secure directory permissions
	filePerm = 0o600 // Secure file permissions
)

// Store defines the persistence boundary for the ledger.
type Store interface {
	// Load reconstructs the ledger from the durable report. A missing
	// report is not an error — the ledger starts empty. A corrupt report
	// is surfaced as ErrLedgerCorrupted.
	Load(ctx context.Context) (*Ledger, error)

	// Persist writes the full ledger back to the durable report atomically.
	Persist(ctx context.Context, led *Ledger) error

	// Reset removes the durable report. Removing an absent report is a no-op.
	Reset(ctx context.Context) error

	// Path returns the durable report path.
	Path() string
}

// reportDocument is the on-disk JSON shape of the durable report.
// Timestamp is the instant of the last persist; TotalFiles is the ledger
// size; Results carries every record in insertion order.
type reportDocument struct {
	Timestamp  time.Time       `json:"timestamp"`
	TotalFiles int             `json:"total_files"`
	Results    []domain.Record `json:"results"`
}

// FileStore implements Store on a local JSON file.
type FileStore struct {
	path  string
	clock clock.Clock
}

// NewFileStore creates a FileStore for the report at path.
func NewFileStore(path string) *FileStore {
	return NewFileStoreWithClock(path, clock.RealClock{})
}

// NewFileStoreWithClock creates a FileStore with an injected clock so tests
// can pin the persist timestamp.
func NewFileStoreWithClock(path string, clk clock.Clock) *FileStore {
	return &FileStore{
		path:  path,
		clock: clk,
	}
}

// Load reconstructs the ledger from the report file.
func (s *FileStore) Load(ctx context.Context) (*Ledger, error) {
	// Check for cancellation at entry
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	data, err := os.ReadFile(s.path) //#nosec G304 -- path is resolved from configuration
	if err != nil {
		if os.IsNotExist(err) {
			return New(), nil
		}
		return nil, fmt.Errorf("failed to read report '%s': %w", s.path, err)
	}

	var doc reportDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse report '%s': %w: %v",
			s.path, seqgateerrors.ErrLedgerCorrupted, err)
	}

	led := New()
	for _, record := range doc.Results {
		// Duplicate IDs inside the file keep the first occurrence, the
		// same policy Merge applies at runtime.
		led.Merge(record)
	}
	return led, nil
}

// Persist serializes the full ledger to the report file atomically: write to
// a temporary file in the same directory, sync, then rename over the prior
// snapshot, so a crash mid-write cannot corrupt the only durable copy.
func (s *FileStore) Persist(ctx context.Context, led *Ledger) error {
	// Check for cancellation at entry
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if led == nil {
		return fmt.Errorf("failed to persist report: ledger %w", seqgateerrors.ErrEmptyValue)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), dirPerm); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	doc := reportDocument{
		Timestamp:  s.clock.Now().UTC(),
		TotalFiles: led.Len(),
		Results:    led.Records(),
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	if err := atomicWrite(s.path, data); err != nil {
		return fmt.Errorf("failed to persist report '%s': %w", s.path, err)
	}
	return nil
}

// Reset removes the report file.
func (s *FileStore) Reset(ctx context.Context) error {
	// Check for cancellation at entry
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove report '%s': %w", s.path, err)
	}
	return nil
}

// Path returns the report file path.
func (s *FileStore) Path() string {
	return s.path
}

// atomicWrite writes data to a file atomically using write-then-rename.
// Uses filePerm (0o600) for secure file permissions.
func atomicWrite(path string, data []byte) error {
	tmpPath := path + ".tmp"
	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePerm) //#nosec G304 -- path is constructed internally
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write data: %w", err)
	}

	// Sync to disk (ensure data is persisted before rename)
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to sync file: %w", err)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename file: %w", err)
	}

	return nil
}

// Interface compliance check.
var _ Store = (*FileStore)(nil)
