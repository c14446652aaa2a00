// Package manifest parses the YAML ingest manifest: a list of input files
// with optional per-entry dataset ID overrides. Manifest entries are combined
// with positional arguments before the pipeline sees them.
package manifest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	seqgateerrors "github.com/omicsworks/seqgate/internal/errors"
)

// maxManifestFileSize guards against reading an oversized manifest into memory.
const maxManifestFileSize = 1 << 20 // 1 MB

// Entry is one input in the manifest. DatasetID is optional; when set it
// overrides the derived dataset ID for this entry only and takes precedence
// over the global --dataset-id flag.
type Entry struct {
	Path      string `yaml:"path"`
	DatasetID string `yaml:"dataset_id,omitempty"`
}

// Document is the top-level manifest structure.
type Document struct {
	Inputs []Entry `yaml:"inputs"`
}

// Load reads and parses a manifest file. Every entry must carry a path;
// a manifest with no entries is valid and yields an empty slice.
func Load(path string) ([]Entry, error) {
	// Check file size before reading to prevent memory exhaustion
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat manifest: %w", err)
	}
	if info.Size() > maxManifestFileSize {
		return nil, fmt.Errorf("%w: manifest too large (%d > %d bytes)",
			seqgateerrors.ErrManifestInvalid, info.Size(), maxManifestFileSize)
	}

	data, err := os.ReadFile(path) //nolint:gosec // Path is caller-supplied by design
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", seqgateerrors.ErrManifestInvalid, err)
	}

	for i, entry := range doc.Inputs {
		if entry.Path == "" {
			return nil, fmt.Errorf("%w: entry %d has no path", seqgateerrors.ErrManifestInvalid, i+1)
		}
	}

	return doc.Inputs, nil
}
