package manifest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	seqgateerrors "github.com/omicsworks/seqgate/internal/errors"
)

// writeManifest writes content to a manifest file in a temp directory.
func writeManifest(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "manifest.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// TestLoad verifies manifest parsing and validation.
func TestLoad(t *testing.T) {
	t.Run("parses entries with optional overrides", func(t *testing.T) {
		path := writeManifest(t, `
inputs:
  - path: /data/liver_rep2_R1.fastq.gz
  - path: /data/counts_batch3.tsv
    dataset_id: batch3_counts
`)

		entries, err := Load(path)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, Entry{Path: "/data/liver_rep2_R1.fastq.gz"}, entries[0])
		assert.Equal(t, Entry{Path: "/data/counts_batch3.tsv", DatasetID: "batch3_counts"}, entries[1])
	})

	t.Run("empty inputs list is valid", func(t *testing.T) {
		entries, err := Load(writeManifest(t, "inputs: []\n"))
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to stat manifest")
	})

	t.Run("unparseable yaml", func(t *testing.T) {
		_, err := Load(writeManifest(t, "inputs: [unclosed"))
		require.Error(t, err)
		assert.ErrorIs(t, err, seqgateerrors.ErrManifestInvalid)
	})

	t.Run("entry without path", func(t *testing.T) {
		path := writeManifest(t, `
inputs:
  - path: /data/ok.fastq
  - dataset_id: no_path_here
`)

		_, err := Load(path)
		require.Error(t, err)
		assert.ErrorIs(t, err, seqgateerrors.ErrManifestInvalid)
		assert.Contains(t, err.Error(), "entry 2 has no path")
	})

	t.Run("oversized manifest rejected", func(t *testing.T) {
		content := "# " + strings.Repeat("x", maxManifestFileSize) + "\ninputs: []\n"
		_, err := Load(writeManifest(t, content))
		require.Error(t, err)
		assert.ErrorIs(t, err, seqgateerrors.ErrManifestInvalid)
		assert.Contains(t, err.Error(), "manifest too large")
	})
}
