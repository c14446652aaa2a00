package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omicsworks/seqgate/internal/constants"
)

// TestDefaultConfig tests that defaults match the centralized constants
func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	require.NotNil(t, cfg)

	t.Run("reports defaults", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, constants.DefaultReportDir, cfg.Reports.Dir)
		assert.Equal(t, constants.JSONReportFileName, cfg.Reports.JSONName)
		assert.Equal(t, constants.HTMLReportFileName, cfg.Reports.HTMLName)
	})

	t.Run("validation defaults", func(t *testing.T) {
		t.Parallel()

		assert.InDelta(t, constants.DefaultShapeErrorWarnThreshold,
			cfg.Validation.ShapeErrorWarnThreshold, 0.0001)
	})

	t.Run("samtools defaults", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, constants.DefaultSamtoolsTimeout, cfg.Samtools.Timeout)
	})

	t.Run("watch defaults", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, constants.DefaultWatchInterval, cfg.Watch.Interval)
	})

	t.Run("logging defaults to the standard location", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, cfg.Logging.File)
	})

	t.Run("defaults pass validation", func(t *testing.T) {
		t.Parallel()

		require.NoError(t, Validate(cfg))
	})
}

// TestReportsConfig_Paths tests the report path helpers
func TestReportsConfig_Paths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cfg      ReportsConfig
		wantJSON string
		wantHTML string
	}{
		{
			name: "default layout",
			cfg: ReportsConfig{
				Dir:      "ingest_output",
				JSONName: "ingest_report.json",
				HTMLName: "ingest_report.html",
			},
			wantJSON: filepath.Join("ingest_output", "ingest_report.json"),
			wantHTML: filepath.Join("ingest_output", "ingest_report.html"),
		},
		{
			name: "absolute directory",
			cfg: ReportsConfig{
				Dir:      "/var/lib/seqgate",
				JSONName: "results.json",
				HTMLName: "results.html",
			},
			wantJSON: filepath.Join("/var/lib/seqgate", "results.json"),
			wantHTML: filepath.Join("/var/lib/seqgate", "results.html"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.wantJSON, tt.cfg.JSONPath())
			assert.Equal(t, tt.wantHTML, tt.cfg.HTMLPath())
		})
	}
}

// TestConfig_SamtoolsTimeoutIsBounded documents the no-retry contract:
// the timeout is the whole budget for one flagstat call.
func TestConfig_SamtoolsTimeoutIsBounded(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	assert.Equal(t, 60*time.Second, cfg.Samtools.Timeout)
}
