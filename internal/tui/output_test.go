// Package tui provides terminal output components for seqgate.
package tui

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTTYOutput_Success verifies success messages get the checkmark prefix.
func TestTTYOutput_Success(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	out := NewTTYOutput(&buf)

	out.Success("ledger reset")

	assert.Contains(t, buf.String(), "✓ ledger reset")
}

// TestTTYOutput_Error verifies error messages get the cross prefix.
func TestTTYOutput_Error(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	out := NewTTYOutput(&buf)

	out.Error(errors.New("validation failed"))

	assert.Contains(t, buf.String(), "✗ validation failed")
}

// TestTTYOutput_Warning verifies warning messages get the warning prefix.
func TestTTYOutput_Warning(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	out := NewTTYOutput(&buf)

	out.Warning("quality line length mismatch")

	assert.Contains(t, buf.String(), "⚠ quality line length mismatch")
}

// TestTTYOutput_Info verifies info messages are written as-is.
func TestTTYOutput_Info(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	out := NewTTYOutput(&buf)

	out.Info("report: ingest_output/ingest_report.json")

	assert.Contains(t, buf.String(), "report: ingest_output/ingest_report.json")
}

// TestTTYOutput_Detail verifies detail lines are indented.
func TestTTYOutput_Detail(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	out := NewTTYOutput(&buf)

	out.Detail("duplicate of liver_rep1, first result kept")

	assert.Contains(t, buf.String(), "  duplicate of liver_rep1, first result kept")
}

// TestTTYOutput_JSON verifies JSON encoding with indentation.
func TestTTYOutput_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	out := NewTTYOutput(&buf)

	err := out.JSON(map[string]int{"processed": 3})
	require.NoError(t, err)

	var decoded map[string]int
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 3, decoded["processed"])
	assert.Contains(t, buf.String(), "\n", "output should be indented/multiline")
}

// TestJSONOutput_MessagesAreNoOps verifies human-oriented messages are
// suppressed in JSON mode.
func TestJSONOutput_MessagesAreNoOps(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	out := NewJSONOutput(&buf)

	out.Success("should not appear")
	out.Warning("should not appear")
	out.Info("should not appear")
	out.Detail("should not appear")

	assert.Empty(t, buf.String())
}

// TestJSONOutput_Error verifies errors are emitted as JSON objects.
func TestJSONOutput_Error(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	out := NewJSONOutput(&buf)

	out.Error(errors.New("manifest invalid"))

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "manifest invalid", decoded["error"])
}

// TestJSONOutput_JSON verifies JSON value encoding.
func TestJSONOutput_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	out := NewJSONOutput(&buf)

	err := out.JSON(struct {
		RunID string `json:"run_id"`
	}{RunID: "20260314T093000Z"})
	require.NoError(t, err)

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "20260314T093000Z", decoded["run_id"])
}

// TestNewOutput verifies format-based output selection.
func TestNewOutput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		format   string
		wantJSON bool
	}{
		{name: "json format", format: "json", wantJSON: true},
		{name: "text format", format: "text", wantJSON: false},
		{name: "empty format defaults to text", format: "", wantJSON: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			out := NewOutput(&buf, tt.format)

			_, isJSON := out.(*JSONOutput)
			assert.Equal(t, tt.wantJSON, isJSON)
		})
	}
}

// TestJSONOutput_EncodeError verifies unencodable values return an error.
func TestJSONOutput_EncodeError(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	out := NewJSONOutput(&buf)

	err := out.JSON(make(chan int))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to encode JSON")
}
