package constants

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputType_String(t *testing.T) {
	tests := []struct {
		name      string
		inputType InputType
		expected  string
	}{
		{
			name:      "FASTQ type",
			inputType: InputTypeFASTQ,
			expected:  "FASTQ",
		},
		{
			name:      "BAM type",
			inputType: InputTypeBAM,
			expected:  "BAM",
		},
		{
			name:      "CELL type",
			inputType: InputTypeCELL,
			expected:  "CELL",
		},
		{
			name:      "MATRIX type",
			inputType: InputTypeMATRIX,
			expected:  "MATRIX",
		},
		{
			name:      "unknown type",
			inputType: InputTypeUnknown,
			expected:  "UNKNOWN",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.inputType.String())
		})
	}
}

func TestInputType_Valid(t *testing.T) {
	tests := []struct {
		name      string
		inputType InputType
		expected  bool
	}{
		{
			name:      "FASTQ is valid",
			inputType: InputTypeFASTQ,
			expected:  true,
		},
		{
			name:      "BAM is valid",
			inputType: InputTypeBAM,
			expected:  true,
		},
		{
			name:      "CELL is valid",
			inputType: InputTypeCELL,
			expected:  true,
		},
		{
			name:      "MATRIX is valid",
			inputType: InputTypeMATRIX,
			expected:  true,
		},
		{
			name:      "UNKNOWN is valid",
			inputType: InputTypeUnknown,
			expected:  true,
		},
		{
			name:      "empty string is not valid",
			inputType: InputType(""),
			expected:  false,
		},
		{
			name:      "lowercase fastq is not valid",
			inputType: InputType("fastq"),
			expected:  false,
		},
		{
			name:      "arbitrary value is not valid",
			inputType: InputType("VCF"),
			expected:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.inputType.Valid())
		})
	}
}

func TestValidationStatus_String(t *testing.T) {
	tests := []struct {
		name     string
		status   ValidationStatus
		expected string
	}{
		{
			name:     "pass status",
			status:   StatusPass,
			expected: "PASS",
		},
		{
			name:     "warn status",
			status:   StatusWarn,
			expected: "WARN",
		},
		{
			name:     "fail status",
			status:   StatusFail,
			expected: "FAIL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.status.String())
		})
	}
}

func TestValidationStatus_Valid(t *testing.T) {
	tests := []struct {
		name     string
		status   ValidationStatus
		expected bool
	}{
		{
			name:     "PASS is valid",
			status:   StatusPass,
			expected: true,
		},
		{
			name:     "WARN is valid",
			status:   StatusWarn,
			expected: true,
		},
		{
			name:     "FAIL is valid",
			status:   StatusFail,
			expected: true,
		},
		{
			name:     "empty string is not valid",
			status:   ValidationStatus(""),
			expected: false,
		},
		{
			name:     "lowercase pass is not valid",
			status:   ValidationStatus("pass"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.status.Valid())
		})
	}
}

func TestInputType_JSONSerialization(t *testing.T) {
	type wrapper struct {
		Type InputType `json:"input_type"`
	}

	t.Run("marshals as the uppercase name", func(t *testing.T) {
		data, err := json.Marshal(wrapper{Type: InputTypeFASTQ})
		require.NoError(t, err)
		assert.JSONEq(t, `{"input_type":"FASTQ"}`, string(data))
	})

	t.Run("round trips through JSON", func(t *testing.T) {
		var decoded wrapper
		require.NoError(t, json.Unmarshal([]byte(`{"input_type":"BAM"}`), &decoded))
		assert.Equal(t, InputTypeBAM, decoded.Type)
	})
}

func TestValidationStatus_JSONSerialization(t *testing.T) {
	type wrapper struct {
		Status ValidationStatus `json:"validation_status"`
	}

	t.Run("marshals as the uppercase name", func(t *testing.T) {
		data, err := json.Marshal(wrapper{Status: StatusWarn})
		require.NoError(t, err)
		assert.JSONEq(t, `{"validation_status":"WARN"}`, string(data))
	})

	t.Run("round trips through JSON", func(t *testing.T) {
		var decoded wrapper
		require.NoError(t, json.Unmarshal([]byte(`{"validation_status":"FAIL"}`), &decoded))
		assert.Equal(t, StatusFail, decoded.Status)
	})
}
