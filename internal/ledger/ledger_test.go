package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omicsworks/seqgate/internal/domain"
)

// makeRecord builds a minimal valid record for ledger tests.
func makeRecord(id string, status domain.ValidationStatus) domain.Record {
	return domain.Record{
		DatasetID:         id,
		SampleName:        id,
		InputType:         domain.InputTypeFASTQ,
		FilePath:          "/data/" + id + ".fastq",
		FileSize:          2048,
		FileSizeMB:        0.0,
		ValidationStatus:  status,
		ValidationMessage: "FASTQ validation successful (10 reads, 4 bp)",
		Timestamp:         time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
	}
}

func TestLedgerMerge(t *testing.T) {
	t.Run("adds new records", func(t *testing.T) {
		led := New()

		assert.True(t, led.Merge(makeRecord("liver_rep1", domain.StatusPass)))
		assert.True(t, led.Merge(makeRecord("liver_rep2", domain.StatusWarn)))
		assert.Equal(t, 2, led.Len())
	})

	t.Run("first write wins on duplicate dataset ID", func(t *testing.T) {
		led := New()
		original := makeRecord("liver_rep1", domain.StatusPass)
		require.True(t, led.Merge(original))

		later := makeRecord("liver_rep1", domain.StatusFail)
		later.ValidationMessage = "different outcome"
		assert.False(t, led.Merge(later))

		got, ok := led.Get("liver_rep1")
		require.True(t, ok)
		assert.Equal(t, domain.StatusPass, got.ValidationStatus)
		assert.Equal(t, original.ValidationMessage, got.ValidationMessage)
		assert.Equal(t, 1, led.Len())
	})

	t.Run("merge is idempotent", func(t *testing.T) {
		led := New()
		record := makeRecord("sample_R1", domain.StatusPass)

		added := 0
		skipped := 0
		for i := 0; i < 5; i++ {
			if led.Merge(record) {
				added++
			} else {
				skipped++
			}
		}

		assert.Equal(t, 1, added)
		assert.Equal(t, 4, skipped)
		assert.Equal(t, 1, led.Len())
	})

	t.Run("preserves insertion order", func(t *testing.T) {
		led := New()
		ids := []string{"zeta", "alpha", "mid"}
		for _, id := range ids {
			require.True(t, led.Merge(makeRecord(id, domain.StatusPass)))
		}

		records := led.Records()
		require.Len(t, records, 3)
		for i, id := range ids {
			assert.Equal(t, id, records[i].DatasetID)
		}
	})
}

func TestLedgerAccessors(t *testing.T) {
	led := New()
	require.True(t, led.Merge(makeRecord("liver_rep1", domain.StatusPass)))

	t.Run("Has", func(t *testing.T) {
		assert.True(t, led.Has("liver_rep1"))
		assert.False(t, led.Has("kidney_rep1"))
	})

	t.Run("Get missing", func(t *testing.T) {
		_, ok := led.Get("kidney_rep1")
		assert.False(t, ok)
	})

	t.Run("Records returns a copy", func(t *testing.T) {
		records := led.Records()
		records[0].DatasetID = "mutated"

		got, ok := led.Get("liver_rep1")
		require.True(t, ok)
		assert.Equal(t, "liver_rep1", got.DatasetID)
	})

	t.Run("empty ledger", func(t *testing.T) {
		empty := New()
		assert.Equal(t, 0, empty.Len())
		assert.Empty(t, empty.Records())
	})
}
