package validate

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/omicsworks/seqgate/internal/constants"
	"github.com/omicsworks/seqgate/internal/domain"
)

// maxReadLineBytes caps a single FASTQ line. Long-read platforms produce
// multi-hundred-kilobase sequences, so the cap is generous while still
// bounding memory on a corrupt unterminated file.
const maxReadLineBytes = 16 * 1024 * 1024

// validNucleotides marks the accepted sequence characters: A, C, G, T, N
// plus the extended IUPAC ambiguity codes, both cases.
//
//nolint:gochecknoglobals // Constant lookup table built once
var validNucleotides = func() [256]bool {
	var t [256]bool
	for _, c := range "ACGTNRYSWKMBDHVacgtnryswkmbdhv" {
		t[c] = true
	}
	return t
}()

// ValidateFASTQ checks a FASTQ file as a stream of 4-line records in a
// single forward pass. Gzip-compressed inputs (.fastq.gz, .fq.gz) are
// decompressed transparently.
//
// Any structural violation fails the file immediately, citing the first
// offending read and line. Reads of varying length are legitimate but
// noteworthy, so length variance alone produces a warning.
func ValidateFASTQ(path string) Outcome {
	f, err := os.Open(path) //#nosec G304 -- caller-supplied input path, read-only
	if err != nil {
		return Fail(fmt.Sprintf("cannot open FASTQ file: %v", err))
	}
	defer func() { _ = f.Close() }()

	var reader io.Reader = f
	if strings.HasSuffix(strings.ToLower(path), ".gz") {
		gz, gzErr := gzip.NewReader(f)
		if gzErr != nil {
			return Fail(fmt.Sprintf("corrupt gzip stream: %v", gzErr))
		}
		defer func() { _ = gz.Close() }()
		reader = gz
	}

	outcome := scanFASTQ(reader)
	if outcome.Status != domain.StatusFail {
		outcome.Metrics.IsPairedEnd = boolPtr(pairedEndHint(path))
	}
	return outcome
}

// scanFASTQ walks the record stream and applies the structural checks.
func scanFASTQ(r io.Reader) Outcome {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxReadLineBytes)

	var (
		readCount      int64
		firstLen       int
		variableLength bool
		lineNo         int
		record         [4]string
	)

	for {
		filled := 0
		for filled < 4 && scanner.Scan() {
			record[filled] = scanner.Text()
			filled++
			lineNo++
		}
		if err := scanner.Err(); err != nil {
			return Fail(fmt.Sprintf("read error at line %d: %v", lineNo+1, err))
		}
		if filled == 0 {
			break
		}
		if filled < 4 {
			return Fail(fmt.Sprintf(
				"incomplete FASTQ record at line %d: file ends mid-record (%d of 4 lines)",
				lineNo-filled+1, filled))
		}

		readCount++
		if out, ok := checkRecord(record, readCount, lineNo-3); !ok {
			return out
		}

		seqLen := len(record[1])
		if readCount == 1 {
			firstLen = seqLen
		} else if seqLen != firstLen {
			variableLength = true
		}
	}

	if readCount == 0 {
		return Fail("no FASTQ records found (empty file)")
	}

	metrics := domain.Metrics{
		TotalReads:     int64Ptr(readCount),
		SequenceLength: intPtr(firstLen),
	}
	if variableLength {
		return Warn(fmt.Sprintf(
			"variable read lengths detected (first read %d bp); structure otherwise valid (%d reads)",
			firstLen, readCount)).WithMetrics(metrics)
	}
	return Pass(fmt.Sprintf("FASTQ validation successful (%d reads, %d bp)", readCount, firstLen)).
		WithMetrics(metrics)
}

// checkRecord applies the per-record structural rules. headerLine is the
// 1-based line number of the record's header line.
func checkRecord(record [4]string, readNum int64, headerLine int) (Outcome, bool) {
	header, seq, plus, qual := record[0], record[1], record[2], record[3]

	if !strings.HasPrefix(header, "@") {
		return Fail(fmt.Sprintf(
			"read %d (line %d): header must start with '@', got %q",
			readNum, headerLine, truncateForMessage(header))), false
	}
	if !strings.HasPrefix(plus, "+") {
		return Fail(fmt.Sprintf(
			"read %d (line %d): separator must start with '+', got %q",
			readNum, headerLine+2, truncateForMessage(plus))), false
	}
	if len(seq) != len(qual) {
		return Fail(fmt.Sprintf(
			"read %d (line %d): sequence length (%d) != quality length (%d)",
			readNum, headerLine+1, len(seq), len(qual))), false
	}
	for i := 0; i < len(seq); i++ {
		if !validNucleotides[seq[i]] {
			return Fail(fmt.Sprintf(
				"read %d (line %d): invalid nucleotide %q at position %d",
				readNum, headerLine+1, string(seq[i]), i+1)), false
		}
	}
	for i := 0; i < len(qual); i++ {
		if qual[i] < constants.QualityASCIIMin || qual[i] > constants.QualityASCIIMax {
			return Fail(fmt.Sprintf(
				"read %d (line %d): quality character at position %d outside printable ASCII %d-%d",
				readNum, headerLine+3, i+1, constants.QualityASCIIMin, constants.QualityASCIIMax)), false
		}
	}
	return Outcome{}, true
}

// pairedEndHint reports whether the file name carries a read-pair marker.
// This is advisory metadata, never a validation failure condition.
func pairedEndHint(path string) bool {
	base := constants.StripKnownSuffix(filepath.Base(path))
	for _, marker := range constants.PairedEndMarkers {
		if strings.HasSuffix(base, marker) {
			return true
		}
	}
	return false
}

// truncateForMessage bounds arbitrary file content quoted in messages.
func truncateForMessage(s string) string {
	const max = 20
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
