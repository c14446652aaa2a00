// Package detect classifies input files into the formats seqgate validates.
//
// Detection is a two-stage process: an extension fast path for unambiguous
// suffixes (.fastq, .fq, .bam, optionally .gz-wrapped), then bounded content
// sniffing for tabular extensions (.tsv, .csv, .txt) that several formats
// share. The detector never returns an error: files it cannot classify or
// cannot read come back as UNKNOWN, and the validation stage surfaces the
// failure. Existence checks are the caller's responsibility and happen
// before detection.
package detect

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/omicsworks/seqgate/internal/domain"
)

// maxSniffRows bounds how many data rows the sniffer inspects when looking
// for the numeric row that distinguishes a count matrix from arbitrary text.
const maxSniffRows = 50

// maxLineBytes bounds single-line reads during sniffing so a pathological
// unterminated file cannot force an unbounded allocation.
const maxLineBytes = 1024 * 1024

// Detector classifies file paths into input types.
type Detector struct{}

// New creates a Detector.
func New() *Detector {
	return &Detector{}
}

// Detect returns the input type for the file at path.
//
// The extension fast path handles raw-read and aligned-read formats; tabular
// extensions are sniffed by header content, with microarray detection taking
// precedence over count-matrix detection because it requires the more
// specific probe_id marker. Anything else is UNKNOWN.
func (d *Detector) Detect(path string) domain.InputType {
	name := strings.ToLower(path)

	switch {
	case hasAnySuffix(name, ".fastq", ".fq", ".fastq.gz", ".fq.gz"):
		return domain.InputTypeFASTQ
	case strings.HasSuffix(name, ".bam"):
		return domain.InputTypeBAM
	case hasAnySuffix(name, ".tsv", ".csv", ".txt"):
		return d.sniffTabular(path)
	default:
		return domain.InputTypeUnknown
	}
}

// sniffTabular reads the header line (and a bounded number of data rows)
// to distinguish microarray intensity tables from count matrices.
func (d *Detector) sniffTabular(path string) domain.InputType {
	f, err := os.Open(path) //#nosec G304 -- caller-supplied input path, read-only sniff
	if err != nil {
		return domain.InputTypeUnknown
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	if !scanner.Scan() {
		return domain.InputTypeUnknown
	}
	header := scanner.Text()
	fields := SplitRow(header, DelimiterFor(header))
	if len(fields) == 0 {
		return domain.InputTypeUnknown
	}

	if isCellHeader(fields) {
		return domain.InputTypeCELL
	}
	if isMatrixHeader(fields) && hasNumericDataRow(scanner, DelimiterFor(header)) {
		return domain.InputTypeMATRIX
	}
	return domain.InputTypeUnknown
}

// isCellHeader reports whether the header carries the microarray markers:
// a probe_id column plus at least one intensity or signal column.
func isCellHeader(fields []string) bool {
	var hasProbe, hasIntensity bool
	for _, f := range fields {
		lower := strings.ToLower(strings.TrimSpace(f))
		if strings.Contains(lower, "probe_id") {
			hasProbe = true
		}
		if strings.Contains(lower, "intensity") || strings.Contains(lower, "signal") {
			hasIntensity = true
		}
	}
	return hasProbe && hasIntensity
}

// isMatrixHeader reports whether the header looks like a count matrix:
// a gene-identifier first column (non-empty, not purely numeric) followed
// by at least one non-empty sample name.
func isMatrixHeader(fields []string) bool {
	if len(fields) < 2 {
		return false
	}
	gene := strings.TrimSpace(fields[0])
	if gene == "" || isNumeric(gene) {
		return false
	}
	for _, sample := range fields[1:] {
		if strings.TrimSpace(sample) == "" {
			return false
		}
	}
	return true
}

// hasNumericDataRow scans forward for a data row with at least one numeric
// value, giving up after maxSniffRows rows.
func hasNumericDataRow(scanner *bufio.Scanner, delim string) bool {
	for i := 0; i < maxSniffRows && scanner.Scan(); i++ {
		row := strings.TrimSpace(scanner.Text())
		if row == "" {
			continue
		}
		for _, field := range SplitRow(row, delim) {
			if isNumeric(strings.TrimSpace(field)) {
				return true
			}
		}
	}
	return false
}

// DelimiterFor picks the field delimiter for a tabular line: tab when the
// line contains one, comma otherwise. Mixed exports from microarray vendors
// make the extension alone unreliable.
func DelimiterFor(line string) string {
	if strings.Contains(line, "\t") {
		return "\t"
	}
	return ","
}

// SplitRow splits a tabular line on the given delimiter.
func SplitRow(line, delim string) []string {
	return strings.Split(line, delim)
}

// isNumeric reports whether s parses as a floating-point number.
func isNumeric(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// hasAnySuffix reports whether name ends in any of the given suffixes.
func hasAnySuffix(name string, suffixes ...string) bool {
	for _, s := range suffixes {
		if strings.HasSuffix(name, s) {
			return true
		}
	}
	return false
}
