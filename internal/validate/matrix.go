package validate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/omicsworks/seqgate/internal/domain"
)

// ValidateMATRIX checks a gene-by-sample expression count table. The first
// header column names the gene identifier; the remaining columns are sample
// names, which must be non-empty and should be unique. Every count value
// must be a non-negative number and every gene ID must be non-empty.
//
// Shape mismatches follow the same threshold policy as the CELL validator;
// duplicate sample names are a warning, never a failure.
func ValidateMATRIX(path string, shapeThreshold float64) Outcome {
	rows, err := loadTable(path)
	if err != nil {
		return Fail(fmt.Sprintf("cannot read count matrix: %v", err))
	}
	if len(rows) == 0 {
		return Fail("empty count matrix (no header row)")
	}

	header := rows[0]
	if len(header) < 2 {
		return Fail("count matrix header needs a gene column plus at least one sample column")
	}

	duplicates, out, ok := checkSampleNames(header)
	if !ok {
		return out
	}

	dataRows := rows[1:]
	if len(dataRows) == 0 {
		return Fail("no data rows after header")
	}

	var shapeMismatches int
	for i, row := range dataRows {
		rowNum := i + 2 // 1-based, header is row 1

		if len(row) != len(header) {
			shapeMismatches++
		}

		if strings.TrimSpace(row[0]) == "" {
			return Fail(fmt.Sprintf("row %d: empty gene ID", rowNum))
		}

		for col := 1; col < len(row); col++ {
			value := strings.TrimSpace(row[col])
			v, parseErr := strconv.ParseFloat(value, 64)
			if parseErr != nil {
				return Fail(fmt.Sprintf("row %d, column %q: non-numeric count %q",
					rowNum, columnName(header, col), truncateForMessage(value)))
			}
			if v < 0 {
				return Fail(fmt.Sprintf("row %d, column %q: negative count %s",
					rowNum, columnName(header, col), value))
			}
		}
	}

	metrics := domain.Metrics{
		GeneCount:   intPtr(len(dataRows)),
		SampleCount: intPtr(len(header) - 1),
	}

	var warnings []string
	if len(duplicates) > 0 {
		warnings = append(warnings,
			fmt.Sprintf("duplicate sample names in header: %s", strings.Join(duplicates, ", ")))
	}
	if shapeMismatches > 0 {
		fraction := float64(shapeMismatches) / float64(len(dataRows))
		if fraction > shapeThreshold {
			return Fail(fmt.Sprintf(
				"%d of %d data rows have a column count different from the header (%d columns expected)",
				shapeMismatches, len(dataRows), len(header)))
		}
		warnings = append(warnings, fmt.Sprintf(
			"%d of %d data rows have a column count different from the header",
			shapeMismatches, len(dataRows)))
	}
	if len(warnings) > 0 {
		return Warn(strings.Join(warnings, "; ")).WithMetrics(metrics)
	}

	return Pass(fmt.Sprintf("count matrix validation successful (%d genes, %d samples)",
		len(dataRows), len(header)-1)).WithMetrics(metrics)
}

// checkSampleNames validates the header's sample columns: empty names fail
// immediately, repeated names are collected for a warning.
func checkSampleNames(header []string) (duplicates []string, out Outcome, ok bool) {
	seen := make(map[string]bool, len(header)-1)
	reported := make(map[string]bool)
	for i, field := range header[1:] {
		name := strings.TrimSpace(field)
		if name == "" {
			return nil, Fail(fmt.Sprintf("empty sample name in header column %d", i+2)), false
		}
		if seen[name] && !reported[name] {
			duplicates = append(duplicates, name)
			reported[name] = true
		}
		seen[name] = true
	}
	return duplicates, Outcome{}, true
}
