package validate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/omicsworks/seqgate/internal/domain"
)

// probeIDPattern is the accepted probe identifier shape: alphanumeric with
// the separators microarray vendors actually emit.
//
//nolint:gochecknoglobals // Compiled once at package init
var probeIDPattern = regexp.MustCompile(`^[A-Za-z0-9_.:-]+$`)

// ValidateCELL checks a microarray intensity table. The header must carry a
// probe_id column and at least one intensity or signal column; every probe
// ID must match probeIDPattern and every intensity value must be a
// non-negative number.
//
// Rows whose column count differs from the header are tolerated up to
// shapeThreshold as a fraction of data rows (WARN); above it the file fails.
// Heterogeneous microarray exports make a small amount of shape noise
// routine rather than fatal.
func ValidateCELL(path string, shapeThreshold float64) Outcome {
	rows, err := loadTable(path)
	if err != nil {
		return Fail(fmt.Sprintf("cannot read CELL file: %v", err))
	}
	if len(rows) == 0 {
		return Fail("empty CELL file (no header row)")
	}

	header := rows[0]
	probeCol, intensityCols := cellColumns(header)
	if probeCol < 0 {
		return Fail("missing probe_id column in header")
	}
	if len(intensityCols) == 0 {
		return Fail("missing intensity/signal column in header")
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

		if probeCol < len(row) {
			probe := strings.TrimSpace(row[probeCol])
			if probe == "" {
				return Fail(fmt.Sprintf("row %d: empty probe ID", rowNum))
			}
			if !probeIDPattern.MatchString(probe) {
				return Fail(fmt.Sprintf("row %d: invalid probe ID %q", rowNum, truncateForMessage(probe)))
			}
		}

		for _, col := range intensityCols {
			if col >= len(row) {
				continue // short row, already counted as a shape mismatch
			}
			value := strings.TrimSpace(row[col])
			v, parseErr := strconv.ParseFloat(value, 64)
			if parseErr != nil {
				return Fail(fmt.Sprintf("row %d, column %q: non-numeric intensity %q",
					rowNum, columnName(header, col), truncateForMessage(value)))
			}
			if v < 0 {
				return Fail(fmt.Sprintf("row %d, column %q: negative intensity %s",
					rowNum, columnName(header, col), value))
			}
		}
	}

	metrics := domain.Metrics{
		ProbeCount:       intPtr(len(dataRows)),
		IntensityColumns: intPtr(len(intensityCols)),
	}

	if shapeMismatches > 0 {
		fraction := float64(shapeMismatches) / float64(len(dataRows))
		if fraction > shapeThreshold {
			return Fail(fmt.Sprintf(
				"%d of %d data rows have a column count different from the header (%d columns expected)",
				shapeMismatches, len(dataRows), len(header)))
		}
		return Warn(fmt.Sprintf(
			"%d of %d data rows have a column count different from the header; content otherwise valid",
			shapeMismatches, len(dataRows))).WithMetrics(metrics)
	}

	return Pass(fmt.Sprintf("CELL validation successful (%d probes, %d intensity columns)",
		len(dataRows), len(intensityCols))).WithMetrics(metrics)
}

// cellColumns locates the probe column and the intensity/signal columns in
// the header. Returns -1 for a missing probe column.
func cellColumns(header []string) (probeCol int, intensityCols []int) {
	probeCol = -1
	for i, field := range header {
		lower := strings.ToLower(strings.TrimSpace(field))
		if probeCol < 0 && strings.Contains(lower, "probe_id") {
			probeCol = i
			continue
		}
		if strings.Contains(lower, "intensity") || strings.Contains(lower, "signal") {
			intensityCols = append(intensityCols, i)
		}
	}
	return probeCol, intensityCols
}
