package validate

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/omicsworks/seqgate/internal/detect"
)

// maxTableLineBytes caps a single line of a tabular file. Intensity tables
// and count matrices are wide but bounded, unlike raw-read files.
const maxTableLineBytes = 4 * 1024 * 1024

// loadTable reads a tabular file fully into rows of fields. Blank lines are
// skipped and the delimiter is inferred from the header line, matching the
// detector. The tabular validators buffer whole files; only FASTQ streams.
func loadTable(path string) ([][]string, error) {
	f, err := os.Open(path) //#nosec G304 -- caller-supplied input path, read-only
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxTableLineBytes)

	var (
		rows  [][]string
		delim string
	)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if delim == "" {
			delim = detect.DelimiterFor(line)
		}
		rows = append(rows, detect.SplitRow(line, delim))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}

// columnName labels a column for messages: the header name when the index
// is within the header, the 1-based position otherwise.
func columnName(header []string, idx int) string {
	if idx < len(header) {
		return strings.TrimSpace(header[idx])
	}
	return "#" + strconv.Itoa(idx+1)
}
