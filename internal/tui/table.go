// Package tui provides terminal output components for seqgate.
package tui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"golang.org/x/term"

	"github.com/omicsworks/seqgate/internal/domain"
)

// Terminal width thresholds for the results table.
const (
	// TerminalWidthNarrow is the threshold below which abbreviated headers
	// are used.
	TerminalWidthNarrow = 100

	// WideTerminalThreshold is the minimum terminal width for proportional
	// column expansion.
	WideTerminalThreshold = 140

	// DefaultTerminalWidth is assumed when width detection fails.
	DefaultTerminalWidth = 80
)

// MinColumnWidths defines the minimum width for each results table column.
// Used to ensure readability even with short content.
//
//nolint:gochecknoglobals // Intentional package-level constant for results table minimum widths
var MinColumnWidths = ResultColumnWidths{
	Dataset: 12,
	Type:    6,
	Size:    8,
	Status:  6,
	Message: 24,
}

// ResultColumnWidths holds the widths for each results table column.
type ResultColumnWidths struct {
	Dataset int
	Type    int
	Size    int
	Status  int
	Message int
}

// ResultsTableConfig holds configuration for the results table.
type ResultsTableConfig struct {
	// TerminalWidth is the detected terminal width (or forced width for testing).
	TerminalWidth int
	// Narrow indicates whether to use abbreviated headers.
	Narrow bool
}

// ResultsTableOption is a functional option for ResultsTable configuration.
type ResultsTableOption func(*ResultsTable)

// WithTerminalWidth sets a specific terminal width (useful for testing).
func WithTerminalWidth(width int) ResultsTableOption {
	return func(t *ResultsTable) {
		t.config.TerminalWidth = width
		t.config.Narrow = width > 0 && width < TerminalWidthNarrow
	}
}

// ResultsTable renders validation records in a formatted table with one row
// per dataset: identifier, detected format, size on disk, verdict, and the
// verdict message.
type ResultsTable struct {
	records []domain.Record
	styles  *TableStyles
	config  ResultsTableConfig
}

// NewResultsTable creates a results table over the given records.
// Automatically detects terminal width and narrow mode.
func NewResultsTable(records []domain.Record, opts ...ResultsTableOption) *ResultsTable {
	t := &ResultsTable{
		records: records,
		styles:  NewTableStyles(),
		config: ResultsTableConfig{
			TerminalWidth: detectTerminalWidth(),
		},
	}

	t.config.Narrow = t.config.TerminalWidth > 0 && t.config.TerminalWidth < TerminalWidthNarrow

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// detectTerminalWidth returns the current terminal width.
// Returns DefaultTerminalWidth if detection fails.
func detectTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return DefaultTerminalWidth
	}
	return width
}

// IsNarrow returns true if the terminal is in narrow mode.
func (t *ResultsTable) IsNarrow() bool {
	return t.config.Narrow
}

// Headers returns the column headers, abbreviated if in narrow mode.
func (t *ResultsTable) Headers() []string {
	if t.config.Narrow {
		return []string{"DATASET", "TYPE", "SIZE", "STAT", "MSG"}
	}
	return t.FullHeaders()
}

// FullHeaders returns the full (non-abbreviated) column headers.
func (t *ResultsTable) FullHeaders() []string {
	return []string{"DATASET", "TYPE", "SIZE", "STATUS", "MESSAGE"}
}

// Rows returns a copy of the records backing the table.
// Returns a copy to prevent external mutation of internal state.
func (t *ResultsTable) Rows() []domain.Record {
	if t.records == nil {
		return nil
	}
	result := make([]domain.Record, len(t.records))
	copy(result, t.records)
	return result
}

// Render writes the formatted table to the writer. The status cell keeps
// triple redundancy (icon + color + text); all other cells are plain.
func (t *ResultsTable) Render(w io.Writer) error {
	headers := t.Headers()
	widths := t.calculateColumnWidths()
	widthsSlice := []int{widths.Dataset, widths.Type, widths.Size, widths.Status, widths.Message}

	headerParts := make([]string, len(headers))
	for i, h := range headers {
		headerParts[i] = t.styles.Header.Render(padRight(h, widthsSlice[i]))
	}
	if _, err := fmt.Fprintln(w, strings.Join(headerParts, "  ")); err != nil {
		return err
	}

	for i := range t.records {
		record := &t.records[i]
		rowCells := []string{
			padRight(truncate(record.DatasetID, widths.Dataset), widths.Dataset),
			padRight(record.InputType.String(), widths.Type),
			padRight(formatFileSize(record.FileSize), widths.Size),
			t.renderStatusCellPadded(record.ValidationStatus, widths.Status),
			padRight(truncate(record.ValidationMessage, widths.Message), widths.Message),
		}
		if _, err := fmt.Fprintln(w, strings.Join(rowCells, "  ")); err != nil {
			return err
		}
	}

	return nil
}

// calculateColumnWidths calculates widths for each column based on content.
// Uses utf8.RuneCountInString for proper Unicode handling. Wide terminals
// get proportionally expanded variable-width columns.
func (t *ResultsTable) calculateColumnWidths() ResultColumnWidths {
	widths := t.initializeMinWidths()
	t.updateWidthsFromContent(widths)
	widths = t.applyWidthConstraints(widths)

	return ResultColumnWidths{
		Dataset: widths[0],
		Type:    widths[1],
		Size:    widths[2],
		Status:  widths[3],
		Message: widths[4],
	}
}

// initializeMinWidths creates the initial width slice using minimum widths
// and header lengths.
func (t *ResultsTable) initializeMinWidths() []int {
	headers := t.Headers()
	return []int{
		max(MinColumnWidths.Dataset, utf8.RuneCountInString(headers[0])),
		max(MinColumnWidths.Type, utf8.RuneCountInString(headers[1])),
		max(MinColumnWidths.Size, utf8.RuneCountInString(headers[2])),
		max(MinColumnWidths.Status, utf8.RuneCountInString(headers[3])),
		max(MinColumnWidths.Message, utf8.RuneCountInString(headers[4])),
	}
}

// updateWidthsFromContent expands widths based on actual record content.
func (t *ResultsTable) updateWidthsFromContent(widths []int) {
	for i := range t.records {
		record := &t.records[i]

		if w := utf8.RuneCountInString(record.DatasetID); w > widths[0] {
			widths[0] = w
		}
		if w := utf8.RuneCountInString(record.InputType.String()); w > widths[1] {
			widths[1] = w
		}
		if w := utf8.RuneCountInString(formatFileSize(record.FileSize)); w > widths[2] {
			widths[2] = w
		}

		// Status cell is icon + space + verdict text.
		statusCell := FormatStatusWithIcon(record.ValidationStatus)
		if w := utf8.RuneCountInString(statusCell); w > widths[3] {
			widths[3] = w
		}

		if w := utf8.RuneCountInString(record.ValidationMessage); w > widths[4] {
			widths[4] = w
		}
	}
}

// applyWidthConstraints constrains widths to the terminal and applies
// proportional expansion on wide terminals.
func (t *ResultsTable) applyWidthConstraints(widths []int) []int {
	widths = t.constrainToTerminalWidth(widths)

	if t.config.TerminalWidth >= WideTerminalThreshold {
		widths = t.applyProportionalExpansion(widths)
	}

	return widths
}

// separatorWidth is the total width of the 2-space separators between the
// five columns.
const separatorWidth = 8

// applyProportionalExpansion distributes extra terminal width among the
// variable-width columns (Dataset, Message). Type, Size, and Status stay
// fixed for visual consistency.
func (t *ResultsTable) applyProportionalExpansion(widths []int) []int {
	totalContentWidth := 0
	for _, w := range widths {
		totalContentWidth += w
	}
	totalWidth := totalContentWidth + separatorWidth

	extraSpace := t.config.TerminalWidth - totalWidth
	if extraSpace <= 0 {
		return widths
	}

	expandableIndices := []int{0, 4}
	expandableTotal := widths[0] + widths[4]
	if expandableTotal == 0 {
		return widths
	}

	result := make([]int, len(widths))
	copy(result, widths)

	for _, idx := range expandableIndices {
		proportion := float64(widths[idx]) / float64(expandableTotal)
		expansion := int(float64(extraSpace) * proportion)

		// Cap expansion at 50% of original width to avoid overly wide columns
		maxExpansion := widths[idx] / 2
		if expansion > maxExpansion {
			expansion = maxExpansion
		}

		result[idx] = widths[idx] + expansion
	}

	return result
}

// constrainToTerminalWidth reduces column widths to fit within the terminal.
// The Message column shrinks first, then Dataset; the remaining columns are
// narrow and fixed so every column stays visible.
func (t *ResultsTable) constrainToTerminalWidth(widths []int) []int {
	totalContentWidth := 0
	for _, w := range widths {
		totalContentWidth += w
	}
	totalWidth := totalContentWidth + separatorWidth

	if t.config.TerminalWidth <= 0 || totalWidth <= t.config.TerminalWidth {
		return widths
	}

	overflow := totalWidth - t.config.TerminalWidth

	result := make([]int, len(widths))
	copy(result, widths)

	// Message first, then Dataset
	reduceableIndices := []int{4, 0}

	for _, idx := range reduceableIndices {
		if overflow <= 0 {
			break
		}

		minWidth := MinColumnWidths.Message
		if idx == 0 {
			minWidth = MinColumnWidths.Dataset
		}

		maxReduction := result[idx] - minWidth
		if maxReduction <= 0 {
			continue
		}

		reduction := overflow
		if reduction > maxReduction {
			reduction = maxReduction
		}

		result[idx] -= reduction
		overflow -= reduction
	}

	return result
}

// renderStatusCell creates the status cell content with icon and colored text.
func (t *ResultsTable) renderStatusCell(status domain.ValidationStatus) string {
	icon := StatusIcon(status)
	color := t.styles.StatusColors[status]
	style := lipgloss.NewStyle().Foreground(color)
	return icon + " " + style.Render(string(status))
}

// renderStatusCellPadded renders the status cell with proper padding.
// Padding is calculated from the visible character width (excluding ANSI
// codes).
func (t *ResultsTable) renderStatusCellPadded(status domain.ValidationStatus, width int) string {
	plainText := FormatStatusWithIcon(status)
	plainWidth := utf8.RuneCountInString(plainText)

	styledText := t.renderStatusCell(status)

	if plainWidth >= width {
		return styledText
	}
	return styledText + strings.Repeat(" ", width-plainWidth)
}

// formatFileSize renders a size in bytes in human units.
func formatFileSize(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.Bytes(uint64(n))
}
