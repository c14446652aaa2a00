package report

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/omicsworks/seqgate/internal/clock"
	"github.com/omicsworks/seqgate/internal/domain"
	"github.com/omicsworks/seqgate/internal/ledger"
)

//go:embed templates/*
var embeddedTemplates embed.FS

// reportFilePerm is the permission for rendered report files.
const reportFilePerm = 0o600

// commaPrinter groups thousands in displayed counts.
//
//nolint:gochecknoglobals // Shared printer, construction is not cheap
var commaPrinter = message.NewPrinter(language.English)

// HTMLWriter renders the cumulative ledger into a standalone HTML document.
// The page carries summary boxes, the full results table, and the generation
// instant; it is a projection of the ledger, never a source of truth.
type HTMLWriter struct {
	templates *template.Template
	clock     clock.Clock
}

// NewHTMLWriter creates an HTMLWriter using the system clock.
func NewHTMLWriter() (*HTMLWriter, error) {
	return NewHTMLWriterWithClock(clock.RealClock{})
}

// NewHTMLWriterWithClock creates an HTMLWriter with an injected clock so
// tests can pin the generation timestamp.
func NewHTMLWriterWithClock(clk clock.Clock) (*HTMLWriter, error) {
	funcMap := template.FuncMap{
		"statusClass": statusClass,
		"byteSize":    byteSize,
		"comma":       commaCount,
		"metricCount": metricCount,
	}
	tmpl, err := template.New("").Funcs(funcMap).ParseFS(embeddedTemplates, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse report templates: %w", err)
	}
	return &HTMLWriter{
		templates: tmpl,
		clock:     clk,
	}, nil
}

// htmlData is the template context for the report page.
type htmlData struct {
	Counts      Counts
	Results     []domain.Record
	GeneratedAt string
}

// Write renders the report for the full ledger to path.
func (w *HTMLWriter) Write(path string, led *ledger.Ledger) error {
	data := htmlData{
		Counts:      Aggregate(led),
		Results:     led.Records(),
		GeneratedAt: w.clock.Now().Format("2006-01-02 15:04:05"),
	}

	var buf bytes.Buffer
	if err := w.templates.ExecuteTemplate(&buf, "report.html", data); err != nil {
		return fmt.Errorf("failed to render HTML report: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), reportFilePerm); err != nil {
		return fmt.Errorf("failed to write HTML report '%s': %w", path, err)
	}
	return nil
}

// statusClass maps a verdict onto its CSS class.
func statusClass(status domain.ValidationStatus) string {
	return "status-" + strings.ToLower(status.String())
}

// byteSize renders a size in bytes in human units.
func byteSize(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.Bytes(uint64(n))
}

// commaCount renders an integer with thousands grouping.
func commaCount(n int) string {
	return commaPrinter.Sprintf("%d", n)
}

// metricCount picks the row-count metric to display for a record: reads for
// FASTQ/BAM, genes for count matrices, probes for microarray tables.
func metricCount(r domain.Record) string {
	switch {
	case r.TotalReads != nil:
		return commaPrinter.Sprintf("%d", *r.TotalReads)
	case r.GeneCount != nil:
		return commaPrinter.Sprintf("%d", *r.GeneCount)
	case r.ProbeCount != nil:
		return commaPrinter.Sprintf("%d", *r.ProbeCount)
	default:
		return "N/A"
	}
}
