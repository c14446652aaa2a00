// Package tui provides terminal output components for seqgate.
package tui

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/omicsworks/seqgate/internal/domain"
	"github.com/omicsworks/seqgate/internal/ledger"
	"github.com/omicsworks/seqgate/internal/report"
)

// WatchConfig controls the live dashboard's refresh loop.
type WatchConfig struct {
	// Interval between report re-reads.
	Interval time.Duration
	// Quiet drops the header and footer, leaving just the table.
	Quiet bool
}

// DefaultWatchConfig returns the dashboard defaults: a two second refresh
// with full chrome.
func DefaultWatchConfig() WatchConfig {
	return WatchConfig{Interval: 2 * time.Second}
}

// LedgerLoader is the slice of the report store the dashboard needs.
// *ledger.FileStore satisfies it.
type LedgerLoader interface {
	Load(ctx context.Context) (*ledger.Ledger, error)
	Path() string
}

// WatchModel is the Bubble Tea model behind "seqgate status --watch".
// Every refresh re-reads the durable report, so records written by a
// concurrent ingest appear within one interval.
type WatchModel struct {
	records    []domain.Record // current snapshot, failures first
	counts     report.Counts
	lastUpdate time.Time
	config     WatchConfig
	width      int
	height     int
	quitting   bool
	err        error // from the most recent refresh
	store      LedgerLoader

	// Bubble Tea commands run outside Update, so the context has to ride
	// along on the model.
	baseCtx context.Context //nolint:containedctx // needed by async tea.Cmd closures
}

// TickMsg asks for the next refresh.
type TickMsg time.Time

// RefreshMsg delivers the outcome of one report re-read.
type RefreshMsg struct {
	Records []domain.Record
	Counts  report.Counts
	Err     error
}

// NewWatchModel wires a dashboard around the given report store. The 80x24
// fallback geometry only matters until the first WindowSizeMsg arrives.
func NewWatchModel(ctx context.Context, store LedgerLoader, cfg WatchConfig) *WatchModel {
	return &WatchModel{
		config:  cfg,
		width:   80,
		height:  24,
		store:   store,
		baseCtx: ctx,
	}
}

// Init kicks off the first load and the refresh timer.
func (m *WatchModel) Init() tea.Cmd {
	return tea.Batch(m.refreshData(), m.tick())
}

// Update advances the model by one message.
func (m *WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if s := msg.String(); s == "q" || s == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case TickMsg:
		return m, m.refreshData()

	case RefreshMsg:
		m.applyRefresh(msg)
		return m, m.tick()
	}

	return m, nil
}

// applyRefresh folds one refresh result into the model. A failed load
// keeps the previous snapshot on screen alongside the error.
func (m *WatchModel) applyRefresh(msg RefreshMsg) {
	if msg.Err != nil {
		m.err = msg.Err
		return
	}

	m.records = msg.Records
	m.counts = msg.Counts
	m.lastUpdate = time.Now()
	m.err = nil
}

// View renders one frame.
func (m *WatchModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	if !m.config.Quiet {
		styles := NewOutputStyles()
		b.WriteString(styles.Info.Bold(true).Render("seqgate ingest status"))
		b.WriteString("\n")
		b.WriteString(styles.Dim.Render("report: " + m.store.Path()))
		b.WriteString("\n\n")
	}

	if m.err != nil {
		fmt.Fprintf(&b, "Error: %v\n", m.err)
	}

	if len(m.records) == 0 {
		b.WriteString("No ingest results yet. Run 'seqgate ingest <files>' to validate data files.\n")
	} else {
		table := NewResultsTable(m.records, WithTerminalWidth(m.width))
		_ = table.Render(&b)

		if !m.config.Quiet {
			b.WriteString("\n")
			b.WriteString(m.buildFooter())
			b.WriteString("\n")
		}
	}

	if !m.lastUpdate.IsZero() {
		fmt.Fprintf(&b, "\nLast updated: %s", m.lastUpdate.Format("15:04:05"))
	}
	b.WriteString("\nPress 'q' to quit")

	return b.String()
}

// Records returns the current snapshot.
func (m *WatchModel) Records() []domain.Record {
	return m.records
}

// LastUpdate reports when the snapshot last changed.
func (m *WatchModel) LastUpdate() time.Time {
	return m.lastUpdate
}

// IsQuitting reports whether a quit key was pressed.
func (m *WatchModel) IsQuitting() bool {
	return m.quitting
}

// Error returns the error from the most recent refresh, if any.
func (m *WatchModel) Error() error {
	return m.err
}

// tick schedules the next TickMsg after the configured interval.
func (m *WatchModel) tick() tea.Cmd {
	return tea.Tick(m.config.Interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// refreshData re-reads the durable report and rebuilds the sorted snapshot.
func (m *WatchModel) refreshData() tea.Cmd {
	return func() tea.Msg {
		ctx := m.baseCtx
		if ctx == nil {
			ctx = context.Background()
		}

		led, err := m.store.Load(ctx)
		if err != nil {
			return RefreshMsg{Err: fmt.Errorf("failed to load report: %w", err)}
		}

		records := led.Records()
		sortByStatusPriority(records)

		return RefreshMsg{Records: records, Counts: report.Aggregate(led)}
	}
}

// sortByStatusPriority orders records failures first, then warnings, then
// passes, with dataset ID breaking ties.
func sortByStatusPriority(records []domain.Record) {
	slices.SortStableFunc(records, func(a, b domain.Record) int {
		if d := statusPriority(b.ValidationStatus) - statusPriority(a.ValidationStatus); d != 0 {
			return d
		}
		return strings.Compare(a.DatasetID, b.DatasetID)
	})
}

// statusPriority ranks a verdict for display. Higher sorts first.
func statusPriority(status domain.ValidationStatus) int {
	switch status {
	case domain.StatusFail:
		return 2
	case domain.StatusWarn:
		return 1
	default:
		return 0
	}
}

// buildFooter renders the summary line, flagging how many datasets need a
// fix before re-running ingest.
func (m *WatchModel) buildFooter() string {
	summary := FormatCounts(m.counts)

	if m.counts.Failed > 0 {
		needWord := "need"
		if m.counts.Failed == 1 {
			needWord = "needs"
		}
		summary += fmt.Sprintf("\n%d %s attention. Re-run 'seqgate ingest' after fixing the inputs.",
			m.counts.Failed, needWord)
	}

	return summary
}
