// Package tui provides terminal output components for seqgate.
//
// This package centralizes the Lip Gloss style system so every command
// renders validation verdicts the same way. All colors use AdaptiveColor for
// light/dark terminal support, and every status display keeps triple
// redundancy: icon + color + text.
//
// Call CheckNoColor() at the start of commands that print styled text so the
// NO_COLOR environment variable is honored. Colors are also disabled when
// TERM=dumb.
package tui

import (
	"os"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/omicsworks/seqgate/internal/domain"
)

//nolint:gochecknoglobals // Intentional package-level constants for TUI styling API
var (
	// ColorPrimary is blue, used for informational text and report paths.
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#0087AF", Dark: "#00D7FF"}

	// ColorSuccess is green, used for PASS verdicts.
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#008700", Dark: "#00FF87"}

	// ColorWarning is yellow, used for WARN verdicts.
	ColorWarning = lipgloss.AdaptiveColor{Light: "#AF8700", Dark: "#FFD700"}

	// ColorError is red, used for FAIL verdicts.
	ColorError = lipgloss.AdaptiveColor{Light: "#AF0000", Dark: "#FF5F5F"}

	// ColorMuted is gray, used for secondary text such as duplicate notes.
	ColorMuted = lipgloss.AdaptiveColor{Light: "#585858", Dark: "#6C6C6C"}
)

// StatusColors returns the semantic color for each validation verdict.
// Uses AdaptiveColor for light/dark terminal support.
func StatusColors() map[domain.ValidationStatus]lipgloss.AdaptiveColor {
	return map[domain.ValidationStatus]lipgloss.AdaptiveColor{
		domain.StatusPass: ColorSuccess,
		domain.StatusWarn: ColorWarning,
		domain.StatusFail: ColorError,
	}
}

// StatusIcon returns the icon for a validation verdict. Icons are paired
// with color and the verdict text wherever a status is displayed.
func StatusIcon(status domain.ValidationStatus) string {
	switch status {
	case domain.StatusPass:
		return "✓"
	case domain.StatusWarn:
		return "⚠"
	case domain.StatusFail:
		return "✗"
	default:
		return "?"
	}
}

// FormatStatusWithIcon formats a verdict with its icon for triple redundancy.
// Color is applied via Lip Gloss styles when rendering; this function
// provides icon + text.
func FormatStatusWithIcon(status domain.ValidationStatus) string {
	return StatusIcon(status) + " " + string(status)
}

// TableStyles holds lipgloss styles for table rendering.
type TableStyles struct {
	Header       lipgloss.Style
	Cell         lipgloss.Style
	Dim          lipgloss.Style
	StatusColors map[domain.ValidationStatus]lipgloss.AdaptiveColor
}

// NewTableStyles creates styles for table rendering.
func NewTableStyles() *TableStyles {
	return &TableStyles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#DDDDDD"}),
		Cell: lipgloss.NewStyle(),
		Dim: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#888888"}),
		StatusColors: StatusColors(),
	}
}

// OutputStyles holds common output styles.
type OutputStyles struct {
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Dim     lipgloss.Style
}

// NewOutputStyles creates common output styles using AdaptiveColor for
// light/dark terminal support.
func NewOutputStyles() *OutputStyles {
	return &OutputStyles{
		Success: lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true),
		Error: lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true),
		Warning: lipgloss.NewStyle().
			Foreground(ColorWarning),
		Info: lipgloss.NewStyle().
			Foreground(ColorPrimary),
		Dim: lipgloss.NewStyle().
			Foreground(ColorMuted),
	}
}

// CheckNoColor downgrades lipgloss to plain ASCII when the environment
// asks for no color. Call it at the start of commands that print styled
// text.
func CheckNoColor() {
	if !HasColorSupport() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// HasColorSupport reports whether styled output is appropriate: false when
// NO_COLOR is present with any value (per https://no-color.org/) or when
// TERM=dumb.
func HasColorSupport() bool {
	if _, noColor := os.LookupEnv("NO_COLOR"); noColor {
		return false
	}
	return os.Getenv("TERM") != "dumb"
}

// ansiRe matches the escape sequences lipgloss emits: CSI color codes and
// OSC sequences terminated by BEL or ST.
//
//nolint:gochecknoglobals // compiled pattern
var ansiRe = regexp.MustCompile(`\x1b\[[0-9;?]*[a-zA-Z]|\x1b\][^\x07\x1b]*(?:\x07|\x1b\\)`)

// stripANSI removes ANSI escape sequences so width math counts only the
// visible characters.
func stripANSI(s string) string {
	return ansiRe.ReplaceAllString(s, "")
}

// padRight pads s with spaces up to width, counting visible runes only.
// Strings already at or past the width are cut to it.
func padRight(s string, width int) string {
	visible := utf8.RuneCountInString(stripANSI(s))
	if visible >= width {
		runes := []rune(s)
		return string(runes[:width])
	}
	return s + strings.Repeat(" ", width-visible)
}

// truncate shortens a string to at most width runes, replacing the final
// rune with an ellipsis when truncation occurs.
func truncate(s string, width int) string {
	if width <= 1 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}
