// Package cli provides the command-line interface for seqgate.
package cli

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/omicsworks/seqgate/internal/config"
	"github.com/omicsworks/seqgate/internal/ctxutil"
	"github.com/omicsworks/seqgate/internal/errors"
	"github.com/omicsworks/seqgate/internal/tui"
)

// doctorSeparatorWidth is the width of the tool table header rule.
const doctorSeparatorWidth = 43

// AddDoctorCommand adds the doctor command to the root command.
func AddDoctorCommand(root *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check availability of external tools",
		Long: `Check which external tools seqgate can use and how their absence affects
validation depth.

seqgate works without any of them: BAM files are still checked structurally,
but read counts and pairing flags come from samtools, so verification runs at
reduced depth when it is missing.

Examples:
  seqgate doctor            # Human-readable tool table
  seqgate doctor -o json    # Machine-readable detection results`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := runDoctor(cmd.Context(), cmd, os.Stdout)
			// If JSON error was already output, silence cobra's error printing
			// but still return error for non-zero exit code
			if stderrors.Is(err, errors.ErrJSONErrorOutput) {
				cmd.SilenceErrors = true
			}
			return err
		},
	}

	root.AddCommand(cmd)
}

// runDoctor executes the doctor command.
func runDoctor(ctx context.Context, cmd *cobra.Command, w io.Writer) error {
	// Check for cancellation at entry
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	// Get output format from global flags
	output := cmd.Flag("output").Value.String()

	return runDoctorWithDetector(ctx, w, output, config.NewToolDetector())
}

// runDoctorWithDetector executes the doctor command with an injected detector.
func runDoctorWithDetector(ctx context.Context, w io.Writer, output string, detector config.ToolDetector) error {
	// Respect NO_COLOR environment variable
	tui.CheckNoColor()

	result, err := detector.Detect(ctx)
	if err != nil {
		if output == OutputJSON {
			_ = outputDoctorErrorJSON(w, fmt.Sprintf("tool detection failed: %v", err))
			return stderrors.Join(err, errors.ErrJSONErrorOutput)
		}
		return fmt.Errorf("tool detection failed: %w", err)
	}

	if output == OutputJSON {
		return tui.NewOutput(w, OutputJSON).JSON(result)
	}

	styles := newDoctorStyles()
	displayToolTable(w, result, styles)

	if result.DegradedVerification {
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintln(w, styles.warning.Render("Verification runs at reduced depth:"))
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprint(w, config.FormatDegradedToolsNotice(result.DegradedTools()))
		return nil
	}

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, styles.success.Render("✓ All tools available for full-depth verification."))

	return nil
}

// doctorStyles holds the lipgloss styles for doctor output.
type doctorStyles struct {
	installed lipgloss.Style
	missing   lipgloss.Style
	outdated  lipgloss.Style
	dim       lipgloss.Style
	success   lipgloss.Style
	warning   lipgloss.Style
}

// newDoctorStyles creates the styles for doctor command output.
func newDoctorStyles() *doctorStyles {
	return &doctorStyles{
		installed: lipgloss.NewStyle().Foreground(tui.ColorSuccess),
		missing:   lipgloss.NewStyle().Foreground(tui.ColorError),
		outdated:  lipgloss.NewStyle().Foreground(tui.ColorWarning),
		dim:       lipgloss.NewStyle().Foreground(tui.ColorMuted),
		success:   lipgloss.NewStyle().Foreground(tui.ColorSuccess).Bold(true),
		warning:   lipgloss.NewStyle().Foreground(tui.ColorWarning).Bold(true),
	}
}

// displayToolTable displays a formatted table of tool status.
// The styled status column comes last so ANSI escapes never skew the padding.
func displayToolTable(w io.Writer, result *config.ToolDetectionResult, styles *doctorStyles) {
	_, _ = fmt.Fprintln(w, styles.dim.Render("TOOL            VERSION        STATUS"))
	_, _ = fmt.Fprintln(w, styles.dim.Render(strings.Repeat("─", doctorSeparatorWidth)))

	for _, tool := range result.Tools {
		version := tool.CurrentVersion
		if version == "" {
			version = "-"
		}
		if len(version) > 12 {
			version = version[:12]
		}

		name := fmt.Sprintf("%-15s", tool.Name)
		ver := fmt.Sprintf("%-14s", version)

		_, _ = fmt.Fprintf(w, "%s %s %s\n", name, ver, formatToolStatus(tool, styles))
	}
}

// formatToolStatus returns a styled status string for a tool.
func formatToolStatus(tool config.Tool, styles *doctorStyles) string {
	switch tool.Status {
	case config.ToolStatusInstalled:
		return styles.installed.Render("✓ installed")
	case config.ToolStatusMissing:
		return styles.missing.Render("✗ missing")
	case config.ToolStatusOutdated:
		return styles.outdated.Render("⚠ outdated")
	default:
		return styles.dim.Render("? unknown")
	}
}

// doctorErrorResult is the JSON payload for a failed doctor command.
type doctorErrorResult struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

// outputDoctorErrorJSON outputs an error result as JSON.
func outputDoctorErrorJSON(w io.Writer, errMsg string) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(doctorErrorResult{Status: "error", Error: errMsg})
}
