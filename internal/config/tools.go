// Package config provides configuration management for seqgate.
// This file implements detection of the external tools that deepen
// verification.
package config

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/omicsworks/seqgate/internal/constants"
)

// Version extraction patterns, compiled once.
//
//nolint:gochecknoglobals // compiled patterns
var (
	samtoolsVersionRe = regexp.MustCompile(`samtools (\d+\.\d+(?:\.\d+)?)`)
	gzipVersionRe     = regexp.MustCompile(`gzip (\d+\.\d+(?:\.\d+)?)`)
	genericVersionRe  = regexp.MustCompile(`v?(\d+\.\d+(?:\.\d+)?)`)
)

// ToolStatus represents the installation status of an external tool.
//
//nolint:recvcheck // UnmarshalJSON needs a pointer receiver
type ToolStatus int

const (
	// ToolStatusMissing indicates the tool is not on PATH.
	ToolStatusMissing ToolStatus = iota

	// ToolStatusInstalled indicates the tool is present and current enough.
	ToolStatusInstalled

	// ToolStatusOutdated indicates the tool is present but older than the
	// recommended minimum.
	ToolStatusOutdated
)

// maxVersionSegments is how many dotted segments version comparison reads.
const maxVersionSegments = 3

// String returns the lowercase status label used in tables and JSON.
func (s ToolStatus) String() string {
	switch s {
	case ToolStatusInstalled:
		return "installed"
	case ToolStatusMissing:
		return "missing"
	case ToolStatusOutdated:
		return "outdated"
	default:
		return "unknown"
	}
}

// MarshalJSON writes the status as its lowercase label.
func (s ToolStatus) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(s.String())), nil
}

// UnmarshalJSON reads a lowercase label back. Anything unrecognized decodes
// as missing rather than failing the whole document.
func (s *ToolStatus) UnmarshalJSON(data []byte) error {
	switch strings.Trim(string(data), `"`) {
	case "installed":
		*s = ToolStatusInstalled
	case "outdated":
		*s = ToolStatusOutdated
	default:
		*s = ToolStatusMissing
	}
	return nil
}

// Tool represents an external tool that seqgate can make use of.
type Tool struct {
	// Name is the tool identifier (e.g., "samtools").
	Name string `json:"name"`

	// FullDepth indicates whether the tool is needed for full-depth
	// verification. seqgate still runs without it, but the affected
	// verdicts degrade to WARN.
	FullDepth bool `json:"full_depth"`

	// MinVersion is the minimum recommended version (semver format).
	MinVersion string `json:"min_version"`

	// CurrentVersion is the detected installed version.
	CurrentVersion string `json:"current_version"`

	// Status is the current installation status.
	Status ToolStatus `json:"status"`

	// InstallHint provides installation instructions for missing tools.
	InstallHint string `json:"install_hint"`

	// Purpose describes what seqgate uses the tool for.
	Purpose string `json:"purpose"`
}

// ToolDetectionResult holds the results of detecting all tools.
type ToolDetectionResult struct {
	// Tools contains the detection result for each tool, in catalog order.
	Tools []Tool `json:"tools"`

	// DegradedVerification indicates that a full-depth tool is missing or
	// outdated, so some verdicts will be reduced to WARN.
	DegradedVerification bool `json:"degraded_verification"`
}

// DegradedTools returns the full-depth tools that are missing or outdated.
func (r *ToolDetectionResult) DegradedTools() []Tool {
	var degraded []Tool
	for _, tool := range r.Tools {
		if tool.FullDepth && tool.Status != ToolStatusInstalled {
			degraded = append(degraded, tool)
		}
	}
	return degraded
}

// CommandExecutor abstracts PATH lookup and subprocess execution so tests
// can stand in for the real system.
type CommandExecutor interface {
	// LookPath searches for an executable named file in the PATH.
	LookPath(file string) (string, error)

	// Run executes a command and returns its combined output.
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// DefaultCommandExecutor implements CommandExecutor using os/exec.
type DefaultCommandExecutor struct{}

// LookPath searches for an executable in the PATH.
func (e *DefaultCommandExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// Run executes a command and returns its combined stdout and stderr.
func (e *DefaultCommandExecutor) Run(ctx context.Context, name string, args ...string) (string, error) {
	output, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	return string(output), err
}

// ToolDetector detects the installation status of external tools.
type ToolDetector interface {
	// Detect checks all configured tools and returns their status.
	Detect(ctx context.Context) (*ToolDetectionResult, error)
}

// DefaultToolDetector implements ToolDetector against the local system.
type DefaultToolDetector struct {
	executor CommandExecutor
}

// NewToolDetector creates a detector backed by the real PATH and exec.
func NewToolDetector() *DefaultToolDetector {
	return &DefaultToolDetector{
		executor: &DefaultCommandExecutor{},
	}
}

// NewToolDetectorWithExecutor creates a detector with a custom executor.
func NewToolDetectorWithExecutor(executor CommandExecutor) *DefaultToolDetector {
	return &DefaultToolDetector{
		executor: executor,
	}
}

// toolSpec describes how to probe one external tool.
type toolSpec struct {
	name        string
	command     string
	versionFlag string
	minVersion  string
	fullDepth   bool
	installHint string
	purpose     string
	parse       func(output string) string
}

// toolCatalog lists every tool worth probing. samtools is the only one
// whose absence changes verdicts; gzip is surfaced as operator convenience
// because compressed inputs are decompressed in-process.
func toolCatalog() []toolSpec {
	return []toolSpec{
		{
			name:        constants.ToolSamtools,
			command:     constants.ToolSamtools,
			versionFlag: constants.VersionFlagStandard,
			minVersion:  "1.9",
			fullDepth:   true,
			installHint: "Install samtools: apt install samtools, brew install samtools, or see https://www.htslib.org",
			purpose:     "read counts and pairing flags for BAM files (flagstat)",
			parse:       parseSamtoolsVersion,
		},
		{
			name:        constants.ToolGzip,
			command:     constants.ToolGzip,
			versionFlag: constants.VersionFlagStandard,
			minVersion:  "",
			fullDepth:   false,
			installHint: "gzip ships with most systems; see https://www.gnu.org/software/gzip/",
			purpose:     "operator convenience when inspecting .gz inputs by hand",
			parse:       parseGzipVersion,
		},
	}
}

// Detect probes every tool in the catalog in parallel and reports whether
// verification depth is reduced.
func (d *DefaultToolDetector) Detect(ctx context.Context) (*ToolDetectionResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	detectCtx, cancel := context.WithTimeout(ctx, constants.ToolDetectionTimeout)
	defer cancel()

	specs := toolCatalog()
	tools := make([]Tool, len(specs))

	g, gCtx := errgroup.WithContext(detectCtx)
	for i, spec := range specs {
		g.Go(func() error {
			tools[i] = d.detectTool(gCtx, spec)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to detect tools: %w", err)
	}

	result := &ToolDetectionResult{Tools: tools}
	for _, tool := range tools {
		if tool.FullDepth && tool.Status != ToolStatusInstalled {
			result.DegradedVerification = true
			break
		}
	}

	return result, nil
}

// detectTool probes one tool: PATH lookup first, then the version command.
// A tool that is on PATH but will not report a parseable version counts as
// installed with an unknown version; only a failed lookup means missing.
func (d *DefaultToolDetector) detectTool(ctx context.Context, spec toolSpec) Tool {
	tool := Tool{
		Name:        spec.name,
		FullDepth:   spec.fullDepth,
		MinVersion:  spec.minVersion,
		InstallHint: spec.installHint,
		Purpose:     spec.purpose,
		Status:      ToolStatusMissing,
	}

	if _, err := d.executor.LookPath(spec.command); err != nil {
		return tool
	}

	tool.Status = ToolStatusInstalled
	tool.CurrentVersion = "unknown"

	output, err := d.executor.Run(ctx, spec.command, spec.versionFlag)
	if err != nil {
		return tool
	}

	version := spec.parse(output)
	if version == "" {
		return tool
	}

	tool.CurrentVersion = version
	if spec.minVersion != "" && CompareVersions(version, spec.minVersion) < 0 {
		tool.Status = ToolStatusOutdated
	}

	return tool
}

// parseSamtoolsVersion extracts "1.19.2" from output like
// "samtools 1.19.2\nUsing htslib 1.19.1".
func parseSamtoolsVersion(output string) string {
	if matches := samtoolsVersionRe.FindStringSubmatch(output); len(matches) >= 2 {
		return matches[1]
	}
	return ""
}

// parseGzipVersion extracts "1.12" from output like "gzip 1.12\nCopyright
// ...". Apple and some BSD builds print "Apple gzip 430.140.4", which only
// the generic pattern matches.
func parseGzipVersion(output string) string {
	if matches := gzipVersionRe.FindStringSubmatch(output); len(matches) >= 2 {
		return matches[1]
	}
	if matches := genericVersionRe.FindStringSubmatch(output); len(matches) >= 2 {
		return matches[1]
	}
	return ""
}

// CompareVersions compares two dotted versions segment by segment.
// It returns -1 when current is older than required, 0 when equal, and 1
// when newer. A leading "v" is ignored and absent segments count as zero.
func CompareVersions(current, required string) int {
	currentParts := parseVersionParts(strings.TrimPrefix(current, "v"))
	requiredParts := parseVersionParts(strings.TrimPrefix(required, "v"))

	for i := range maxVersionSegments {
		if currentParts[i] != requiredParts[i] {
			if currentParts[i] < requiredParts[i] {
				return -1
			}
			return 1
		}
	}

	return 0
}

// parseVersionParts reads up to three numeric segments from a dotted
// version string. A segment's non-numeric tail is dropped, so "1.9.x"
// reads as [1 9 0].
func parseVersionParts(version string) [maxVersionSegments]int {
	var parts [maxVersionSegments]int

	for i, segment := range strings.Split(version, ".") {
		if i == maxVersionSegments {
			break
		}
		if cut := strings.IndexFunc(segment, func(r rune) bool { return r < '0' || r > '9' }); cut >= 0 {
			segment = segment[:cut]
		}
		if segment != "" {
			parts[i], _ = strconv.Atoi(segment)
		}
	}

	return parts
}

// FormatDegradedToolsNotice renders the remediation block doctor and ingest
// print when a full-depth tool is missing or outdated. An empty input
// yields an empty string.
func FormatDegradedToolsNotice(degraded []Tool) string {
	if len(degraded) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("Tools unavailable for full-depth verification:\n\n")

	for _, tool := range degraded {
		status := "missing"
		if tool.Status == ToolStatusOutdated {
			status = fmt.Sprintf("outdated (have %s, recommend %s)", tool.CurrentVersion, tool.MinVersion)
		}
		fmt.Fprintf(&sb, "  • %s: %s\n", tool.Name, status)
		fmt.Fprintf(&sb, "    Affects: %s\n", tool.Purpose)
		fmt.Fprintf(&sb, "    Install: %s\n\n", tool.InstallHint)
	}

	return sb.String()
}
