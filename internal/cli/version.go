// Package cli provides the command-line interface for seqgate.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/omicsworks/seqgate/internal/tui"
)

// AddVersionCommand adds the version command to the root command.
func AddVersionCommand(root *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the seqgate version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runVersion(cmd, os.Stdout)
		},
	}

	root.AddCommand(cmd)
}

// runVersion prints the root command's version string, which formatVersion
// assembled from the build info.
func runVersion(cmd *cobra.Command, w io.Writer) error {
	output := cmd.Flag("output").Value.String()

	if output == OutputJSON {
		return tui.NewOutput(w, OutputJSON).JSON(versionResult{Version: cmd.Root().Version})
	}

	_, _ = fmt.Fprintf(w, "seqgate %s\n", cmd.Root().Version)
	return nil
}

// versionResult is the JSON payload for the version command.
type versionResult struct {
	Version string `json:"version"`
}
