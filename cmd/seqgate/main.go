// Package main provides the entry point for the seqgate CLI.
package main

import (
	"context"
	"os"

	"github.com/omicsworks/seqgate/internal/cli"
	"github.com/omicsworks/seqgate/internal/signal"
)

// Build information populated at release time via ldflags.
var (
	version string //nolint:gochecknoglobals // set via -ldflags
	commit  string //nolint:gochecknoglobals // set via -ldflags
	date    string //nolint:gochecknoglobals // set via -ldflags
)

func main() {
	handler := signal.NewHandler(context.Background())
	defer handler.Stop()

	err := cli.Execute(handler.Context(), cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	})

	cli.CloseLogFile()

	os.Exit(cli.ExitCodeForError(err))
}
