// Package main provides the entry point for the repro CLI.
package main

import (
	"context"
	"os"

	"github.com/mrz1836/repro/internal/cli"
	"github.com/mrz1836/repro/internal/signal"
)

// Set at build time via ldflags.
//
//nolint:gochecknoglobals // ldflags targets
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	handler := signal.NewHandler(context.Background())

	err := cli.Execute(handler.Context(), cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	})
	handler.Stop()

	os.Exit(cli.ExitCodeForError(err))
}
