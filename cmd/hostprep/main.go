// Package main is the entry point for the hostprep CLI.
//
// hostprep installs the Docker engine from the upstream apt repository on an
// Ubuntu machine, writes a fixed daemon policy and smoke-tests the result.
// It runs against the local machine or, with --host, over SSH.
//
// Commands: install (default), doctor, config, version.
//
// For detailed usage information, run:
//
//	hostprep --help
package main

import (
	"fmt"
	"os"

	"github.com/imamik/hostprep/cmd/hostprep/commands"
	"github.com/imamik/hostprep/internal/provisioning"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(provisioning.ExitCode(err))
	}
}
