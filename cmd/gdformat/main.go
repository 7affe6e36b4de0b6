// Package main is the entry point for the gdformat CLI.
package main

import (
	"os"

	"github.com/gdtoolsuite/gdtools/internal/cli"
	"github.com/gdtoolsuite/gdtools/internal/logging"
)

//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewGdformatCommand(info)
	err := rootCmd.Execute()

	if err != nil && !cli.IsExpectedExit(err) {
		logging.Default().Error("command failed", logging.FieldError, err)
	}

	return cli.ExitCode(err)
}
