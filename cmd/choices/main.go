// Package main is the entry point for the choices companion tool.
package main

import (
	"fmt"
	"os"

	"github.com/zjrosen/choices/internal/cli"
)

// Build information injected via ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	versionString := fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
	cli.SetVersion(versionString)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
