// Package main is the entry point for the sparkfmt CLI.
package main

import (
	"os"

	"github.com/sparkfmt/sparkfmt/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
