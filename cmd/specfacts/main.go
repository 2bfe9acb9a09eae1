// Package main implements the specfacts CLI.
// It provides commands for analyzing WebIDL fragments, parsing CSS value
// grammars and extracting machine-readable facts from saved spec pages.
package main

import (
	"os"

	"github.com/w3c/specfacts/cmd/specfacts/commands"
)

var version = "dev"

func main() {
	commands.RootCmd.Flags().BoolP("version", "v", false, "Print version information")
	commands.RootCmd.SetVersionTemplate(`specfacts version {{.Version}}
`)
	commands.RootCmd.Version = version

	if err := commands.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
