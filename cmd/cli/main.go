// Package main is the entry point for the jmctl CLI.
// The CLI is the administrator terminal tool for the jobmanager API.
package main

import (
	"os"

	"jobmanager/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
