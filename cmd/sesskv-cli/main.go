// Package main provides the entry point for sesskv-cli.
//
// sesskv-cli is the command-line management tool for sesskv, issuing
// store and session commands over the RESP surface and bridge
// diagnostics over the admin HTTP endpoints.
package main

import (
	"fmt"
	"os"

	"github.com/modware/sesskv/internal/cli/command"
)

func main() {
	app := command.App()

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
