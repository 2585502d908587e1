// Package command provides CLI command definitions for sesskv-cli.
//
// It uses urfave/cli/v2 for command parsing. The custom and session
// groups speak the RESP command surface through go-redis; the bridge
// group talks to the admin HTTP endpoints.
package command
