package command

import (
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v2"
)

// Build information, set via ldflags.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "sesskv-cli",
		Usage:   "sesskv command-line management tool",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildTime),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			CustomCommand(),
			SessionCommand(),
			BridgeCommand(),
		},
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "sesskv RESP server address",
			EnvVars: []string{"SESSKV_SERVER"},
			Value:   "localhost:7379",
		},
		&cli.StringFlag{
			Name:    "admin",
			Aliases: []string{"a"},
			Usage:   "sesskv admin HTTP address",
			EnvVars: []string{"SESSKV_ADMIN"},
			Value:   "localhost:7480",
		},
	}
}

// newRESPClient dials the RESP server named by the global --server flag.
// The server speaks RESP2 and rejects HELLO; go-redis falls back cleanly.
func newRESPClient(c *cli.Context) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:       c.String("server"),
		MaxRetries: -1,
	})
}

// PrintError prints an error message to stderr.
func PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
