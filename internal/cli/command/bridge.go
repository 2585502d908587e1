package command

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
)

// BridgeCommand returns the bridge diagnostics subcommand group.
func BridgeCommand() *cli.Command {
	return &cli.Command{
		Name:  "bridge",
		Usage: "Inspect and control the store bridge",
		Subcommands: []*cli.Command{
			{
				Name:   "status",
				Usage:  "Show the resolver's current path",
				Action: bridgeStatus,
			},
			{
				Name:   "resolve",
				Usage:  "Discard the cached decision and resolve again",
				Action: bridgeResolve,
			},
		},
	}
}

func adminURL(c *cli.Context, path string) string {
	addr := c.String("admin")
	if !strings.Contains(addr, "://") {
		addr = "http://" + addr
	}
	return strings.TrimSuffix(addr, "/") + path
}

func adminClient() *http.Client {
	return &http.Client{Timeout: 10 * time.Second}
}

func bridgeStatus(c *cli.Context) error {
	req, err := http.NewRequestWithContext(c.Context, http.MethodGet, adminURL(c, "/v1/bridge"), nil)
	if err != nil {
		return err
	}
	return doAdmin(req)
}

func bridgeResolve(c *cli.Context) error {
	req, err := http.NewRequestWithContext(c.Context, http.MethodPost, adminURL(c, "/v1/bridge/resolve"), nil)
	if err != nil {
		return err
	}
	return doAdmin(req)
}

func doAdmin(req *http.Request) error {
	resp, err := adminClient().Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("admin api: %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}
	fmt.Print(string(body))
	return nil
}
