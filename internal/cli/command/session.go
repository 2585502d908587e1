package command

import (
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v2"
)

// SessionCommand returns the session subcommand group.
func SessionCommand() *cli.Command {
	return &cli.Command{
		Name:    "session",
		Aliases: []string{"sess"},
		Usage:   "Manage sessions",
		Subcommands: []*cli.Command{
			{
				Name:      "create",
				Usage:     "Create (or fetch) the session for a user key",
				ArgsUsage: "USER_KEY",
				Action:    sessionCreate,
			},
			{
				Name:      "get",
				Usage:     "Get session details as JSON",
				ArgsUsage: "SESSION_ID",
				Action:    sessionGet,
			},
			{
				Name:   "list",
				Usage:  "List sessions",
				Action: sessionList,
			},
			{
				Name:      "add-data",
				Usage:     "Attach a data attribute to a session",
				ArgsUsage: "SESSION_ID KEY VALUE",
				Action:    sessionAddData,
			},
			{
				Name:      "get-data",
				Usage:     "Read a data attribute from a session",
				ArgsUsage: "SESSION_ID KEY",
				Action:    sessionGetData,
			},
			{
				Name:      "delete",
				Usage:     "Delete a session",
				ArgsUsage: "SESSION_ID",
				Action:    sessionDelete,
			},
		},
	}
}

func sessionCreate(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("usage: session create USER_KEY")
	}
	client := newRESPClient(c)
	defer client.Close()

	res, err := client.Do(c.Context, "SESSION.CREATE", c.Args().Get(0)).Result()
	if err != nil {
		return err
	}
	fmt.Println(res)
	return nil
}

func sessionGet(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("usage: session get SESSION_ID")
	}
	client := newRESPClient(c)
	defer client.Close()

	res, err := client.Do(c.Context, "SESSION.GET", c.Args().Get(0)).Text()
	if errors.Is(err, redis.Nil) {
		fmt.Println("(nil)")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Println(res)
	return nil
}

func sessionList(c *cli.Context) error {
	client := newRESPClient(c)
	defer client.Close()

	lines, err := client.Do(c.Context, "SESSION.LIST").StringSlice()
	if err != nil {
		return err
	}
	for _, line := range lines {
		fmt.Println(line)
	}
	return nil
}

func sessionAddData(c *cli.Context) error {
	if c.NArg() != 3 {
		return errors.New("usage: session add-data SESSION_ID KEY VALUE")
	}
	client := newRESPClient(c)
	defer client.Close()

	res, err := client.Do(c.Context, "SESSION.ADD_DATA",
		c.Args().Get(0), c.Args().Get(1), c.Args().Get(2)).Result()
	if err != nil {
		return err
	}
	fmt.Println(res)
	return nil
}

func sessionGetData(c *cli.Context) error {
	if c.NArg() != 2 {
		return errors.New("usage: session get-data SESSION_ID KEY")
	}
	client := newRESPClient(c)
	defer client.Close()

	res, err := client.Do(c.Context, "SESSION.GET_DATA",
		c.Args().Get(0), c.Args().Get(1)).Text()
	if errors.Is(err, redis.Nil) {
		fmt.Println("(nil)")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Println(res)
	return nil
}

func sessionDelete(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("usage: session delete SESSION_ID")
	}
	client := newRESPClient(c)
	defer client.Close()

	n, err := client.Do(c.Context, "SESSION.DELETE", c.Args().Get(0)).Int64()
	if err != nil {
		return err
	}
	fmt.Println(n)
	return nil
}
