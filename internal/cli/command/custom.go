package command

import (
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v2"
)

// CustomCommand returns the custom store subcommand group.
func CustomCommand() *cli.Command {
	return &cli.Command{
		Name:    "custom",
		Aliases: []string{"kv"},
		Usage:   "Operate on the shared key/value store",
		Subcommands: []*cli.Command{
			{
				Name:      "set",
				Usage:     "Set a key",
				ArgsUsage: "KEY VALUE",
				Action:    customSet,
			},
			{
				Name:      "get",
				Usage:     "Get a key",
				ArgsUsage: "KEY",
				Action:    customGet,
			},
			{
				Name:      "del",
				Usage:     "Delete a key",
				ArgsUsage: "KEY",
				Action:    customDel,
			},
			{
				Name:      "exists",
				Usage:     "Check whether a key exists",
				ArgsUsage: "KEY",
				Action:    customExists,
			},
			{
				Name:   "keys",
				Usage:  "List all keys",
				Action: customKeys,
			},
		},
	}
}

func customSet(c *cli.Context) error {
	if c.NArg() != 2 {
		return errors.New("usage: custom set KEY VALUE")
	}
	client := newRESPClient(c)
	defer client.Close()

	res, err := client.Do(c.Context, "CUSTOM.SET", c.Args().Get(0), c.Args().Get(1)).Result()
	if err != nil {
		return err
	}
	fmt.Println(res)
	return nil
}

func customGet(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("usage: custom get KEY")
	}
	client := newRESPClient(c)
	defer client.Close()

	res, err := client.Do(c.Context, "CUSTOM.GET", c.Args().Get(0)).Text()
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

func customDel(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("usage: custom del KEY")
	}
	client := newRESPClient(c)
	defer client.Close()

	n, err := client.Do(c.Context, "CUSTOM.DEL", c.Args().Get(0)).Int64()
	if err != nil {
		return err
	}
	fmt.Println(n)
	return nil
}

func customExists(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("usage: custom exists KEY")
	}
	client := newRESPClient(c)
	defer client.Close()

	n, err := client.Do(c.Context, "CUSTOM.EXISTS", c.Args().Get(0)).Int64()
	if err != nil {
		return err
	}
	fmt.Println(n)
	return nil
}

func customKeys(c *cli.Context) error {
	client := newRESPClient(c)
	defer client.Close()

	keys, err := client.Do(c.Context, "CUSTOM.KEYS").StringSlice()
	if err != nil {
		return err
	}
	for _, k := range keys {
		fmt.Println(k)
	}
	return nil
}
