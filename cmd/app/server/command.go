package server

import "github.com/urfave/cli/v2"

func Command() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "start the http server",
		Action: func(c *cli.Context) error {
			Run()
			return nil
		},
	}
}
