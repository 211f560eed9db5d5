package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/camkit/pkg/canm"
)

func tracksCmd() *cli.Command {
	return &cli.Command{
		Name:  "tracks",
		Usage: "List the eight animation channels in file order",
		Action: func(ctx context.Context, c *cli.Command) error {
			w := c.Root().Writer
			for i, s := range canm.TrackSelections() {
				fmt.Fprintf(w, "%d  %s\n", i, s)
			}
			return nil
		},
	}
}
