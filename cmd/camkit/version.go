package main

import (
	"context"
	"fmt"

	"github.com/samcharles93/camkit/internal/version"

	"github.com/urfave/cli/v3"
)

func versionCmd() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print version information",
		Action: func(ctx context.Context, c *cli.Command) error {
			w := c.Root().Writer
			info := version.Resolve()
			fmt.Fprintf(w, "camkit %s\n", info.Version)
			if info.Commit != "" {
				fmt.Fprintf(w, "commit:     %s\n", info.Commit)
			}
			if info.BuildTime != "" {
				fmt.Fprintf(w, "build time: %s\n", info.BuildTime)
			}
			fmt.Fprintf(w, "formats:    %s\n", version.Formats())
			return nil
		},
	}
}
