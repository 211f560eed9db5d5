package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/camkit/internal/document"
	"github.com/samcharles93/camkit/internal/logger"
	"github.com/samcharles93/camkit/pkg/canm"
)

func encodeCmd() *cli.Command {
	var (
		inPath     string
		outPath    string
		formatName string
		family     string
		legacy     bool
	)

	return &cli.Command{
		Name:  "encode",
		Usage: "Build a container from an edited JSON/YAML document (or a directory of them)",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "input",
				Aliases:     []string{"i"},
				Usage:       "document file or directory",
				Required:    true,
				Destination: &inPath,
			},
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "output container (\"-\" for stdout; default: next to the input)",
				Destination: &outPath,
			},
			&cli.StringFlag{
				Name:        "format",
				Aliases:     []string{"f"},
				Usage:       "document format (json, yaml; default: from the input extension)",
				Destination: &formatName,
			},
			familyFlag(&family),
			&cli.BoolFlag{
				Name:        "legacy",
				Usage:       "write track records the way older tools did (pool length as the frame count)",
				Destination: &legacy,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			log := logger.FromContext(ctx)

			applyEncodeConfig(c, appConfig, &family, &legacy)
			codec, err := newCodec(family, legacy)
			if err != nil {
				return cli.Exit("error: "+err.Error(), 2)
			}

			inputs, err := expandInputs(inPath, ".json", ".yaml", ".yml")
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			if len(inputs) > 1 && outPath != "" {
				return cli.Exit("error: --output cannot be used with a directory input", 2)
			}

			for _, in := range inputs {
				format, err := encodeFormat(formatName, in)
				if err != nil {
					return cli.Exit("error: "+err.Error(), 2)
				}
				src, err := os.ReadFile(in)
				if err != nil {
					return cli.Exit(fmt.Sprintf("error: read %s: %v", in, err), 1)
				}
				a, err := document.Unmarshal(src, format)
				if err != nil {
					return cli.Exit(fmt.Sprintf("error: %s: %v", in, err), 1)
				}

				dst, _, err := resolveOutput(in, outPath, "."+codec.Family.Name)
				if err != nil {
					return cli.Exit(fmt.Sprintf("error: %v", err), 1)
				}
				stats, err := writeContainer(c.Root().Writer, codec, dst, a)
				if err != nil {
					return cli.Exit(fmt.Sprintf("error: encode %s: %v", in, err), 1)
				}
				log.Info("encoded",
					"input", in,
					"output", dst,
					"bytes", stats.FileSize,
					"pool_values", stats.PoolValues,
					"shared_tracks", stats.SharedRuns,
				)
			}
			return nil
		},
	}
}

// writeContainer encodes a to dst, or to stdout when dst is "-".
func writeContainer(stdout io.Writer, codec *canm.Codec, dst string, a *canm.Animation) (canm.EncodeStats, error) {
	if dst != stdoutPath {
		return codec.WriteFileWithStats(dst, a)
	}
	data, stats, err := codec.EncodeWithStats(a)
	if err != nil {
		return canm.EncodeStats{}, err
	}
	if _, err := stdout.Write(data); err != nil {
		return canm.EncodeStats{}, fmt.Errorf("%w: %w", canm.ErrIO, err)
	}
	return stats, nil
}

func encodeFormat(name, inPath string) (document.Format, error) {
	if name != "" {
		return document.ParseFormat(name)
	}
	if f, ok := document.FormatFromPath(inPath); ok {
		return f, nil
	}
	return "", fmt.Errorf("cannot infer document format of %s; set --format", inPath)
}
