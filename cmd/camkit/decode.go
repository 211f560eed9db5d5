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

func decodeCmd() *cli.Command {
	var (
		inPath     string
		outPath    string
		formatName string
		family     string
	)

	return &cli.Command{
		Name:  "decode",
		Usage: "Convert a container (or a directory of them) to an editable JSON/YAML document",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "input",
				Aliases:     []string{"i"},
				Usage:       "container file or directory",
				Required:    true,
				Destination: &inPath,
			},
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "output document (\"-\" for stdout; default: next to the input)",
				Destination: &outPath,
			},
			&cli.StringFlag{
				Name:        "format",
				Aliases:     []string{"f"},
				Usage:       "document format (json, yaml)",
				Destination: &formatName,
			},
			familyFlag(&family),
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			log := logger.FromContext(ctx)

			format, err := decodeFormat(c, formatName, outPath)
			if err != nil {
				return cli.Exit("error: "+err.Error(), 2)
			}
			applyFamilyConfig(c, appConfig, &family)
			codec, err := newCodec(family, false)
			if err != nil {
				return cli.Exit("error: "+err.Error(), 2)
			}

			inputs, err := expandInputs(inPath, containerExts()...)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			if len(inputs) > 1 && outPath != "" {
				return cli.Exit("error: --output cannot be used with a directory input", 2)
			}

			for _, in := range inputs {
				a, err := codec.ReadFile(in)
				if err != nil {
					return cli.Exit(fmt.Sprintf("error: decode %s: %v", in, err), 1)
				}
				data, err := document.Marshal(a, format)
				if err != nil {
					return cli.Exit(fmt.Sprintf("error: %s: %v", in, err), 1)
				}
				dst, _, err := resolveOutput(in, outPath, "."+string(format))
				if err != nil {
					return cli.Exit(fmt.Sprintf("error: %v", err), 1)
				}
				if err := writeOutput(c.Root().Writer, dst, data); err != nil {
					return cli.Exit(fmt.Sprintf("error: write %s: %v", dst, err), 1)
				}
				log.Info("decoded", "input", in, "output", dst, "frame_type", a.Header.FrameType, "full_frames", a.FullFrames)
			}
			return nil
		},
	}
}

// decodeFormat resolves the document format: --format, then the output
// extension, then the config file, then JSON.
func decodeFormat(c *cli.Command, name, outPath string) (document.Format, error) {
	if name == "" && outPath != "" && outPath != stdoutPath {
		if f, ok := document.FormatFromPath(outPath); ok {
			return f, nil
		}
	}
	applyDecodeConfig(c, appConfig, &name)
	if name == "" {
		return document.FormatJSON, nil
	}
	return document.ParseFormat(name)
}

func newCodec(familyName string, legacy bool) (*canm.Codec, error) {
	f, ok := canm.LookupFamily(familyName)
	if !ok {
		return nil, fmt.Errorf("unknown family %q", familyName)
	}
	return canm.NewCodec(f, canm.EncodeOptions{LegacyTrackRecords: legacy}), nil
}

func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == stdoutPath {
		_, err := stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
