package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/camkit/internal/logger"
	"github.com/samcharles93/camkit/pkg/canm"
)

func inspectCmd() *cli.Command {
	var (
		inPath     string
		family     string
		showFrames bool
		frameLimit int
	)

	return &cli.Command{
		Name:  "inspect",
		Usage: "Show the header, track records and payload sharing of a container",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "input",
				Aliases:     []string{"i"},
				Usage:       "container file",
				Required:    true,
				Destination: &inPath,
			},
			familyFlag(&family),
			&cli.BoolFlag{Name: "frames", Usage: "print decoded frames per track", Destination: &showFrames},
			&cli.IntFlag{Name: "frames-limit", Usage: "limit frames printed per track (0 = no limit)", Value: 16, Destination: &frameLimit},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			log := logger.FromContext(ctx)

			applyFamilyConfig(c, appConfig, &family)
			codec, err := newCodec(family, false)
			if err != nil {
				return cli.Exit("error: "+err.Error(), 2)
			}

			data, err := os.ReadFile(inPath)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: read %q: %v", inPath, err), 1)
			}
			l, err := codec.ReadLayout(data)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %s: %v", inPath, err), 1)
			}

			log.Debug("inspect", "input", inPath, "frame_type", l.Header.FrameType, "payload_values", l.PayloadValues())

			w := c.Root().Writer
			fmt.Fprintf(w, "CANM Inspect: %s\n", inPath)
			fmt.Fprintf(w, "File: %s (%s)\n", filepath.Base(inPath), formatBytes(uint64(len(data))))
			printLayout(w, l)

			if showFrames {
				a, err := codec.Decode(data)
				if err != nil {
					return cli.Exit(fmt.Sprintf("error: %s: %v", inPath, err), 1)
				}
				printFrames(w, a, frameLimit)
			}
			return nil
		},
	}
}

func printLayout(w io.Writer, l *canm.Layout) {
	h := l.Header
	mode := "keyed"
	if l.FullFrames {
		mode = "baked"
	}
	fmt.Fprintln(w, "\nHeader:")
	fmt.Fprintf(w, "  %-12s 0x%08X\n", "magic", h.Magic)
	fmt.Fprintf(w, "  %-12s %s (%s)\n", "frame type", h.FrameType, mode)
	fmt.Fprintf(w, "  %-12s %d %d %d %d\n", "unknown", h.Unk1, h.Unk2, h.Unk3, h.Unk4)
	fmt.Fprintf(w, "  %-12s %d\n", "frame count", h.FrameCount)
	fmt.Fprintf(w, "  %-12s 0x%X (data at 0x%X)\n", "offset", h.Offset, l.Anchor)
	if l.PayloadSize >= 0 {
		fmt.Fprintf(w, "  %-12s %d\n", "size word", l.PayloadSize)
	}

	fmt.Fprintln(w, "\nTracks:")
	for _, t := range l.Tracks {
		fmt.Fprintf(w, "  %s\n", t)
	}
	fmt.Fprintf(w, "\nPayload: %d values (%s)\n", l.PayloadValues(), formatBytes(uint64(4*l.PayloadValues())))
}

func printFrames(w io.Writer, a *canm.Animation, limit int) {
	for _, s := range canm.TrackSelections() {
		t := a.Track(s)
		slope := ""
		if !a.FullFrames && len(t.Frames) > 1 {
			slope = " dual-slope"
			if t.UseSingleSlope {
				slope = " single-slope"
			}
		}
		fmt.Fprintf(w, "\n%s (%d frames%s)\n", s, len(t.Frames), slope)
		for i, f := range t.Frames {
			if limit > 0 && i >= limit {
				fmt.Fprintf(w, "  ... %d more\n", len(t.Frames)-limit)
				break
			}
			if a.FullFrames {
				fmt.Fprintf(w, "  %5d  %g\n", i, f.Value)
				continue
			}
			fmt.Fprintf(w, "  %8g  %g  in=%g out=%g\n", f.FrameID, f.Value, f.InSlope, f.OutSlope)
		}
	}
}

func formatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
