package main

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/camkit/internal/api"
	"github.com/samcharles93/camkit/internal/logger"
)

func serveCmd() *cli.Command {
	var (
		addr          string
		family        string
		maxBody       int64
		headerTimeout time.Duration
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the decode/encode REST API for the web editor",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "listen address",
				Value:       "127.0.0.1:8080",
				Destination: &addr,
			},
			familyFlag(&family),
			&cli.Int64Flag{
				Name:        "max-body",
				Usage:       "largest accepted request body in bytes",
				Value:       api.DefaultMaxBodyBytes,
				Destination: &maxBody,
			},
			&cli.DurationFlag{
				Name:        "read-header-timeout",
				Usage:       "time allowed to read request headers",
				Value:       30 * time.Second,
				Destination: &headerTimeout,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			log := logger.FromContext(ctx)

			applyServeConfig(c, appConfig, &addr, &family)
			codec, err := newCodec(family, false)
			if err != nil {
				return cli.Exit("error: "+err.Error(), 2)
			}

			server := api.NewServer(api.Config{
				Family:       codec.Family,
				MaxBodyBytes: maxBody,
				Logger:       log.WithGroup("api"),
			})
			e := echo.New()
			e.Use(middleware.RequestLogger())
			e.Use(middleware.Recover())
			server.Register(e)
			log.Info("starting server", "address", addr, "family", codec.Family.Name)
			sc := echo.StartConfig{
				Address: addr,
				BeforeServeFunc: func(srv *http.Server) error {
					srv.ReadHeaderTimeout = headerTimeout
					return nil
				},
			}
			return sc.Start(ctx, e)
		},
	}
}
