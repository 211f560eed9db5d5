package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/camkit/internal/logger"
)

var (
	configFile string
	logLevel   string
	logFormat  string
	debug      bool

	// appConfig is loaded once by setup and consulted by each command for
	// defaults the user did not pass as flags.
	appConfig Config
)

func globalFlags() []cli.Flag {
	return append([]cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Usage:       "path to config.yaml (default: user config dir)",
			Sources:     cli.EnvVars(envConfigFile),
			Destination: &configFile,
		},
	}, loggingFlags()...)
}

func loggingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (pretty, json, text)",
			Value:       "pretty",
			Destination: &logFormat,
		},
		&cli.BoolFlag{
			Name:        "debug",
			Usage:       "enable debug logging (shorthand for --log-level=debug)",
			Destination: &debug,
		},
	}
}

func familyFlag(dst *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "family",
		Usage:       "container family (canm, camn)",
		Value:       "canm",
		Destination: dst,
	}
}

// setup loads the config file and installs the logger in the context.
func setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	path := configFile
	if path == "" {
		path = configPath()
	}
	appConfig = LoadConfig(path)
	applyLogConfig(cmd, appConfig)

	level := logger.ParseLevel(logLevel)
	if debug {
		level = logger.ParseLevel("debug")
	}
	log, err := logger.ForFormat(os.Stderr, logFormat, level)
	if err != nil {
		return ctx, cli.Exit("error: "+err.Error(), 2)
	}
	if path != "" {
		log.Debug("config", "path", path)
	}
	return logger.WithContext(ctx, log), nil
}
