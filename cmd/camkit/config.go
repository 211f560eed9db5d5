package main

import (
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

const envConfigFile = "CAMKIT_CONFIG"

// Config represents the camkit configuration file (~/.config/camkit/config.yaml).
type Config struct {
	// Output
	LogLevel     string `yaml:"log_level"`
	LogFormat    string `yaml:"log_format"`
	OutputFormat string `yaml:"output_format"`

	// Encoding
	Family             string `yaml:"family"`
	LegacyTrackRecords *bool  `yaml:"legacy_track_records"`

	// Server
	ServerAddress string `yaml:"server_address"`
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "camkit", "config.yaml")
}

func applyLogConfig(c *cli.Command, cfg Config) {
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		logFormat = cfg.LogFormat
	}
}

// applyDecodeConfig fills the decode output format when neither --format
// nor an output extension chose one.
func applyDecodeConfig(c *cli.Command, cfg Config, format *string) {
	if cfg.OutputFormat != "" && !c.IsSet("format") && *format == "" {
		*format = cfg.OutputFormat
	}
}

func applyFamilyConfig(c *cli.Command, cfg Config, family *string) {
	if cfg.Family != "" && !c.IsSet("family") {
		*family = cfg.Family
	}
}

func applyEncodeConfig(c *cli.Command, cfg Config, family *string, legacy *bool) {
	applyFamilyConfig(c, cfg, family)
	if cfg.LegacyTrackRecords != nil && !c.IsSet("legacy") {
		*legacy = *cfg.LegacyTrackRecords
	}
}

func applyServeConfig(c *cli.Command, cfg Config, addr, family *string) {
	if cfg.ServerAddress != "" && !c.IsSet("addr") {
		*addr = cfg.ServerAddress
	}
	applyFamilyConfig(c, cfg, family)
}

// LoadConfig reads the config file. Returns a zero Config if the file doesn't exist.
func LoadConfig(path string) Config {
	if path == "" {
		return Config{}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}
	}
	return cfg
}
