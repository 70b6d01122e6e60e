package main

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
	"github.com/urfave/cli/v2"
)

const (
	defaultKeySize  = "auto"
	defaultLogLevel = "warn"
)

type config struct {
	Key          string `mapstructure:"key"`
	KeyFile      string `mapstructure:"key_file"`
	KeySize      string `mapstructure:"key_size"`
	InputFormat  string `mapstructure:"input_format"`
	OutputFormat string `mapstructure:"output_format"`
	Parallel     bool   `mapstructure:"parallel"`
	Workers      int    `mapstructure:"workers"`
	LogLevel     string `mapstructure:"log_level"`
}

//nolint:gochecknoglobals // flag to config key mapping
var stringFlags = map[string]string{
	"key":           "key",
	"key-file":      "key_file",
	"key-size":      "key_size",
	"input-format":  "input_format",
	"output-format": "output_format",
	"log-level":     "log_level",
}

// loadConfig merges, in increasing order of precedence, the defaults, the config file, PRESENT_* environment
// variables, and the flags set on the command line.
func loadConfig(c *cli.Context) (*config, error) {
	v := viper.New()
	v.SetDefault("key", "")
	v.SetDefault("key_file", "")
	v.SetDefault("key_size", defaultKeySize)
	v.SetDefault("input_format", string(defaultFormat))
	v.SetDefault("output_format", string(defaultFormat))
	v.SetDefault("parallel", false)
	v.SetDefault("workers", 0)
	v.SetDefault("log_level", defaultLogLevel)

	v.SetEnvPrefix("PRESENT")
	v.AutomaticEnv()

	if path := c.String("config"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("present")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/present")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	for name, key := range stringFlags {
		if c.IsSet(name) {
			v.Set(key, c.String(name))
		}
	}
	if c.IsSet("parallel") {
		v.Set("parallel", c.Bool("parallel"))
	}
	if c.IsSet("workers") {
		v.Set("workers", c.Int("workers"))
	}

	var cfg config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return &cfg, nil
}
