// Package config loads ndv's ambient settings (color mode, proof-store
// backend, telemetry toggle, explain model) the way the rest of this
// codebase's CLI layers config: viper, with environment overrides and
// an optional config file.
package config

import (
	"errors"

	"github.com/spf13/viper"
)

// Config holds every setting the CLI honors. The core verifier package
// takes none of these; they exist only for cmd/ndv's collaborators.
type Config struct {
	Color        string `mapstructure:"color" yaml:"color"`                 // auto, always, never
	StoreDriver  string `mapstructure:"store_driver" yaml:"store_driver"`   // mysql, dolt
	StoreDSN     string `mapstructure:"store_dsn" yaml:"store_dsn"`
	Telemetry    bool   `mapstructure:"telemetry" yaml:"telemetry"`
	ExplainModel string `mapstructure:"explain_model" yaml:"explain_model"`
}

// Load reads configuration from cfgFile if given, else searches for
// ndv.{yaml,toml,json} in the working directory and $HOME/.ndv, and
// applies NDV_-prefixed environment overrides on top. A missing config
// file is not an error; only a malformed one is.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("NDV")
	v.AutomaticEnv()

	v.SetDefault("color", "auto")
	v.SetDefault("store_driver", "mysql")
	v.SetDefault("telemetry", false)
	v.SetDefault("explain_model", "claude-3-5-sonnet-latest")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("ndv")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.ndv")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
