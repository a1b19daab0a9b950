// Package config loads application configuration. Precedence, lowest to
// highest: built-in defaults, optional YAML file, environment variables
// (prefix LOANNORM).
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

const (
	// EnvPrefix is the environment variable prefix for all settings.
	EnvPrefix = "LOANNORM"

	// DefaultConfigFile is looked up in the working directory when no
	// explicit path is given via LOANNORM_CONFIG.
	DefaultConfigFile = "config.yaml"
)

// Config represents the complete application configuration
type Config struct {
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Paths   PathsConfig   `yaml:"paths" envconfig:"PATHS"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// PathsConfig contains default file system locations for the CLIs
type PathsConfig struct {
	DataDir string `yaml:"data_dir" envconfig:"DATA_DIR" validate:"required"`
}

var validate = validator.New()

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Output:   "console",
			FilePath: "logs/loannorm.log",
		},
		Paths: PathsConfig{
			DataDir: "data",
		},
	}
}

// Load loads configuration from the optional YAML file and the environment.
func Load() (*Config, error) {
	cfg := Default()

	configFile := configFilePath()
	if _, err := os.Stat(configFile); err == nil {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func configFilePath() string {
	if p := os.Getenv(EnvPrefix + "_CONFIG"); p != "" {
		return p
	}
	return DefaultConfigFile
}
