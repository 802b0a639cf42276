package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds all application configuration.
type Config struct {
	Generate GenerateConfig `mapstructure:"generate"`
	Log      LogConfig      `mapstructure:"log"`
}

// GenerateConfig holds code generation settings.
type GenerateConfig struct {
	// File is the YAML declaration file.
	File string `mapstructure:"file"`
	// Out overrides the output directory (default: the record package).
	Out string `mapstructure:"out"`
	// Tool is the generator name written into file headers.
	Tool string `mapstructure:"tool"`
	// Prune removes generated files no record produces any more.
	Prune bool `mapstructure:"prune"`
	// DebugDir receives unformatted output when formatting fails.
	DebugDir string `mapstructure:"debug_dir"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

// LoadConfig loads configuration from file and environment.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("generate.file", "records.yaml")
	v.SetDefault("generate.out", "")
	v.SetDefault("generate.tool", "record-generator")
	v.SetDefault("generate.prune", false)
	v.SetDefault("generate.debug_dir", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")

	if configPath != "" {
		v.SetConfigFile(configPath)

		if err := v.ReadInConfig(); err != nil {
			var parseErr viper.ConfigParseError
			if errors.As(err, &parseErr) {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
			// A missing file leaves the defaults in place.
		}
	}

	v.SetEnvPrefix("RECORDGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// NewLogger builds a zap logger from the log configuration. Verbose forces
// the debug level.
func NewLogger(cfg LogConfig, verbose bool) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	if verbose {
		level = zapcore.DebugLevel
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(level)
	config.Encoding = cfg.Encoding
	config.Sampling = nil

	if cfg.Encoding == "console" {
		config.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}

	return config.Build()
}
