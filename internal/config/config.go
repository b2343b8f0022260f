package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	// DefaultHTTPPort is the port the service listens on. It is not configurable.
	DefaultHTTPPort = "8080"

	SlogLoggerType = "slog"
)

// ErrUnsupportedLogType is returned when log_type names an unknown logger.
var ErrUnsupportedLogType = errors.New("unsupported log type")

var logLevels = map[string]struct{}{
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}

// Config holds settings for the application.
type Config struct {
	HTTPPort  string // Port for HTTP server, always DefaultHTTPPort outside of tests
	LogType   string // Logger implementation (e.g., "slog")
	LogLevel  string // Minimum level: debug, info, warn or error
	LogToFile bool   // Write logs to LogFile instead of stderr
	LogFile   string // Path of the log file
}

// NewConfig initializes configuration with priority:
// 1. Environment variables
// 2. Config file (config.yaml in the working directory)
// 3. Defaults
//
// The HTTP port is fixed and command-line flags are not parsed.
func NewConfig() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.SetConfigType("yaml")

	return load(v)
}

// load resolves the configuration from an already prepared viper instance.
func load(v *viper.Viper) (*Config, error) {
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		HTTPPort:  DefaultHTTPPort,
		LogType:   strings.ToLower(strings.TrimSpace(v.GetString("log_type"))),
		LogLevel:  strings.ToLower(strings.TrimSpace(v.GetString("log_level"))),
		LogToFile: v.GetBool("log_to_file"),
		LogFile:   v.GetString("log_file_path"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks logger settings.
func (c *Config) validate() error {
	if c.LogType != SlogLoggerType {
		return fmt.Errorf("%w: %q", ErrUnsupportedLogType, c.LogType)
	}
	if _, ok := logLevels[c.LogLevel]; !ok {
		return fmt.Errorf("invalid log level %q: must be debug, info, warn or error", c.LogLevel)
	}
	if c.LogToFile && strings.TrimSpace(c.LogFile) == "" {
		return errors.New("log_file_path must be set when log_to_file is enabled")
	}
	return nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log_type", SlogLoggerType)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_to_file", false)
	v.SetDefault("log_file_path", "logs/balance-service.log")
}
