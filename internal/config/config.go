// Package config loads engine configuration from an optional file and
// the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

var validate = validator.New()

// Config holds process-level settings. Protocol behavior is controlled
// through UCI options, not here.
type Config struct {
	LogFile      string `mapstructure:"LOG_FILE"`
	DatabasePath string `mapstructure:"DB_PATH"`
	WebEnabled   bool   `mapstructure:"WEB_ENABLED"`
	WebHost      string `mapstructure:"WEB_HOST" validate:"omitempty,hostname|ip"`
	WebPort      int    `mapstructure:"WEB_PORT" validate:"gte=0,lte=65535"`
}

// Load reads configuration from the given file path, or from lc0.env
// in the working directory when the path is empty. A missing file is
// not an error; environment variables (LC0_ prefix) override file
// values.
func Load(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigFile("lc0.env")
	}
	v.SetConfigType("env")
	v.SetEnvPrefix("LC0")
	v.AutomaticEnv()

	v.SetDefault("LOG_FILE", "")
	v.SetDefault("DB_PATH", "")
	v.SetDefault("WEB_ENABLED", false)
	v.SetDefault("WEB_HOST", "127.0.0.1")
	v.SetDefault("WEB_PORT", 8650)

	if err := v.ReadInConfig(); err != nil {
		// An explicitly named file must load; the default is optional.
		if path != "" {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}
