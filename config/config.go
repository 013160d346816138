// Package config loads process settings from the environment and search
// scenarios from YAML files.
package config

import (
	"fmt"
	"os"
	"strconv"

	"crowdpath/pathfinding"

	"github.com/go-playground/validator/v10"
)

// Config aggregates application configuration values.
type Config struct {
	Logging LoggingConfig
	Search  SearchConfig
}

// LoggingConfig controls structured logging settings.
type LoggingConfig struct {
	Level         string `validate:"omitempty,oneof=debug info warn warning error DEBUG INFO WARN WARNING ERROR"`
	Format        string `validate:"omitempty,oneof=text json"` // text|json
	IncludeCaller bool
}

// SearchConfig holds the cost parameters of the path finder.
type SearchConfig struct {
	StepCost    int `yaml:"step_cost" validate:"gte=1"`
	UsageWeight int `yaml:"usage_weight" validate:"gte=0"`
}

// PathCost converts the settings into the path finder's cost parameters.
func (c SearchConfig) PathCost() pathfinding.PathCost {
	return pathfinding.PathCost{StepCost: c.StepCost, UsageWeight: c.UsageWeight}
}

const (
	defaultLoggingLevel  = "info"
	defaultLoggingFormat = "text"
)

var validate = validator.New()

// Load reads configuration from environment variables, applying defaults.
func Load() (Config, error) {
	cfg := Config{
		Logging: LoggingConfig{
			Level:         valueOrDefault("CROWDPATH_LOG_LEVEL", defaultLoggingLevel),
			Format:        valueOrDefault("CROWDPATH_LOG_FORMAT", defaultLoggingFormat),
			IncludeCaller: parseBoolWithDefault("CROWDPATH_LOG_INCLUDE_CALLER", false),
		},
	}

	var err error
	if cfg.Search.StepCost, err = parseInt("CROWDPATH_STEP_COST", pathfinding.DefaultPathCost.StepCost); err != nil {
		return Config{}, err
	}
	if cfg.Search.UsageWeight, err = parseInt("CROWDPATH_USAGE_WEIGHT", pathfinding.DefaultPathCost.UsageWeight); err != nil {
		return Config{}, err
	}

	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func valueOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseBoolWithDefault(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		val, err := strconv.ParseBool(v)
		if err != nil {
			return fallback
		}
		return val
	}
	return fallback
}

func parseInt(key string, fallback int) (int, error) {
	if v := os.Getenv(key); v != "" {
		val, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid %s value %q: %w", key, v, err)
		}
		return val, nil
	}
	return fallback, nil
}
