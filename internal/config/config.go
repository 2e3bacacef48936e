// Package config resolves runtime settings from the environment (prefix HEALTHY_).
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const envPrefix = "HEALTHY"

// Config holds process-level settings. Per-user preferences such as quiet
// hours live in the state document instead.
type Config struct {
	// DBPath overrides the default database location under the user config dir.
	DBPath string `envconfig:"DB_PATH" default:""`

	// Open Food Facts
	OFFBaseURL     string        `envconfig:"OFF_BASE_URL" default:"https://world.openfoodfacts.org"`
	LookupTimeout  time.Duration `envconfig:"LOOKUP_TIMEOUT" default:"8s"`
	LookupCacheTTL time.Duration `envconfig:"LOOKUP_CACHE_TTL" default:"168h"`

	// FoodTablePath points at a YAML file replacing the built-in reference table.
	FoodTablePath string `envconfig:"FOOD_TABLE" default:""`

	Debug bool `envconfig:"DEBUG" default:"false"`
}

// Load reads an optional .env file and then HEALTHY_* variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("process environment variables: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	c.OFFBaseURL = strings.TrimRight(strings.TrimSpace(c.OFFBaseURL), "/")
	if c.OFFBaseURL == "" {
		return fmt.Errorf("%s_OFF_BASE_URL must not be empty", envPrefix)
	}
	if c.LookupTimeout <= 0 {
		return fmt.Errorf("%s_LOOKUP_TIMEOUT must be > 0", envPrefix)
	}
	if c.LookupCacheTTL < 0 {
		return fmt.Errorf("%s_LOOKUP_CACHE_TTL must be >= 0", envPrefix)
	}
	return nil
}

// NewForTesting returns defaults without touching the environment.
func NewForTesting() *Config {
	return &Config{
		OFFBaseURL:     "http://127.0.0.1:0",
		LookupTimeout:  2 * time.Second,
		LookupCacheTTL: time.Hour,
	}
}
