package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the forecast API server.
type Config struct {
	Server ServerConfig
	Redis  RedisConfig
	Model  ModelConfig
}

type ServerConfig struct {
	Port            int
	Env             string
	RateLimitPerMin int
}

type RedisConfig struct {
	URL string
	// ResultTTL bounds how long a cached prediction for a given
	// date/store/item stays valid.
	ResultTTL time.Duration
}

type ModelConfig struct {
	Provider         string
	InferenceTimeout time.Duration
	MLServer         MLServerConfig
}

type MLServerConfig struct {
	BaseURL string
	Model   string
}

var validProviders = map[string]bool{
	"mlserver": true,
	"mock":     true,
}

// Load reads configuration from environment variables and returns a validated Config.
// Returns an error with a descriptive message if any required value is missing or invalid.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            envInt("FORECAST_PORT", 5001),
			Env:             envString("FORECAST_ENV", "development"),
			RateLimitPerMin: envInt("FORECAST_RATE_LIMIT_PER_MIN", 60),
		},
		Redis: RedisConfig{
			URL:       os.Getenv("REDIS_URL"),
			ResultTTL: envDuration("FORECAST_RESULT_CACHE_TTL", time.Hour),
		},
		Model: ModelConfig{
			Provider:         os.Getenv("MODEL_PROVIDER"),
			InferenceTimeout: envDurationSecs("MODEL_INFERENCE_TIMEOUT_SECS", 60*time.Second),
			MLServer: MLServerConfig{
				BaseURL: envString("MLSERVER_BASE_URL", "http://localhost:8080"),
				Model:   envString("MLSERVER_MODEL", "sales-forecast"),
			},
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("FORECAST_PORT must be between 1 and 65535; got %d", c.Server.Port)
	}

	if c.Redis.URL == "" {
		return fmt.Errorf("REDIS_URL is required")
	}

	if c.Model.Provider == "" {
		return fmt.Errorf("MODEL_PROVIDER is required")
	}
	if !validProviders[c.Model.Provider] {
		return fmt.Errorf("MODEL_PROVIDER must be one of mlserver, mock; got %q", c.Model.Provider)
	}

	if c.Model.Provider == "mlserver" {
		base := c.Model.MLServer.BaseURL
		if base == "" {
			return fmt.Errorf("MLSERVER_BASE_URL is required when MODEL_PROVIDER is mlserver")
		}
		if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
			return fmt.Errorf("MLSERVER_BASE_URL must start with http:// or https://; got %q", base)
		}
	}

	return nil
}

func envString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func envDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}

func envDurationSecs(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	secs, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return time.Duration(secs) * time.Second
}
