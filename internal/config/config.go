package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

// ErrMissingAPIKey is startup-fatal: the advisory endpoint is the
// system's reason to exist, so there is no degraded mode without it.
var ErrMissingAPIKey = errors.New("config: GEMINI_API_KEY is not set")

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Session  SessionConfig  `mapstructure:"session"`
	Advisory AdvisoryConfig `mapstructure:"advisory"`
	Registry RegistryConfig `mapstructure:"registry"`
	Secrets  Secrets        `mapstructure:"-"`
}

type ServerConfig struct {
	Port           int `mapstructure:"port"`
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
	RateLimit      int `mapstructure:"rate_limit"`
	RateBurst      int `mapstructure:"rate_burst"`
}

type SessionConfig struct {
	TTLMinutes int `mapstructure:"ttl_minutes"`
}

type AdvisoryConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	Model          string `mapstructure:"model"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type RegistryConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// Secrets come from the environment only, never from the config file.
type Secrets struct {
	GeminiAPIKey string `envconfig:"GEMINI_API_KEY"`
	TokenSecret  string `envconfig:"SESSION_TOKEN_SECRET"`
}

func (c SessionConfig) TTL() time.Duration {
	return time.Duration(c.TTLMinutes) * time.Minute
}

func (c AdvisoryConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c RegistryConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// defaults + env are enough to run
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := envconfig.Process("", &config.Secrets); err != nil {
		return nil, fmt.Errorf("failed to read secrets from environment: %w", err)
	}
	if config.Secrets.GeminiAPIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if config.Secrets.TokenSecret == "" {
		// a random per-process secret would also work; a fixed fallback
		// keeps tokens valid across dev restarts
		config.Secrets.TokenSecret = "nutrifarma-dev-secret"
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.timeout_seconds", 60)
	viper.SetDefault("server.rate_limit", 10)
	viper.SetDefault("server.rate_burst", 20)
	viper.SetDefault("session.ttl_minutes", 60)
	viper.SetDefault("advisory.base_url", "https://generativelanguage.googleapis.com")
	viper.SetDefault("advisory.model", "gemini-2.0-flash-exp")
	viper.SetDefault("advisory.timeout_seconds", 45)
	viper.SetDefault("registry.base_url", "https://cima.aemps.es/cima/rest")
	viper.SetDefault("registry.timeout_seconds", 5)
}
