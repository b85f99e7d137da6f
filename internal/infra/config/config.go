package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const defaultConfigPath = "configs/config.yaml"

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	LLM        LLMConfig        `yaml:"llm"`
	Generation GenerationConfig `yaml:"generation"`
	Log        LogConfig        `yaml:"log"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address      string          `yaml:"address" env:"HTTP_ADDRESS"`
	ReadTimeout  time.Duration   `yaml:"readTimeout" env:"HTTP_READ_TIMEOUT"`
	WriteTimeout time.Duration   `yaml:"writeTimeout" env:"HTTP_WRITE_TIMEOUT"`
	RateLimit    RateLimitConfig `yaml:"rateLimit"`
	CORS         CORSConfig      `yaml:"cors"`
}

// RateLimitConfig drives the inbound request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled" env:"HTTP_RATE_LIMIT_ENABLED"`
	RequestsPerMinute int  `yaml:"requestsPerMinute" env:"HTTP_RATE_LIMIT_RPM"`
	Burst             int  `yaml:"burst" env:"HTTP_RATE_LIMIT_BURST"`
}

// CORSConfig lists the origins allowed to call the API. "*" allows any origin.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowedOrigins" env:"HTTP_CORS_ALLOWED_ORIGINS" envSeparator:","`
}

// LLMConfig contains OpenAI settings. APIKey is the only credential the service holds.
type LLMConfig struct {
	APIKey      string        `yaml:"apiKey" env:"OPENAI_API_KEY"`
	BaseURL     string        `yaml:"baseUrl" env:"OPENAI_BASE_URL"`
	Model       string        `yaml:"model" env:"OPENAI_MODEL"`
	Temperature float32       `yaml:"temperature" env:"OPENAI_TEMPERATURE"`
	Timeout     time.Duration `yaml:"timeout" env:"OPENAI_TIMEOUT"`
}

// GenerationConfig controls how summary batches are produced.
type GenerationConfig struct {
	SystemPrompt string `yaml:"systemPrompt" env:"SUMMARY_SYSTEM_PROMPT"`
	Concurrency  int    `yaml:"concurrency" env:"SUMMARY_CONCURRENCY"`
}

// LogConfig controls the process logger.
type LogConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL"`
	Format string `yaml:"format" env:"LOG_FORMAT"`
}

// APIKeyConfigured reports whether a completion credential is present.
func (c *Config) APIKeyConfigured() bool {
	return strings.TrimSpace(c.LLM.APIKey) != ""
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat(defaultConfigPath); err == nil {
		if err := hydrateFromFile(cfg, defaultConfigPath); err != nil {
			return nil, err
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:     ":8000",
			ReadTimeout: 15 * time.Second,
			// A batch is processed inside one request, one completion at a time.
			WriteTimeout: 10 * time.Minute,
			RateLimit: RateLimitConfig{
				Enabled:           false,
				RequestsPerMinute: 60,
				Burst:             10,
			},
			CORS: CORSConfig{
				AllowedOrigins: []string{"*"},
			},
		},
		LLM: LLMConfig{
			Model: "gpt-3.5-turbo",
		},
		Generation: GenerationConfig{
			SystemPrompt: "You are a professional HR assistant.",
			Concurrency:  1,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Validate ensures the configuration is safe to use. A missing API key is not
// an error: the service starts and reports it through /health.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.ReadTimeout < 0 || c.HTTP.WriteTimeout < 0 {
		return errors.New("http timeouts cannot be negative")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if strings.TrimSpace(c.LLM.Model) == "" {
		return errors.New("llm.model cannot be empty")
	}
	if c.LLM.Timeout < 0 {
		return errors.New("llm.timeout cannot be negative")
	}
	if strings.TrimSpace(c.Generation.SystemPrompt) == "" {
		return errors.New("generation.systemPrompt cannot be empty")
	}
	if c.Generation.Concurrency <= 0 {
		return errors.New("generation.concurrency must be positive")
	}
	return nil
}
