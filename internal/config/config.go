// Package config provides configuration management for the finance tracker.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Extraction  ExtractionConfig `mapstructure:"extraction"`
	Portfolio   PortfolioConfig  `mapstructure:"portfolio"`
	Storage     StorageConfig    `mapstructure:"storage"`
	Credentials Credentials      `mapstructure:"-"` // Loaded separately
}

// ExtractionConfig holds statement-extraction configuration.
type ExtractionConfig struct {
	Provider    string `mapstructure:"provider"`     // "openai" or "gemini"
	OpenAIModel string `mapstructure:"openai_model"` // e.g. gpt-4o-mini
	GeminiModel string `mapstructure:"gemini_model"` // e.g. gemini-2.0-flash
}

// PortfolioConfig holds portfolio valuation configuration.
type PortfolioConfig struct {
	QuoteTimeoutSeconds int `mapstructure:"quote_timeout_seconds"`
	MaxConcurrentQuotes int `mapstructure:"max_concurrent_quotes"`
}

// StorageConfig holds persistence configuration.
type StorageConfig struct {
	DBPath string `mapstructure:"db_path"`
}

// Credentials holds API credentials.
type Credentials struct {
	OpenAI OpenAICredentials `mapstructure:"openai"`
	Gemini GeminiCredentials `mapstructure:"gemini"`
}

// OpenAICredentials holds OpenAI API credentials.
type OpenAICredentials struct {
	APIKey string `mapstructure:"api_key"`
}

// GeminiCredentials holds Gemini API credentials.
type GeminiCredentials struct {
	APIKey string `mapstructure:"api_key"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/fintrack"
	}
	return filepath.Join(home, ".config", "fintrack")
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	cfg := &Config{}

	if err := loadConfigFile(configDir, cfg); err != nil {
		return nil, fmt.Errorf("loading config.toml: %w", err)
	}

	if err := loadCredentials(configDir, &cfg.Credentials); err != nil {
		return nil, fmt.Errorf("loading credentials.toml: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func loadConfigFile(configDir string, target *Config) error {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	v.SetDefault("extraction.provider", "openai")
	v.SetDefault("extraction.openai_model", "gpt-4o-mini")
	v.SetDefault("extraction.gemini_model", "gemini-2.0-flash")
	v.SetDefault("portfolio.quote_timeout_seconds", 10)
	v.SetDefault("portfolio.max_concurrent_quotes", 4)
	v.SetDefault("storage.db_path", filepath.Join(configDir, "fintrack.db"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if err := createTemplateConfig(configDir); err != nil {
				return err
			}
			return v.Unmarshal(target)
		}
		return err
	}

	return v.Unmarshal(target)
}

func loadCredentials(configDir string, creds *Credentials) error {
	v := viper.New()
	v.SetConfigName("credentials")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return createTemplateCredentials(configDir)
		}
		return err
	}

	return v.Unmarshal(creds)
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.Credentials.OpenAI.APIKey = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.Credentials.Gemini.APIKey = v
	}
	if v := os.Getenv("FINTRACK_DB"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("FINTRACK_PROVIDER"); v != "" {
		cfg.Extraction.Provider = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if p := c.Extraction.Provider; p != "" && p != "openai" && p != "gemini" {
		return fmt.Errorf("invalid extraction provider: %s (must be 'openai' or 'gemini')", p)
	}
	if c.Portfolio.QuoteTimeoutSeconds < 0 {
		return fmt.Errorf("quote_timeout_seconds must be non-negative")
	}
	if c.Portfolio.MaxConcurrentQuotes < 0 {
		return fmt.Errorf("max_concurrent_quotes must be non-negative")
	}
	return nil
}

// HasProvider reports whether the named LLM provider has a configured
// credential. Callers gate pipeline dispatch on this instead of
// inspecting the environment.
func (c *Config) HasProvider(name string) bool {
	switch name {
	case "openai":
		return c.Credentials.OpenAI.APIKey != ""
	case "gemini":
		return c.Credentials.Gemini.APIKey != ""
	default:
		return false
	}
}
