// Package config loads runtime settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dvloznov/bankview/internal/pipeline"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the API server and the CLI.
type Config struct {
	ServerPort string `mapstructure:"SERVER_PORT"`

	ClientsSource  string `mapstructure:"CLIENTS_SOURCE"`
	AccountsSource string `mapstructure:"ACCOUNTS_SOURCE"`
	BranchesSource string `mapstructure:"BRANCHES_SOURCE"`

	PageSize        int    `mapstructure:"PAGE_SIZE"`
	RefreshSchedule string `mapstructure:"REFRESH_SCHEDULE"`
	StrictDecoding  bool   `mapstructure:"STRICT_DECODING"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	FetchTimeout       time.Duration `mapstructure:"FETCH_TIMEOUT"`
	GCPCredentialsFile string        `mapstructure:"GCP_CREDENTIALS_FILE"`
	BigQueryLocation   string        `mapstructure:"BIGQUERY_LOCATION"`
}

var keys = []string{
	"SERVER_PORT",
	"CLIENTS_SOURCE",
	"ACCOUNTS_SOURCE",
	"BRANCHES_SOURCE",
	"PAGE_SIZE",
	"REFRESH_SCHEDULE",
	"STRICT_DECODING",
	"LOG_LEVEL",
	"LOG_FORMAT",
	"FETCH_TIMEOUT",
	"GCP_CREDENTIALS_FILE",
	"BIGQUERY_LOCATION",
}

// LoadConfig reads configuration from environment variables. Files named
// in envFiles (default ".env") are loaded first when present; variables
// already set in the environment win.
func LoadConfig(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("LoadConfig: loading %s: %w", f, err)
		}
	}

	v := viper.New()
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("CLIENTS_SOURCE", pipeline.DefaultClientsURL)
	v.SetDefault("ACCOUNTS_SOURCE", pipeline.DefaultAccountsURL)
	v.SetDefault("BRANCHES_SOURCE", pipeline.DefaultBranchesURL)
	v.SetDefault("PAGE_SIZE", 10)
	v.SetDefault("REFRESH_SCHEDULE", "")
	v.SetDefault("STRICT_DECODING", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("FETCH_TIMEOUT", "0s")
	v.AutomaticEnv()

	// Bind explicitly so keys without defaults still appear in Unmarshal.
	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("LoadConfig: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that would otherwise fail far from their source.
func (c *Config) Validate() error {
	if c.PageSize < 1 {
		return fmt.Errorf("Validate: PAGE_SIZE must be at least 1, got %d", c.PageSize)
	}
	if c.FetchTimeout < 0 {
		return fmt.Errorf("Validate: FETCH_TIMEOUT must not be negative, got %s", c.FetchTimeout)
	}
	if c.LogFormat != "console" && c.LogFormat != "json" {
		return fmt.Errorf("Validate: LOG_FORMAT must be console or json, got %q", c.LogFormat)
	}
	return nil
}
