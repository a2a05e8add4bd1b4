package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config holds all runtime settings for the webhook. Values come from the
// environment, optionally seeded from a local .env file.
type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	// Model service.
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	ModelName    string `env:"MODEL_NAME" envDefault:"gemini-2.5-flash"`

	// Ledger (Google Sheets).
	SpreadsheetID         string `env:"SHEET_ID"`
	SheetName             string `env:"SHEET_NAME" envDefault:"Sheet1"`
	GoogleCredentialsJSON string `env:"GOOGLE_CREDENTIALS_JSON"`
	CredentialsFile       string `env:"GOOGLE_CREDENTIALS_FILE" envDefault:"credentials.json"`

	// Rate service.
	ExchangeRateAPIKey  string `env:"EXCHANGERATE_API_KEY"`
	ExchangeRateBaseURL string `env:"EXCHANGERATE_API_URL" envDefault:"https://v6.exchangerate-api.com/v6"`

	// ReferenceCurrency is the single currency all convertible amounts are
	// normalized into.
	ReferenceCurrency string `env:"BASE_CURRENCY" envDefault:"PLN"`

	// OutboundTimeout bounds the rate-service round trip.
	OutboundTimeout time.Duration `env:"OUTBOUND_TIMEOUT" envDefault:"30s"`
}

// Load reads configuration from the environment. A missing .env file is not
// an error; explicit environment variables always win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parsing environment: %w", err)
	}

	cfg.ReferenceCurrency = strings.ToUpper(strings.TrimSpace(cfg.ReferenceCurrency))

	return cfg, nil
}

// MaterializeCredentials writes the GOOGLE_CREDENTIALS_JSON content to the
// configured credentials file. Deployment platforms pass the service-account
// key through the environment instead of mounting a file. No-op when the
// variable is unset, in which case the file is expected to already exist.
func (c *Config) MaterializeCredentials() error {
	if c.GoogleCredentialsJSON == "" {
		return nil
	}
	if !json.Valid([]byte(c.GoogleCredentialsJSON)) {
		return fmt.Errorf("config: GOOGLE_CREDENTIALS_JSON is not valid JSON")
	}
	if err := os.WriteFile(c.CredentialsFile, []byte(c.GoogleCredentialsJSON), 0o600); err != nil {
		return fmt.Errorf("config: writing %s: %w", c.CredentialsFile, err)
	}
	return nil
}

// MaskedAPIKey returns the Gemini API key obscured for startup logging.
func (c *Config) MaskedAPIKey() string {
	if c.GeminiAPIKey == "" {
		return "(not set)"
	}
	return strings.Repeat("*", len(c.GeminiAPIKey))
}
