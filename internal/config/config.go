package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server  ServerConfig
	MongoDB MongoDBConfig
	Digest  DigestConfig
	Sheets  SheetsConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port               string
	AggregationTimeout time.Duration
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// DigestConfig holds settings for the scheduled monthly digest. WebhookURL
// may be empty, in which case the digest is computed but not delivered.
type DigestConfig struct {
	CronSchedule string
	Timezone     string
	WebhookURL   string
}

// SheetsConfig contains configuration required to import budgets from Google
// Sheets. Both fields may be empty when the import feature is unused.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
	BudgetRange     string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	timeout, err := getenvSeconds("AGGREGATION_TIMEOUT_SECONDS", 15*time.Second)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:               getenvWithDefault("APP_PORT", "8080"),
			AggregationTimeout: timeout,
		},
		MongoDB: MongoDBConfig{
			URI:    getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "venue_metrics"),
		},
		Digest: DigestConfig{
			CronSchedule: getenvWithDefault("DIGEST_CRON_SCHEDULE", "0 8 1 * *"),
			Timezone:     getenvWithDefault("TIMEZONE", "America/New_York"),
			WebhookURL:   os.Getenv("DIGEST_WEBHOOK_URL"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_BUDGET_ID"),
			BudgetRange:     getenvWithDefault("GOOGLE_SHEET_BUDGET_RANGE", "Budgets!A2:J"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	if c.Server.AggregationTimeout <= 0 {
		return errors.New("AGGREGATION_TIMEOUT_SECONDS must be positive")
	}

	if c.MongoDB.URI == "" {
		return errors.New("MONGODB_URI must be provided")
	}

	if c.MongoDB.DBName == "" {
		return errors.New("MONGODB_DB_NAME must be provided")
	}

	if c.Digest.CronSchedule == "" {
		return errors.New("DIGEST_CRON_SCHEDULE must be provided")
	}

	if c.Digest.Timezone == "" {
		return errors.New("TIMEZONE must be provided")
	}

	// Sheets import is opt-in, but a partial configuration is a mistake.
	if (c.Sheets.CredentialsPath == "") != (c.Sheets.SpreadsheetID == "") {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH and GOOGLE_SHEET_BUDGET_ID must be provided together")
	}

	return nil
}

// SheetsEnabled reports whether the Google Sheets budget import is configured.
func (c *Config) SheetsEnabled() bool {
	return c.Sheets.CredentialsPath != "" && c.Sheets.SpreadsheetID != ""
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvSeconds(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	seconds, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer number of seconds: %w", key, err)
	}
	return time.Duration(seconds) * time.Second, nil
}
