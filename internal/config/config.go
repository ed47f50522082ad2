package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type Config struct {
	// HTTP Server
	Port string

	// Operations table source
	SourceBackend     string // csv, sheets or sqlite
	OperationsCSVPath string
	// Google Sheets auth details come straight from the environment, see
	// the sheetsrc package.
	GoogleSpreadsheetID string
	OperationsSheetName string

	// SQLite cache and report log
	SQLiteDBPath string

	// Report artifacts
	ReportsDir string

	// Dashboard preferences
	SettingsFile string

	// Rates and quotes
	RatesAPIKey   string
	RatesBaseURL  string
	RatesTarget   string
	StocksBaseURL string

	// AMQP
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8081"),

		SourceBackend:       getEnv("SOURCE_BACKEND", "csv"),
		OperationsCSVPath:   getEnv("OPERATIONS_CSV_PATH", "./data/operations.csv"),
		GoogleSpreadsheetID: getEnv("GOOGLE_SPREADSHEET_ID", ""),
		OperationsSheetName: getEnv("OPERATIONS_SHEET_NAME", "Operations"),

		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/moneta.db"),
		ReportsDir:   getEnv("REPORTS_DIR", "./data/reports"),
		SettingsFile: getEnv("SETTINGS_FILE", "./data/user_settings.json"),

		RatesAPIKey:   getEnv("API_KEY", ""),
		RatesBaseURL:  getEnv("RATES_BASE_URL", ""),
		RatesTarget:   getEnv("RATES_TARGET", "RUB"),
		StocksBaseURL: getEnv("STOCKS_BASE_URL", ""),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "moneta"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "report_events"),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.SourceBackend {
	case "csv":
		if c.OperationsCSVPath == "" {
			errors = append(errors, "operations CSV path cannot be empty when using csv backend")
		}
	case "sheets":
		if c.GoogleSpreadsheetID == "" {
			errors = append(errors, "Google Spreadsheet ID is required when using sheets backend")
		}
		if c.OperationsSheetName == "" {
			errors = append(errors, "operations sheet name cannot be empty when using sheets backend")
		}
	case "sqlite":
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		}
	default:
		errors = append(errors, fmt.Sprintf("invalid source backend '%s': must be one of [csv sheets sqlite]", c.SourceBackend))
	}

	if c.SQLiteDBPath != "" {
		if dir := filepath.Dir(c.SQLiteDBPath); dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
				}
			}
		}
	}

	if c.ReportsDir == "" {
		errors = append(errors, "reports directory cannot be empty")
	}

	if c.RatesTarget != "" && len(c.RatesTarget) != 3 {
		errors = append(errors, fmt.Sprintf("invalid rates target '%s': must be a 3-letter currency code", c.RatesTarget))
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
