package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	CORS     CORSConfig
	Quotes   QuoteConfig
	Log      LogConfig
}

// ServerConfig holds configuration for `mf serve`
type ServerConfig struct {
	Port        string
	Host        string
	Addr        string // Combined host:port for convenience
	NavSchedule string // cron spec for the NAV snapshot refresh
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// QuoteConfig selects and configures the NAV sources.
type QuoteConfig struct {
	Source         string // amfi, moneycontrol, yahoo or snapshot
	AMFIURL        string
	AMFIWindowDays int
	YahooURL       string
	HTTPTimeout    time.Duration
	MaxConcurrent  int
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level  string
	Pretty bool
}

// QuoteSources lists the accepted values of MF_QUOTE_SOURCE.
var QuoteSources = []string{"amfi", "moneycontrol", "yahoo", "snapshot"}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	timeout, err := time.ParseDuration(getEnv("MF_HTTP_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid MF_HTTP_TIMEOUT: %w", err)
	}
	window, err := getEnvInt("MF_AMFI_WINDOW_DAYS", 7)
	if err != nil {
		return nil, err
	}
	if window < 1 {
		return nil, fmt.Errorf("invalid MF_AMFI_WINDOW_DAYS: must be at least 1, got %d", window)
	}
	maxConcurrent, err := getEnvInt("MF_MAX_CONCURRENT_FETCHES", 0)
	if err != nil {
		return nil, err
	}
	pretty, err := strconv.ParseBool(getEnv("MF_LOG_PRETTY", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid MF_LOG_PRETTY: %w", err)
	}

	config := &Config{
		Server: ServerConfig{
			Port:        getEnv("MF_SERVER_PORT", "5001"),
			Host:        getEnv("MF_SERVER_HOST", "localhost"),
			NavSchedule: getEnv("MF_NAV_SCHEDULE", "0 20 * * 1-5"),
		},
		Database: DatabaseConfig{
			Path: getEnv("MFDB", "./data/mutualfund.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("MF_CORS_ORIGINS", "http://localhost:3000,http://localhost")),
		},
		Quotes: QuoteConfig{
			Source:         strings.ToLower(getEnv("MF_QUOTE_SOURCE", "amfi")),
			AMFIURL:        getEnv("MF_AMFI_URL", "http://portal.amfiindia.com/DownloadNAVHistoryReport_Po.aspx"),
			AMFIWindowDays: window,
			YahooURL:       getEnv("MF_YAHOO_URL", "https://query1.finance.yahoo.com"),
			HTTPTimeout:    timeout,
			MaxConcurrent:  maxConcurrent,
		},
		Log: LogConfig{
			Level:  strings.ToLower(getEnv("MF_LOG_LEVEL", "info")),
			Pretty: pretty,
		},
	}

	if err := ValidateQuoteSource(config.Quotes.Source); err != nil {
		return nil, err
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// ValidateQuoteSource reports whether name is one of QuoteSources.
func ValidateQuoteSource(name string) error {
	for _, s := range QuoteSources {
		if s == name {
			return nil
		}
	}
	return fmt.Errorf("unknown quote source %q (want one of %s)", name, strings.Join(QuoteSources, ", "))
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
