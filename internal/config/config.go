package config

import (
	"os"
	"strconv"
	"time"

	"assetlens/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Source   SourceConfig
	Database DatabaseConfig
	AI       AIConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// SourceConfig holds inventory data source settings
type SourceConfig struct {
	SheetCSVURL  string        // published spreadsheet CSV export URL
	ExcelFile    string        // optional local .xlsx/.csv fallback
	FetchTimeout time.Duration // HTTP timeout for the sheet fetch
	AutoRefresh  time.Duration // 0 disables periodic refresh
}

// DatabaseConfig holds optional snapshot persistence settings
type DatabaseConfig struct {
	URL     string // empty disables persistence
	Enabled bool
}

// AIConfig holds AI/LLM related settings
type AIConfig struct {
	APIKey        string
	Model         string
	BaseURL       string
	SystemContext string
	MaxTokens     int
	Temperature   float64
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "debug"),
		},
		Source: SourceConfig{
			SheetCSVURL:  os.Getenv("SHEET_CSV_URL"),
			ExcelFile:    os.Getenv("EXCEL_FILE"),
			FetchTimeout: getEnvDurationOrDefault("FETCH_TIMEOUT", 30*time.Second),
			AutoRefresh:  getEnvDurationOrDefault("AUTO_REFRESH_INTERVAL", 0),
		},
		Database: loadDatabaseConfig(),
		AI:       loadAIConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadDatabaseConfig() DatabaseConfig {
	url := os.Getenv("DATABASE_URL")
	return DatabaseConfig{
		URL:     url,
		Enabled: url != "",
	}
}

func loadAIConfig() AIConfig {
	return AIConfig{
		APIKey:        os.Getenv("OPENAI_API_KEY"),
		Model:         getEnvOrDefault("LLM_MODEL", "gpt-4o-mini"),
		BaseURL:       getEnvOrDefault("LLM_BASE_URL", "https://api.openai.com/v1"),
		SystemContext: "You are an assistant analyzing a building asset inventory",
		MaxTokens:     getEnvIntOrDefault("MAX_TOKENS", 4000),
		Temperature:   getEnvFloatOrDefault("TEMPERATURE", 1.0),
	}
}

func validateConfig(config *Config) error {
	if config.Source.SheetCSVURL == "" && config.Source.ExcelFile == "" {
		return errors.ConfigInvalid("either SHEET_CSV_URL or EXCEL_FILE is required")
	}
	if config.Source.FetchTimeout <= 0 {
		return errors.ConfigInvalid("FETCH_TIMEOUT must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
