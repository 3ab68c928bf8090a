// internal/infrastructure/config/config.go
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Roster backends.
const (
	RosterBackendMongo  = "mongo"
	RosterBackendSheets = "sheets"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// MongoDB
	MongoURI string
	MongoDB  string

	// PostgreSQL (airport timezone and airline lookup tables)
	PostgresURI string

	// Passenger roster
	RosterBackend string

	// Google Sheets roster backend
	SheetsClientID      string
	SheetsClientSecret  string
	SheetsRefreshToken  string
	SheetsSpreadsheetID string
	SheetsRange         string

	// Processing
	ProcessInterval time.Duration

	// Matching thresholds; carried as configuration because the values
	// are policy, not derivation.
	ComponentMatchThreshold float64
	FuzzyMatchThreshold     float64
	FuzzyMatchEnabled       bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars
	config := &Config{
		AppVersion:   getEnv("APP_VERSION", "1.0.0"),
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		MongoURI: getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGO_DB", "ticketflow"),

		PostgresURI: getEnv("POSTGRES_DSN", ""),

		RosterBackend: getEnv("ROSTER_BACKEND", RosterBackendMongo),

		SheetsClientID:      getEnv("SHEETS_CLIENT_ID", ""),
		SheetsClientSecret:  getEnv("SHEETS_CLIENT_SECRET", ""),
		SheetsRefreshToken:  getEnv("SHEETS_REFRESH_TOKEN", ""),
		SheetsSpreadsheetID: getEnv("SHEETS_SPREADSHEET_ID", ""),
		SheetsRange:         getEnv("SHEETS_RANGE", "Passengers!A2:F"),

		ProcessInterval: time.Duration(getEnvAsInt("PROCESS_INTERVAL", 30)) * time.Second,

		ComponentMatchThreshold: getEnvAsFloat("COMPONENT_MATCH_THRESHOLD", 0.75),
		FuzzyMatchThreshold:     getEnvAsFloat("FUZZY_MATCH_THRESHOLD", 0.6),
		FuzzyMatchEnabled:       getEnvAsBool("FUZZY_MATCH_ENABLED", true),
	}

	return config, nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
