package config

import (
	"fmt"
	"os"
	"strings"
)

type Config struct {
	// Spreadsheets
	GoogleCredentialsJSON string
	TrackerSpreadsheetID  string
	TrackerSheetName      string
	AssignmentsSheetName  string
	ScoresSpreadsheetID   string
	ScoresSheetName       string

	// Blob storage
	AWSRegion string
	S3Bucket  string

	// Auth
	JWTSecret  string
	AdminUsers []string

	// Sessions
	DatabaseURL string

	// Server
	Port        string
	Environment string
	BaseURL     string
}

func Load() (*Config, error) {
	cfg := &Config{
		GoogleCredentialsJSON: getEnv("GOOGLE_CREDENTIALS_JSON", ""),
		TrackerSpreadsheetID:  getEnv("TRACKER_SPREADSHEET_ID", ""),
		TrackerSheetName:      getEnv("TRACKER_SHEET_NAME", "Sheet1"),
		AssignmentsSheetName:  getEnv("ASSIGNMENTS_SHEET_NAME", "Assignments"),
		ScoresSpreadsheetID:   getEnv("SCORES_SPREADSHEET_ID", ""),
		ScoresSheetName:       getEnv("SCORES_SHEET_NAME", "Sheet1"),

		AWSRegion: getEnv("AWS_REGION", "us-east-1"),
		S3Bucket:  getEnv("S3_BUCKET", "trp-rep-score-assets"),

		JWTSecret:  getEnv("JWT_SECRET", ""),
		AdminUsers: splitList(getEnv("ADMIN_USERS", "")),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:8080"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.GoogleCredentialsJSON == "" {
		return fmt.Errorf("GOOGLE_CREDENTIALS_JSON is required")
	}
	if c.TrackerSpreadsheetID == "" {
		return fmt.Errorf("TRACKER_SPREADSHEET_ID is required")
	}
	if c.ScoresSpreadsheetID == "" {
		return fmt.Errorf("SCORES_SPREADSHEET_ID is required")
	}
	return nil
}

// IsAdmin reports whether username is on the admin allow-list. Admins see
// every tracked asset instead of just their assigned ones.
func (c *Config) IsAdmin(username string) bool {
	for _, admin := range c.AdminUsers {
		if admin == username {
			return true
		}
	}
	return false
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
