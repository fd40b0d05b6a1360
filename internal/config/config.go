package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultSheetRange is the sheet and column span rows are appended to.
const DefaultSheetRange = "マスタ!A:F"

// Config contains runtime configuration values.
type Config struct {
	Environment string
	HTTPPort    string
	ServiceName string

	SlackSigningSecret string
	SlackBotToken      string
	SlackAPIURL        string

	SpreadsheetID string
	SheetRange    string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURI  string
	GoogleAuthURL      string
	GoogleTokenURL     string
	OAuthStateCheck    bool

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	RateLimitRPM      int
	TaskTimeout       time.Duration
	TelemetryEndpoint string
	TelemetryInsecure bool

	// TelemetrySampleRatio is the fraction of root traces sampled, 0..1.
	TelemetrySampleRatio float64
}

// Load reads configuration from environment variables with sane defaults.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Environment:        getEnv("APP_ENV", "development"),
		HTTPPort:           getEnv("PORT", "3000"),
		ServiceName:        getEnv("SERVICE_NAME", "answer-bridge"),
		SlackSigningSecret: strings.TrimSpace(os.Getenv("SLACK_SIGNING_SECRET")),
		SlackBotToken:      strings.TrimSpace(os.Getenv("SLACK_BOT_TOKEN")),
		SlackAPIURL:        os.Getenv("SLACK_API_URL"),
		SpreadsheetID:      strings.TrimSpace(os.Getenv("SPREADSHEET_ID")),
		SheetRange:         getEnv("SHEET_RANGE", DefaultSheetRange),
		GoogleClientID:     strings.TrimSpace(os.Getenv("GOOGLE_CLIENT_ID")),
		GoogleClientSecret: strings.TrimSpace(os.Getenv("GOOGLE_CLIENT_SECRET")),
		GoogleRedirectURI:  strings.TrimSpace(os.Getenv("GOOGLE_REDIRECT_URI")),
		GoogleAuthURL:      os.Getenv("GOOGLE_AUTH_URL"),
		GoogleTokenURL:     os.Getenv("GOOGLE_TOKEN_URL"),
		OAuthStateCheck:    getBool("OAUTH_STATE_CHECK", false),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		RedisDB:            getInt("REDIS_DB", 0),
		RateLimitRPM:       getInt("RATE_LIMIT_RPM", 120),
		TaskTimeout:        getDuration("TASK_TIMEOUT", 30*time.Second),
		TelemetryEndpoint:  os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		TelemetryInsecure:  getBool("OTEL_EXPORTER_OTLP_INSECURE", true),
	}
	cfg.TelemetrySampleRatio = getFloat("OTEL_TRACES_SAMPLER_RATIO", 1)

	if cfg.SlackSigningSecret == "" {
		return Config{}, fmt.Errorf("SLACK_SIGNING_SECRET is required")
	}
	if cfg.SlackBotToken == "" {
		return Config{}, fmt.Errorf("SLACK_BOT_TOKEN is required")
	}
	if cfg.SpreadsheetID == "" {
		return Config{}, fmt.Errorf("SPREADSHEET_ID is required")
	}
	if strings.TrimSpace(cfg.SheetRange) == "" {
		cfg.SheetRange = DefaultSheetRange
	}
	if cfg.TelemetrySampleRatio < 0 || cfg.TelemetrySampleRatio > 1 {
		return Config{}, fmt.Errorf("OTEL_TRACES_SAMPLER_RATIO must be between 0 and 1")
	}
	if cfg.TaskTimeout <= 0 {
		cfg.TaskTimeout = 30 * time.Second
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		d, err := time.ParseDuration(v)
		if err == nil {
			return d
		}
	}
	return def
}

func getInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getFloat(key string, def float64) float64 {
	if v, ok := os.LookupEnv(key); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}

func getBool(key string, def bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		switch strings.ToLower(v) {
		case "1", "true", "t", "yes", "y", "on":
			return true
		case "0", "false", "f", "no", "n", "off":
			return false
		}
	}
	return def
}
