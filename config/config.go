package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DefaultSeedURL is the first catalog page of the crawl.
const DefaultSeedURL = "https://fashion-studio.dicoding.dev/"

// Config holds all application configuration loaded from environment variables.
type Config struct {
	SeedURL     string
	Fetcher     string
	UserAgent   string
	HTTPTimeout time.Duration
	ChromeBin   string
	MaxPages    int
	PageDelay   time.Duration
	StagingPath string

	ExchangeRate float64

	CSVOutputPath string

	SheetsCredentialsFile string
	SheetsSpreadsheetID   string
	SheetsRange           string

	DatabaseURL      string
	DatabaseTable    string
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
	MaxRetries       int

	LoadConcurrency int
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		SeedURL:     getEnv("SEED_URL", DefaultSeedURL),
		Fetcher:     getEnv("FETCHER", "http"),
		UserAgent:   getEnv("USER_AGENT", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"),
		HTTPTimeout: getEnvDuration("HTTP_TIMEOUT", 30*time.Second),
		ChromeBin:   getEnv("CHROME_BIN", ""),
		MaxPages:    getEnvInt("MAX_PAGES", 0),
		PageDelay:   getEnvDuration("PAGE_DELAY", 0),
		StagingPath: getEnv("STAGING_PATH", "output.jsonl"),

		ExchangeRate: getEnvFloat("EXCHANGE_RATE", 16000),

		CSVOutputPath: getEnv("CSV_OUTPUT_PATH", "products.csv"),

		SheetsCredentialsFile: getEnv("SHEETS_CREDENTIALS_FILE", "google-sheets-api.json"),
		SheetsSpreadsheetID:   getEnv("SHEETS_SPREADSHEET_ID", "1OSXrSugb5Rsc5vmesFjlQ0MXAf-2Fv5Trjm1yBV8LNk"),
		SheetsRange:           getEnv("SHEETS_RANGE", "Sheet1!A2:G9999"),

		DatabaseURL:      getEnv("DATABASE_URL", ""),
		DatabaseTable:    getEnv("DATABASE_TABLE", "fashion_products"),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "developer"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "developer"),
		PostgresDB:       getEnv("POSTGRES_DB", "productsdb"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		MaxRetries:       getEnvInt("MAX_RETRIES", 3),

		LoadConcurrency: getEnvInt("LOAD_CONCURRENCY", 1),
	}
}

// DSN returns the relational connection string. DATABASE_URL wins when set,
// otherwise a PostgreSQL keyword DSN is built from the POSTGRES_* parts.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		f, err := strconv.ParseFloat(val, 64)
		if err == nil {
			return f
		}
	}
	return fallback
}

// getEnvDuration accepts Go durations ("2s") or a bare number of milliseconds.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	if d, err := time.ParseDuration(val); err == nil {
		return d
	}
	if ms, err := strconv.Atoi(val); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	return fallback
}
