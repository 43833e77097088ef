package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SEED_URL", "")
	t.Setenv("EXCHANGE_RATE", "")
	t.Setenv("DATABASE_URL", "")

	cfg := Load()
	require.Equal(t, DefaultSeedURL, cfg.SeedURL)
	require.Equal(t, 16000.0, cfg.ExchangeRate)
	require.Equal(t, "Sheet1!A2:G9999", cfg.SheetsRange)
	require.Equal(t, "fashion_products", cfg.DatabaseTable)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SEED_URL", "http://localhost:8080/")
	t.Setenv("EXCHANGE_RATE", "15500.5")
	t.Setenv("PAGE_DELAY", "250")
	t.Setenv("HTTP_TIMEOUT", "5s")
	t.Setenv("MAX_PAGES", "not-a-number")

	cfg := Load()
	require.Equal(t, "http://localhost:8080/", cfg.SeedURL)
	require.Equal(t, 15500.5, cfg.ExchangeRate)
	require.Equal(t, 250*time.Millisecond, cfg.PageDelay)
	require.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	require.Equal(t, 0, cfg.MaxPages)
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		PostgresHost:     "db",
		PostgresPort:     "5432",
		PostgresUser:     "u",
		PostgresPassword: "p",
		PostgresDB:       "products",
		PostgresSSLMode:  "disable",
	}
	require.Equal(t, "host=db port=5432 user=u password=p dbname=products sslmode=disable", cfg.DSN())

	cfg.DatabaseURL = "sqlite://products.db"
	require.Equal(t, "sqlite://products.db", cfg.DSN())
}
