package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// Currency engine
	BaseCurrency   string
	CurrencyBasket []string

	// Upstream rate provider
	ProviderBaseURL   string
	ProviderAccessKey string
	ProviderTimeout   time.Duration

	// Refresh schedule
	RefreshTimes    []string // "HH:MM", in RefreshTimezone
	RefreshTimezone *time.Location
	FreshnessTTL    time.Duration

	// Rate limit applied to the manual refresh endpoint, in ulule/limiter
	// formatted notation (e.g. "5-M" = 5 requests per minute per IP).
	RefreshRateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("BASE_CURRENCY", "USD")
	viper.SetDefault("CURRENCY_BASKET", "AED,EUR,GBP,IDR,JPY,SGD")
	viper.SetDefault("PROVIDER_BASE_URL", "https://api.currencylayer.com")
	viper.SetDefault("PROVIDER_ACCESS_KEY", "")
	viper.SetDefault("PROVIDER_TIMEOUT", "10s")
	viper.SetDefault("REFRESH_TIMES", "00:00,08:00,16:00")
	viper.SetDefault("REFRESH_TIMEZONE", "UTC")
	viper.SetDefault("FRESHNESS_TTL", "8h")
	viper.SetDefault("REFRESH_RATE_LIMIT", "5-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.BaseCurrency = strings.ToUpper(viper.GetString("BASE_CURRENCY"))
	cfg.CurrencyBasket = splitList(viper.GetString("CURRENCY_BASKET"))
	if len(cfg.CurrencyBasket) == 0 {
		log.Println("Warning: CURRENCY_BASKET is empty; nothing will be synchronized.")
	}

	cfg.ProviderBaseURL = viper.GetString("PROVIDER_BASE_URL")
	cfg.ProviderAccessKey = viper.GetString("PROVIDER_ACCESS_KEY")
	if cfg.ProviderAccessKey == "" {
		log.Println("Warning: PROVIDER_ACCESS_KEY not set. Upstream fetches will be rejected.")
	}

	providerTimeoutStr := viper.GetString("PROVIDER_TIMEOUT")
	providerTimeout, err := time.ParseDuration(providerTimeoutStr)
	if err != nil {
		providerTimeout = 10 * time.Second
		log.Printf("Warning: Invalid value for PROVIDER_TIMEOUT ('%s'). Defaulting to %s.\n", providerTimeoutStr, providerTimeout)
	}
	cfg.ProviderTimeout = providerTimeout

	cfg.RefreshTimes = splitList(viper.GetString("REFRESH_TIMES"))
	if len(cfg.RefreshTimes) == 0 {
		cfg.RefreshTimes = []string{"00:00", "08:00", "16:00"}
		log.Printf("Warning: REFRESH_TIMES not set. Defaulting to %v.\n", cfg.RefreshTimes)
	}

	tzName := viper.GetString("REFRESH_TIMEZONE")
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		loc = time.UTC
		log.Printf("Warning: Invalid value for REFRESH_TIMEZONE ('%s'). Defaulting to UTC.\n", tzName)
	}
	cfg.RefreshTimezone = loc

	ttlStr := viper.GetString("FRESHNESS_TTL")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		ttl = 8 * time.Hour
		log.Printf("Warning: Invalid value for FRESHNESS_TTL ('%s'). Defaulting to %s.\n", ttlStr, ttl)
	}
	cfg.FreshnessTTL = ttl

	cfg.RefreshRateLimit = viper.GetString("REFRESH_RATE_LIMIT")

	return cfg, nil
}

// splitList parses a comma-separated list, trimming whitespace and
// upper-casing each entry.
func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToUpper(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
