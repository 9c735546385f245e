package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

const (
	defaultJWTSecret = "change-me-jwt-secret"
	defaultTaxRate   = "0.10"
)

type Config struct {
	AppEnv   string
	HTTPAddr string
	LogLevel string

	DatabaseURL string

	JWTSecret string
	JWTTTL    time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	StatsCacheTTL time.Duration
	NotifyQueue   string

	CORSAllowedOrigins []string
	RequestTimeout     time.Duration

	TaxRate  decimal.Decimal
	Currency string

	SweepInterval time.Duration
	NoShowGrace   time.Duration
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		AppEnv:             strings.ToLower(strings.TrimSpace(v.GetString("APP_ENV"))),
		HTTPAddr:           strings.TrimSpace(v.GetString("HTTP_ADDR")),
		LogLevel:           strings.TrimSpace(v.GetString("LOG_LEVEL")),
		DatabaseURL:        strings.TrimSpace(v.GetString("DATABASE_URL")),
		JWTSecret:          strings.TrimSpace(v.GetString("JWT_SECRET")),
		JWTTTL:             v.GetDuration("JWT_TTL"),
		RedisAddr:          strings.TrimSpace(v.GetString("REDIS_ADDR")),
		RedisPassword:      v.GetString("REDIS_PASSWORD"),
		RedisDB:            v.GetInt("REDIS_DB"),
		StatsCacheTTL:      v.GetDuration("STATS_CACHE_TTL"),
		NotifyQueue:        strings.TrimSpace(v.GetString("NOTIFY_QUEUE")),
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		RequestTimeout:     v.GetDuration("REQUEST_TIMEOUT"),
		Currency:           strings.ToUpper(strings.TrimSpace(v.GetString("CURRENCY"))),
		SweepInterval:      v.GetDuration("SWEEP_INTERVAL"),
		NoShowGrace:        v.GetDuration("NO_SHOW_GRACE"),
	}

	rate, err := decimal.NewFromString(strings.TrimSpace(v.GetString("TAX_RATE")))
	if err != nil {
		return nil, fmt.Errorf("invalid TAX_RATE value %q: %w", v.GetString("TAX_RATE"), err)
	}
	cfg.TaxRate = rate

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "dev")
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DATABASE_URL", "hotel.db")
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_TTL", "24h")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("STATS_CACHE_TTL", "1m")
	v.SetDefault("NOTIFY_QUEUE", "hotel:notifications")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")
	v.SetDefault("REQUEST_TIMEOUT", "15s")
	v.SetDefault("TAX_RATE", defaultTaxRate)
	v.SetDefault("CURRENCY", "USD")
	v.SetDefault("SWEEP_INTERVAL", "5m")
	v.SetDefault("NO_SHOW_GRACE", "24h")
}

func validate(cfg *Config) error {
	if cfg.HTTPAddr == "" {
		return fmt.Errorf("HTTP_ADDR must not be empty")
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if cfg.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if cfg.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be > 0")
	}
	if cfg.SweepInterval <= 0 {
		return fmt.Errorf("SWEEP_INTERVAL must be > 0")
	}
	if cfg.NoShowGrace < 0 {
		return fmt.Errorf("NO_SHOW_GRACE must be >= 0")
	}
	if cfg.StatsCacheTTL < 0 {
		return fmt.Errorf("STATS_CACHE_TTL must be >= 0")
	}
	if cfg.TaxRate.IsNegative() || cfg.TaxRate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("TAX_RATE must be between 0 and 1")
	}
	if len(cfg.Currency) != 3 {
		return fmt.Errorf("CURRENCY must be a 3-letter code")
	}

	if cfg.IsProdLike() {
		if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
	}
	return nil
}

func (c *Config) IsProdLike() bool {
	return c.AppEnv == "prod" || c.AppEnv == "production" || c.AppEnv == "release"
}

func splitList(raw string) []string {
	out := make([]string, 0)
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
