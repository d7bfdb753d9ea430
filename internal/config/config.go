package config

import (
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"

	"github.com/pbaches/stockwatch/internal/quote"
)

// DefaultWatchlist is the fixed dashboard list (B3 tickers).
var DefaultWatchlist = []string{
	"PETR4.SA", "VALE3.SA", "ITUB4.SA", "BBDC4.SA", "ABEV3.SA", "UGPA3.SA",
}

type Config struct {
	Addr        string // API bind address, e.g. "127.0.0.1:8080" or ":8080" (Docker)
	LogDir      string // logs directory
	DatabaseURL string // postgres://...; empty means in-memory store

	QuoteBaseURL string
	QuoteRegion  string
	QuoteRange   string
	QuoteTimeout time.Duration

	Watchlist []string // dashboard symbols, comma-separated in env

	RetryAttempts        int           // quote re-fetch attempts for the background loop (1 = no retry)
	RetryBackoff         time.Duration // backoff between attempts
	CheckInterval        time.Duration // background evaluation interval; 0 = page-load only
	MaxConcurrentFetches int

	RateLimitRPM   int // per-IP; 0 disables
	RateLimitBurst int

	SlackWebhook   string
	AllowedOrigins []string // empty = allow all
}

var once sync.Once

func bindEnv() {
	once.Do(func() {
		viper.AutomaticEnv()

		viper.BindEnv("addr", "ADDR")
		viper.BindEnv("log_dir", "LOG_DIR")
		viper.BindEnv("database_url", "DATABASE_URL")
		viper.BindEnv("quote_base_url", "QUOTE_BASE_URL")
		viper.BindEnv("quote_region", "QUOTE_REGION")
		viper.BindEnv("quote_range", "QUOTE_RANGE")
		viper.BindEnv("quote_timeout_ms", "QUOTE_TIMEOUT_MS")
		viper.BindEnv("watchlist", "WATCHLIST")
		viper.BindEnv("retry_attempts", "RETRY_ATTEMPTS")
		viper.BindEnv("retry_backoff_ms", "RETRY_BACKOFF_MS")
		viper.BindEnv("check_interval_ms", "CHECK_INTERVAL_MS")
		viper.BindEnv("max_concurrent_fetches", "MAX_CONCURRENT_FETCHES")
		viper.BindEnv("rate_limit_rpm", "RATE_LIMIT_RPM")
		viper.BindEnv("rate_limit_burst", "RATE_LIMIT_BURST")
		viper.BindEnv("slack_webhook", "SLACK_WEBHOOK")
		viper.BindEnv("allowed_origins", "ALLOWED_ORIGINS")

		viper.SetDefault("addr", "127.0.0.1:8080")
		viper.SetDefault("log_dir", "logs")
		viper.SetDefault("quote_base_url", quote.DefaultBaseURL)
		viper.SetDefault("quote_region", quote.DefaultRegion)
		viper.SetDefault("quote_range", quote.DefaultRange)
		viper.SetDefault("quote_timeout_ms", 10_000)
		viper.SetDefault("watchlist", strings.Join(DefaultWatchlist, ","))
		viper.SetDefault("retry_attempts", 1)
		viper.SetDefault("retry_backoff_ms", 300)
		viper.SetDefault("check_interval_ms", 0)
		viper.SetDefault("max_concurrent_fetches", 4)
		viper.SetDefault("rate_limit_rpm", 120)
		viper.SetDefault("rate_limit_burst", 60)
	})
}

func FromEnv() Config {
	bindEnv()
	return Config{
		Addr:        viper.GetString("addr"),
		LogDir:      viper.GetString("log_dir"),
		DatabaseURL: viper.GetString("database_url"),

		QuoteBaseURL: viper.GetString("quote_base_url"),
		QuoteRegion:  viper.GetString("quote_region"),
		QuoteRange:   viper.GetString("quote_range"),
		QuoteTimeout: time.Duration(viper.GetInt("quote_timeout_ms")) * time.Millisecond,

		Watchlist: splitList(viper.GetString("watchlist")),

		RetryAttempts:        viper.GetInt("retry_attempts"),
		RetryBackoff:         time.Duration(viper.GetInt("retry_backoff_ms")) * time.Millisecond,
		CheckInterval:        time.Duration(viper.GetInt("check_interval_ms")) * time.Millisecond,
		MaxConcurrentFetches: viper.GetInt("max_concurrent_fetches"),

		RateLimitRPM:   viper.GetInt("rate_limit_rpm"),
		RateLimitBurst: viper.GetInt("rate_limit_burst"),

		SlackWebhook:   viper.GetString("slack_webhook"),
		AllowedOrigins: splitList(viper.GetString("allowed_origins")),
	}
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
