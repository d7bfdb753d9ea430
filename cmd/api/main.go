package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/pbaches/stockwatch/internal/alerting"
	"github.com/pbaches/stockwatch/internal/config"
	"github.com/pbaches/stockwatch/internal/httpapi"
	"github.com/pbaches/stockwatch/internal/logging"
	"github.com/pbaches/stockwatch/internal/metrics"
	"github.com/pbaches/stockwatch/internal/notify"
	"github.com/pbaches/stockwatch/internal/quote"
	"github.com/pbaches/stockwatch/internal/repo"
	"github.com/pbaches/stockwatch/internal/repo/memory"
	"github.com/pbaches/stockwatch/internal/repo/postgres"
	"github.com/pbaches/stockwatch/internal/scheduler"
)

func main() {
	cfg := config.FromEnv()
	logger, err := logging.NewLogger(cfg.LogDir)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store repo.AlertStore
	if cfg.DatabaseURL != "" {
		pg, err := postgres.New(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			logger.Error("postgres_connect_error", zap.Error(err))
			log.Fatal(err)
		}
		defer pg.Close()
		store = pg
		logger.Info("store_postgres")
	} else {
		store = memory.New()
		logger.Info("store_memory")
	}

	client := quote.NewClient(cfg.QuoteBaseURL, cfg.QuoteTimeout, logger)
	client.Region = cfg.QuoteRegion
	client.Range = cfg.QuoteRange

	var fetcher quote.Fetcher = client
	if cfg.RetryAttempts > 1 {
		fetcher = &quote.RetryFetcher{
			Inner:    client,
			Attempts: cfg.RetryAttempts,
			Backoff:  cfg.RetryBackoff,
		}
	}

	ev := alerting.New(logger, store, fetcher, cfg.MaxConcurrentFetches)
	ev.Metrics = metrics.New(prometheus.DefaultRegisterer)
	if slack := notify.NewSlack(cfg.SlackWebhook); slack != nil {
		ev.Notifier = notify.Multi{slack}
		logger.Info("slack_notifier_enabled")
	}

	api := httpapi.NewServer(logger, store, fetcher, ev, cfg.Watchlist)
	api.FetchConcurrency = cfg.MaxConcurrentFetches
	api.AllowedOrigins = cfg.AllowedOrigins
	api.RateLimitRPM = cfg.RateLimitRPM
	api.RateLimitBurst = cfg.RateLimitBurst

	loop := scheduler.NewLoop(logger, ev, cfg.CheckInterval)
	go loop.Run(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("api_listen", zap.String("addr", cfg.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	logger.Info("api_stopped")
}
