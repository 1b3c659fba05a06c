package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"currency-converter/internal/config"
	"currency-converter/internal/handler"
	"currency-converter/internal/metrics"
	"currency-converter/internal/models"
	"currency-converter/internal/provider"
	"currency-converter/internal/repository"
	"currency-converter/internal/service"
	"currency-converter/pkg/database"
	"currency-converter/pkg/logger"
	"currency-converter/pkg/redis"
)

const serviceName = "currency-converter"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(serviceName, cfg.Environment)
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps, cleanup, err := setupRateStore(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to set up rate store", zap.Error(err))
	}
	defer cleanup()

	rateProvider, err := provider.New(cfg, deps)
	if err != nil {
		log.Fatal("failed to create rate provider", zap.Error(err))
	}

	converterMetrics := metrics.NewConverterMetrics(prometheus.DefaultRegisterer)
	converterService := service.NewConverterService(rateProvider, converterMetrics, log)
	converterHandler := handler.NewConverterHandler(ctx, converterService, log)

	// Rates are loaded once at startup; /ready reports loading until then.
	if _, err := converterService.Start(ctx); err != nil {
		log.Fatal("failed to start rate load", zap.Error(err))
	}

	if cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := handler.NewRouter(converterHandler, nil, log)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("starting currency converter",
			zap.String("port", cfg.Port),
			zap.String("rate_source", rateProvider.Name()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()

	log.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("server exited")
}

// setupRateStore connects the store behind RATE_SOURCE and seeds it with
// the default quotes when SEED_RATES is set.
func setupRateStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (provider.Deps, func(), error) {
	noop := func() {}

	switch cfg.RateSource {
	case config.SourcePostgres:
		db, err := database.NewPostgresDB(ctx, cfg.Database.URL)
		if err != nil {
			return provider.Deps{}, noop, err
		}
		repo := repository.NewRateRepository(db.DB)
		if err := repo.EnsureSchema(ctx); err != nil {
			db.Close()
			return provider.Deps{}, noop, fmt.Errorf("failed to create schema: %w", err)
		}
		if cfg.SeedRates {
			if err := provider.SeedPostgres(ctx, repo, models.BaseCurrency, provider.DefaultQuotes); err != nil {
				db.Close()
				return provider.Deps{}, noop, err
			}
			log.Info("seeded exchange_rates with default quotes")
		}
		return provider.Deps{Quotes: repo}, func() { db.Close() }, nil

	case config.SourceRedis:
		client := redis.NewRedisClient(cfg.Redis.URL)
		if err := client.Ping(ctx); err != nil {
			client.Close()
			return provider.Deps{}, noop, fmt.Errorf("failed to ping redis: %w", err)
		}
		if cfg.SeedRates {
			if err := provider.SeedRedis(ctx, client, models.BaseCurrency, provider.DefaultQuotes); err != nil {
				client.Close()
				return provider.Deps{}, noop, err
			}
			log.Info("seeded redis rates hash with default quotes",
				zap.String("key", provider.RatesKey(models.BaseCurrency)))
		}
		return provider.Deps{Hashes: client}, func() { client.Close() }, nil

	default:
		return provider.Deps{}, noop, nil
	}
}
