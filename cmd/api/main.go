package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"homegate_search/internal/geo"
	"homegate_search/internal/geo/repository"
	apphttp "homegate_search/internal/http"
	"homegate_search/internal/http/router"
	"homegate_search/internal/listings"
	"homegate_search/platform/apiclient"
	"homegate_search/platform/config"
	"homegate_search/platform/logger"
	"homegate_search/platform/metrics"
	"homegate_search/platform/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr, "upstream", cfg.HomegateBaseURL)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	m := metrics.New()
	val := validator.New()

	api := apiclient.New(apiclient.Options{
		BaseURL:   cfg.GetHomegateBaseURL(),
		Timeout:   cfg.GetRequestTimeout(),
		RateLimit: cfg.GetUpstreamRateLimit(),
		Burst:     cfg.GetUpstreamBurst(),
		Metrics:   m,
	}, log)

	cache, health, closeCache := initGeoCache(ctx, cfg, log)
	if closeCache != nil {
		defer closeCache()
	}

	// ========================================================================
	// Domain Modules
	// ========================================================================

	geoModule := geo.NewModule(geo.Deps{
		API:          api,
		Language:     cfg.GetLocationSearchLang(),
		ResultsCount: cfg.GetGeoResultsCount(),
		Cache:        cache,
		Metrics:      m,
		Validator:    val,
		Logger:       log,
	})

	listingsModule := listings.NewModule(api, geoModule.Service(), cfg.GetMaxSearchGeo(), val, log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:  cfg,
		Logger:  log,
		Health:  health,
		Metrics: m.Handler(),
		Modules: []apphttp.Module{
			geoModule,
			listingsModule,
		},
	}

	engine := router.New(app)
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", "error", err)
		}
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// initGeoCache picks Redis when REDIS_URL is set, an in-process cache otherwise.
// A zero TTL disables caching.
func initGeoCache(ctx context.Context, cfg config.GeoCacheConfig, log *logger.Logger) (repository.Cache, apphttp.HealthChecker, func()) {
	if !cfg.IsGeoCacheEnabled() {
		log.Info("geo cache disabled")
		return nil, nil, nil
	}

	if cfg.GetRedisURL() == "" {
		log.Info("geo cache using process memory", "ttl", cfg.GetGeoCacheTTL())
		return repository.NewMemoryCache(cfg.GetGeoCacheTTL()), nil, nil
	}

	redisCache, err := repository.NewRedisCacheFromURL(cfg.GetRedisURL(), cfg.GetGeoCacheTTL())
	if err != nil {
		log.Error("invalid REDIS_URL; falling back to memory cache", "error", err)
		return repository.NewMemoryCache(cfg.GetGeoCacheTTL()), nil, nil
	}

	if err := withRetry(ctx, log, "redis connection", 5, time.Second, func() error {
		return redisCache.Ping(ctx)
	}); err != nil {
		log.Error("redis unreachable; falling back to memory cache", "error", err)
		_ = redisCache.Close()
		return repository.NewMemoryCache(cfg.GetGeoCacheTTL()), nil, nil
	}

	log.Info("geo cache using redis", "ttl", cfg.GetGeoCacheTTL())
	return redisCache, redisCache, func() {
		_ = redisCache.Close()
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
