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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	httpAdapter "github.com/iho/ledgerfix/internal/adapter/http"
	"github.com/iho/ledgerfix/internal/adapter/http/handler"
	"github.com/iho/ledgerfix/internal/adapter/http/middleware"
	"github.com/iho/ledgerfix/internal/app"
	"github.com/iho/ledgerfix/internal/infrastructure/auth"
	"github.com/iho/ledgerfix/internal/infrastructure/config"
	"github.com/iho/ledgerfix/internal/infrastructure/logger"
)

const limiterIdle = time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	jwtManager, err := newJWTManager(cfg)
	if err != nil {
		return err
	}

	a, err := app.New(ctx, cfg, log, app.Options{Registerer: prometheus.DefaultRegisterer})
	if err != nil {
		return err
	}
	defer a.Close()

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go forgetIdleClients(ctx, limiter, log)

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		HealthHandler: handler.NewHealthHandler(a.Pool, a.Redis),
		RepairHandler: handler.NewRepairHandler(a.Repair, a.RepairConfig.Policy),
		JWTManager:    jwtManager,
		RateLimiter:   limiter,
		Logger:        log,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Bool("auth", jwtManager != nil).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("server stopped")
	return nil
}

// newJWTManager returns nil when authentication is disabled.
func newJWTManager(cfg *config.Config) (*auth.JWTManager, error) {
	if !cfg.AuthEnabled {
		return nil, nil
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("AUTH_ENABLED requires JWT_SECRET")
	}
	return auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration), nil
}

func forgetIdleClients(ctx context.Context, limiter *middleware.RateLimiter, log zerolog.Logger) {
	ticker := time.NewTicker(limiterIdle)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := limiter.Forget(limiterIdle); n > 0 {
				log.Debug().Int("clients", n).Msg("forgot idle rate limit clients")
			}
		}
	}
}
