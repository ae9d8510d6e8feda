// Coffeecloud server: HTTP API for drink profiles, orders and
// serial number tracking of fulfilled cups.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iudanet/coffeecloud/internal/config"
	"github.com/iudanet/coffeecloud/internal/events"
	"github.com/iudanet/coffeecloud/internal/logging"
	"github.com/iudanet/coffeecloud/internal/server"
	"github.com/iudanet/coffeecloud/internal/server/handlers"
	"github.com/iudanet/coffeecloud/internal/server/middleware"
	"github.com/iudanet/coffeecloud/internal/server/storage"
	"github.com/iudanet/coffeecloud/internal/server/storage/redis"
	"github.com/iudanet/coffeecloud/internal/server/storage/sqlite"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	envFile := flag.String("env-file", "", "Path to .env file (default: ./.env if present)")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, *configPath, *envFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run запускает сервер и блокирует до отмены ctx
func run(ctx context.Context, configPath, envFile string) error {
	var envFiles []string
	if envFile != "" {
		envFiles = append(envFiles, envFile)
	}

	cfg, err := config.Load(configPath, envFiles...)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, logCloser := logging.New(cfg.Logging, Version)
	defer func() {
		_ = logCloser.Close()
	}()

	logger.InfoContext(ctx, "starting coffeecloud server",
		slog.String("version", Version),
		slog.String("commit", GitCommit),
		slog.String("build_date", BuildDate))

	db, err := sqlite.New(ctx, cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.Error("error closing database", slog.Any("error", closeErr))
		}
	}()
	logger.InfoContext(ctx, "database ready", slog.String("path", cfg.Database.Path))

	blacklist, closeBlacklist, err := newBlacklist(ctx, cfg.Blacklist, db)
	if err != nil {
		return err
	}
	defer closeBlacklist()
	logger.InfoContext(ctx, "token blacklist ready", slog.String("backend", cfg.Blacklist.Backend))

	publisher, err := events.New(cfg.Events, logger)
	if err != nil {
		return fmt.Errorf("connecting event publisher: %w", err)
	}
	defer func() {
		if closeErr := publisher.Close(); closeErr != nil {
			logger.Error("error closing event publisher", slog.Any("error", closeErr))
		}
	}()
	logger.InfoContext(ctx, "event publisher ready", slog.String("backend", cfg.Events.Backend))

	var limiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		trusted, err := middleware.ParseTrustedProxies(cfg.RateLimit.TrustedProxies)
		if err != nil {
			return fmt.Errorf("parsing trusted proxies: %w", err)
		}
		limiter = middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, 10*time.Minute).
			WithTrustedProxies(trusted)
		defer limiter.Stop()
	}

	router := server.NewRouter(server.Deps{
		Logger:      logger,
		Store:       db,
		Blacklist:   blacklist,
		Publisher:   publisher,
		RateLimiter: limiter,
		Version:     Version,
		JWT: handlers.JWTConfig{
			Secret:          []byte(cfg.JWT.Secret),
			Issuer:          cfg.JWT.Issuer,
			AccessTokenTTL:  cfg.JWT.AccessTTL,
			RefreshTokenTTL: cfg.JWT.RefreshTTL,
		},
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}

	// stopJanitor отрабатывает до закрытия blacklist и БД на любом пути выхода
	stopJanitor := server.StartBlacklistJanitor(ctx, logger, blacklist, cfg.Blacklist.PurgeInterval)
	defer stopJanitor()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", slog.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", slog.Any("error", err))
	}
	stopJanitor()

	logger.Info("server stopped")
	return nil
}

// newBlacklist выбирает хранилище отозванных токенов
func newBlacklist(ctx context.Context, cfg config.BlacklistConfig, db *sqlite.Storage) (storage.TokenBlacklist, func(), error) {
	switch cfg.Backend {
	case config.BlacklistRedis:
		rb, err := redis.New(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting redis blacklist: %w", err)
		}
		return rb, func() { _ = rb.Close() }, nil
	default:
		return db, func() {}, nil
	}
}

func printVersion() {
	fmt.Printf("Coffeecloud Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
