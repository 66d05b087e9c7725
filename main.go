package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/cohort-stats/skills-dashboard/api"
	"github.com/cohort-stats/skills-dashboard/pkg/circuitbreaker"
	"github.com/cohort-stats/skills-dashboard/pkg/core"
	"github.com/cohort-stats/skills-dashboard/pkg/lookup"
	redisLocal "github.com/cohort-stats/skills-dashboard/pkg/redis"
)

const (
	shutdownTimeout = 5 * time.Second
	breakerName     = "lookup"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := core.LoadEnv(); err != nil {
		// .env files are optional
		log.Printf("env files: %v", err)
	}

	cfg, err := core.NewConfigFromEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	otelService, err := core.NewOtelService(ctx, &cfg)
	if err != nil {
		log.Printf("otel disabled: %v", err)
		otelService = core.NewNoopOtelService()
	}

	logger := core.NewLoggerWithOtel(cfg, otelService)
	slog.SetDefault(logger)

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		otelService.Shutdown(shutdownCtx, logger)
	}()

	_, span := otelService.Tracer("main").Start(ctx, "startup")
	span.AddEvent("Starting up")
	span.End()

	logAPIKey(logger, cfg.Lookup.APIKey, time.Now())

	rdb := redisLocal.NewClient(cfg.Redis, logger)
	if rdb != nil {
		defer rdb.Close()
	}

	app, err := buildApp(&cfg, otelService, logger, rdb)
	if err != nil {
		logger.Error("failed to build app", slog.Any("err", err))
		return
	}

	logger.Info("listening", slog.String("addr", cfg.ListenAddr()))
	if err := runServer(ctx, app, cfg.ListenAddr()); err != nil {
		logger.Error("server error", slog.Any("err", err))
	}
}

func buildApp(cfg *core.Config, otelService core.OtelService, logger *slog.Logger, rdb *redis.Client) (*fiber.App, error) {
	svc, err := lookup.New(&cfg.Lookup, lookup.Options{
		Logger: logger,
		Tracer: otelService.Tracer("lookup"),
		Meter:  otelService.Meter("lookup"),
	})
	if err != nil {
		return nil, fmt.Errorf("lookup client: %w", err)
	}

	if rdb != nil {
		breaker := circuitbreaker.NewRedisBreaker(rdb, breakerName, circuitbreaker.DefaultOptions(), logger)
		svc = lookup.WithBreaker(svc, breaker)
	}

	return api.New(&api.Config{
		Otel:   otelService,
		Logger: logger,
		Lookup: svc,
		Redis:  rdb,
		Config: *cfg,
	})
}

// logAPIKey surfaces misconfigured keys at startup. The key itself is never
// logged.
func logAPIKey(logger *slog.Logger, key string, now time.Time) {
	info, err := lookup.InspectAPIKey(key, now)
	if errors.Is(err, lookup.ErrOpaqueKey) {
		logger.Info("lookup api key is opaque")
		return
	}

	attrs := []any{
		slog.String("role", info.Role),
		slog.String("issuer", info.Issuer),
	}
	if !info.ExpiresAt.IsZero() {
		attrs = append(attrs, slog.Time("expires_at", info.ExpiresAt))
	}

	if info.Expired {
		logger.Warn("lookup api key has expired", attrs...)
		return
	}
	logger.Info("lookup api key", attrs...)
}

func runServer(ctx context.Context, app *fiber.App, addr string) error {
	srvErr := make(chan error, 1)

	go func() {
		srvErr <- app.Listen(addr)
	}()

	select {
	case err := <-srvErr:
		return err
	case <-ctx.Done():
	}

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		return fmt.Errorf("error during shutdown: %w", err)
	}
	return nil
}
