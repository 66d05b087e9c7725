package api

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"go.opentelemetry.io/otel/codes"

	"github.com/gofiber/contrib/otelfiber/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
	"github.com/redis/go-redis/v9"
	slogfiber "github.com/samber/slog-fiber"

	"github.com/cohort-stats/skills-dashboard/api/middleware"
	"github.com/cohort-stats/skills-dashboard/api/routes"
	"github.com/cohort-stats/skills-dashboard/pkg/core"
	"github.com/cohort-stats/skills-dashboard/pkg/dashboard"
)

//go:embed views/*.html
var viewsFS embed.FS

func errorHandler(logger *slog.Logger, otel core.OtelService) fiber.ErrorHandler {
	handleFiberError := func(ctx *fiber.Ctx, err *fiber.Error) error {
		span := otel.SpanFromContext(ctx.UserContext())
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Message)

		logger.ErrorContext(
			ctx.UserContext(),
			"Fiber Error",
			"Code",
			err.Code,
			"Message",
			err.Message,
		)

		return ctx.
			Status(err.Code).
			SendString(err.Message)
	}

	return func(ctx *fiber.Ctx, err error) error {
		var e *fiber.Error
		if !errors.As(err, &e) {
			e = fiber.ErrInternalServerError
		}
		return handleFiberError(ctx, e)
	}
}

func stackTraceHandler(logger *slog.Logger) func(*fiber.Ctx, any) {
	return func(c *fiber.Ctx, e any) {
		stack := debug.Stack()
		logger.ErrorContext(
			c.UserContext(),
			"panic!",
			"stack",
			stack,
			"err",
			e,
		)
	}
}

func newViewEngine() (*html.Engine, error) {
	views, err := fs.Sub(viewsFS, "views")
	if err != nil {
		return nil, fmt.Errorf("views: %w", err)
	}

	engine := html.NewFileSystem(http.FS(views), ".html")
	engine.AddFunc("pct", dashboard.BarWidth)
	return engine, nil
}

type Config struct {
	Otel   core.OtelService
	Logger *slog.Logger
	// Usually the breaker-wrapped lookup client.
	Lookup dashboard.Lookuper
	// Nil when Redis is disabled.
	Redis *redis.Client
	// Defaults to time.Now.
	Now func() time.Time
	core.Config
}

func New(cfg *Config) (*fiber.App, error) {
	if cfg.Lookup == nil {
		return nil, errors.New("lookup service is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Otel == nil {
		cfg.Otel = core.NewNoopOtelService()
	}

	engine, err := newViewEngine()
	if err != nil {
		return nil, err
	}

	fiberConfig := fiber.Config{
		ErrorHandler: errorHandler(cfg.Logger, cfg.Otel),
		Views:        engine,
	}

	app := fiber.New(fiberConfig)

	app.Use(recover.New(recover.Config{
		Next:              nil,
		EnableStackTrace:  true,
		StackTraceHandler: stackTraceHandler(cfg.Logger),
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "*",
		AllowMethods: "*",
	}))

	app.Use(otelfiber.Middleware())

	app.Use(slogfiber.NewWithConfig(
		cfg.Logger,
		slogfiber.Config{
			WithRequestID: true,
			WithSpanID:    true,
			WithTraceID:   true,
		},
	))

	deps := routes.Deps{
		Site:   cfg.Site,
		Lookup: cfg.Lookup,
		Redis:  cfg.Redis,
		Logger: cfg.Logger,
		Now:    cfg.Now,
	}

	if !cfg.SkipAuth {
		verifier, err := middleware.NewCognitoVerifier(cfg.Cognito, cfg.Logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize cognito middleware: %w", err)
		}
		deps.APIGate = verifier.Handler()
	}

	routes.RegisterRoutes(app, deps)

	return app, nil
}
