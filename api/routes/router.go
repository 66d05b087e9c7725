package routes

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/cohort-stats/skills-dashboard/api/handlers"
	"github.com/cohort-stats/skills-dashboard/pkg/core"
	"github.com/cohort-stats/skills-dashboard/pkg/dashboard"
)

type Deps struct {
	Site   core.SiteConfig
	Lookup dashboard.Lookuper
	Redis  *redis.Client
	Logger *slog.Logger
	Now    handlers.Clock
	// Applied to /api when set.
	APIGate fiber.Handler
}

func RegisterRoutes(app fiber.Router, deps Deps) {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	app.Get("/", handlers.DashboardPage(deps.Site, deps.Now))
	app.Post("/", handlers.DashboardSubmit(deps.Lookup, deps.Site, deps.Now, deps.Logger))

	api := app.Group("/api")
	if deps.APIGate != nil {
		api.Use(deps.APIGate)
	}
	api.Post("/lookup", handlers.LookupHandler(deps.Lookup, deps.Site, deps.Now, deps.Logger))

	StatusRouter(app, deps.Redis)
}
