package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/cohort-stats/skills-dashboard/api/handlers"
)

// StatusRouter mounts the probes. A nil rdb makes /status a plain liveness
// check.
func StatusRouter(app fiber.Router, rdb *redis.Client) {
	app.Get("/status", handlers.GetRDBStatus(rdb))
	app.Get("/healthz", handlers.Healthz)
}
