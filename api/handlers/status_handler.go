package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	redisLocal "github.com/cohort-stats/skills-dashboard/pkg/redis"
)

const statusTimeout = 2 * time.Second

// Build a handler that returns a 2** status when the service and its Redis
// (if configured) are reachable
func GetRDBStatus(rdb *redis.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), statusTimeout)
		defer cancel()

		if err := redisLocal.Ping(ctx, rdb); err != nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "redis unavailable")
		}
		return c.SendStatus(fiber.StatusOK)
	}
}

func Healthz(c *fiber.Ctx) error {
	return c.SendString("OK")
}
