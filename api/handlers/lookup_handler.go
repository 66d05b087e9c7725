package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/cohort-stats/skills-dashboard/pkg/circuitbreaker"
	"github.com/cohort-stats/skills-dashboard/pkg/core"
	"github.com/cohort-stats/skills-dashboard/pkg/dashboard"
	"github.com/cohort-stats/skills-dashboard/pkg/lookup"
)

// LookupHandler is the JSON variant of DashboardSubmit. The body is the
// same view model the page is rendered from. Each request gets its own
// controller, so the in-progress guard never fires here.
func LookupHandler(svc dashboard.Lookuper, site core.SiteConfig, now Clock, logger *slog.Logger) fiber.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	logger = logger.With(slog.String("handler", "LookupHandler"))

	return func(c *fiber.Ctx) error {
		var req lookup.Request
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		ctrl := dashboard.NewController(svc, logger)
		ctrl.SetEmail(req.Email)
		err := ctrl.Submit(c.UserContext())

		view := dashboard.NewView(ctrl.State(), siteNow(now, site))
		return c.Status(statusFor(err)).JSON(view)
	}
}

func statusFor(err error) int {
	switch {
	case err == nil:
		return fiber.StatusOK
	case errors.Is(err, dashboard.ErrInvalidEmail):
		return fiber.StatusBadRequest
	case errors.Is(err, dashboard.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, circuitbreaker.ErrCircuitOpen),
		errors.Is(err, circuitbreaker.ErrBreakerUnavailable):
		return fiber.StatusServiceUnavailable
	default:
		// upstream status errors and anything unexpected
		return fiber.StatusBadGateway
	}
}
