package handlers

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/cohort-stats/skills-dashboard/pkg/core"
	"github.com/cohort-stats/skills-dashboard/pkg/dashboard"
)

const pageTemplate = "index"

type Clock func() time.Time

// siteNow reads the clock in the site's zone so the last-updated label
// matches the cohort's day, not the server's.
func siteNow(now Clock, site core.SiteConfig) time.Time {
	t := now()
	if site.Location != nil {
		return t.In(site.Location)
	}
	return t
}

type page struct {
	Site core.SiteConfig
	View dashboard.View
}

// DashboardPage renders the empty form.
func DashboardPage(site core.SiteConfig, now Clock) fiber.Handler {
	return func(c *fiber.Ctx) error {
		view := dashboard.NewView(dashboard.ViewState{}, siteNow(now, site))
		return c.Render(pageTemplate, page{Site: site, View: view})
	}
}

// DashboardSubmit runs one lookup for the posted email and renders the
// result. Every controller outcome is a 200; the page carries the error.
func DashboardSubmit(svc dashboard.Lookuper, site core.SiteConfig, now Clock, logger *slog.Logger) fiber.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return func(c *fiber.Ctx) error {
		ctrl := dashboard.NewController(svc, logger)
		ctrl.SetEmail(c.FormValue("email"))

		// outcome is already in the state
		_ = ctrl.Submit(c.UserContext())

		view := dashboard.NewView(ctrl.State(), siteNow(now, site))
		return c.Render(pageTemplate, page{Site: site, View: view})
	}
}
