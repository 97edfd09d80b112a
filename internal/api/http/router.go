package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spec-kit/capture-portal/internal/api/http/handlers"
	"github.com/spec-kit/capture-portal/internal/auth"
	"github.com/spec-kit/capture-portal/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Portal    *handlers.PortalHandler
	Forms     *handlers.FormsHandler
	Admin     *handlers.AdminHandler
	AdminGate *auth.AdminGate
	Metrics   *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(cfg.Metrics.Registry(), promhttp.HandlerOpts{})))
	}

	app.Get("/", cfg.Portal.Root)
	app.Get("/main", cfg.Portal.Root)
	for _, path := range handlers.CaptiveProbePaths {
		app.Get(path, cfg.Portal.Probe)
	}

	app.Get("/survey", cfg.Forms.SurveyForm)
	app.Post("/submit-survey", cfg.Forms.SubmitSurvey)
	app.Get("/apply", cfg.Forms.ApplyForm)
	app.Post("/apply", cfg.Forms.SubmitApplication)
	app.Get("/login", cfg.Forms.LoginForm)
	app.Post("/login", cfg.Forms.SubmitLogin)

	admin := app.Group("/admin", cfg.AdminGate.Handle)
	admin.Get("", cfg.Admin.Page)
	admin.Post("", cfg.Admin.SetMode)
	admin.Get("/submissions", cfg.Admin.Submissions)
	admin.Get("/credentials", cfg.Admin.Credentials)
}
