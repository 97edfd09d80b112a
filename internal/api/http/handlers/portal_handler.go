package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/capture-portal/internal/domain"
	"github.com/spec-kit/capture-portal/internal/modestore"
)

// CaptiveProbePaths are the connectivity-check URLs operating systems request
// to detect a captive portal.
var CaptiveProbePaths = []string{
	"/generate_204",
	"/gen_204",
	"/hotspot-detect.html",
	"/library/test/success.html",
	"/ncsi.txt",
	"/connecttest.txt",
	"/redirect",
	"/success.txt",
	"/canonical.html",
	"/check_network_status.txt",
	"/kindle-wifi/wifistub.html",
}

// PortalHandler serves the site root.
type PortalHandler struct {
	modes      modestore.Store
	enabled    bool
	gatewayURL string
}

// NewPortalHandler constructs handler.
func NewPortalHandler(modes modestore.Store, enabled bool, gatewayURL string) *PortalHandler {
	return &PortalHandler{modes: modes, enabled: enabled, gatewayURL: gatewayURL}
}

// Root GET / and /main.
func (h *PortalHandler) Root(c *fiber.Ctx) error {
	if !h.enabled {
		return c.Render("index", fiber.Map{"Title": "Sign in"})
	}
	mode, err := h.modes.Get(c.UserContext())
	if err != nil {
		return err
	}
	if mode == domain.ModeApply {
		return c.Render("job_application", fiber.Map{"Title": "Job application"})
	}
	return c.Render("survey", fiber.Map{"Title": "Survey"})
}

// Probe redirects connectivity checks to the gateway so the client opens the portal.
func (h *PortalHandler) Probe(c *fiber.Ctx) error {
	return c.Redirect(h.gatewayURL, fiber.StatusFound)
}
