package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/capture-portal/internal/api/dto"
	"github.com/spec-kit/capture-portal/internal/domain"
	"github.com/spec-kit/capture-portal/internal/service"
)

// AdminHandler serves the gated admin routes.
type AdminHandler struct {
	service *service.AdminService
	flash   *Flash
	logger  *zap.Logger
}

// NewAdminHandler constructs handler.
func NewAdminHandler(adminService *service.AdminService, flash *Flash, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{service: adminService, flash: flash, logger: logger}
}

// Page GET /admin.
func (h *AdminHandler) Page(c *fiber.Ctx) error {
	mode, err := h.service.CurrentMode(c.UserContext())
	if err != nil {
		return err
	}
	return c.Render("admin", fiber.Map{
		"Title": "Portal admin",
		"Mode":  string(mode),
		"Flash": h.flash.Pop(c),
	})
}

// SetMode POST /admin. Unknown modes leave the stored mode unchanged.
func (h *AdminHandler) SetMode(c *fiber.Ctx) error {
	var req dto.ModeRequest
	_ = c.BodyParser(&req)

	message := "Mode unchanged."
	if err := req.Validate(); err == nil {
		changed, err := h.service.SetMode(c.UserContext(), domain.Mode(req.Mode))
		if err != nil {
			return err
		}
		if changed {
			message = fmt.Sprintf("Mode set to %s.", req.Mode)
		}
	}

	if err := h.flash.Set(c, message); err != nil {
		h.logger.Warn("store flash message", zap.Error(err))
	}
	return c.Redirect("/admin", fiber.StatusSeeOther)
}

// Submissions GET /admin/submissions.
func (h *AdminHandler) Submissions(c *fiber.Ctx) error {
	rows, err := h.service.ListApplicants(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewApplicantsResponse(rows))
}

// Credentials GET /admin/credentials.
func (h *AdminHandler) Credentials(c *fiber.Ctx) error {
	rows, err := h.service.ListCredentials(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewCredentialsResponse(rows))
}
