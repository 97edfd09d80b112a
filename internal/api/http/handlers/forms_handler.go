package handlers

import (
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/spec-kit/capture-portal/internal/api/dto"
	"github.com/spec-kit/capture-portal/internal/domain"
	"github.com/spec-kit/capture-portal/internal/service"
	"github.com/spec-kit/capture-portal/internal/uploads"
	apperrors "github.com/spec-kit/capture-portal/pkg/util"
)

// FormsHandler serves the survey, application and login forms.
type FormsHandler struct {
	recorder *service.RecorderService
	surveys  *service.SurveyService
	resumes  *uploads.ResumeIntake
	flash    *Flash
	logger   *zap.Logger
}

// FormsDependencies bundles form handler collaborators.
type FormsDependencies struct {
	Recorder *service.RecorderService
	Surveys  *service.SurveyService
	Resumes  *uploads.ResumeIntake
	Flash    *Flash
	Logger   *zap.Logger
}

// NewFormsHandler constructs handler.
func NewFormsHandler(deps FormsDependencies) *FormsHandler {
	return &FormsHandler{
		recorder: deps.Recorder,
		surveys:  deps.Surveys,
		resumes:  deps.Resumes,
		flash:    deps.Flash,
		logger:   deps.Logger,
	}
}

// SurveyForm GET /survey.
func (h *FormsHandler) SurveyForm(c *fiber.Ctx) error {
	return c.Render("survey", fiber.Map{"Title": "Survey"})
}

// SubmitSurvey POST /submit-survey.
func (h *FormsHandler) SubmitSurvey(c *fiber.Ctx) error {
	fields, err := surveyFields(c)
	if err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.surveys.Submit(c.UserContext(), fields, clientInfo(c)); err != nil {
		return err
	}
	return c.Render("survey_thankyou", fiber.Map{"Title": "Thank you"})
}

// ApplyForm GET /apply.
func (h *FormsHandler) ApplyForm(c *fiber.Ctx) error {
	return c.Render("job_application", fiber.Map{"Title": "Job application"})
}

// SubmitApplication POST /apply.
func (h *FormsHandler) SubmitApplication(c *fiber.Ctx) error {
	var req dto.ApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	req.Normalize()

	file, err := c.FormFile("resume")
	if err != nil {
		file = nil
	}
	resumePath, err := h.resumes.Accept(file)
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	id, err := h.recorder.RecordApplication(c.UserContext(), service.ApplicationInput{
		FullName:   req.FullName,
		Email:      req.Email,
		Phone:      req.Phone,
		Position:   req.Position,
		Experience: req.Experience,
		Skills:     req.Skills,
		ResumePath: resumePath,
	}, clientInfo(c))
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	h.logger.Info("application recorded", zap.Int64("id", id), zap.Bool("resume", resumePath != nil))
	return c.Render("job_thankyou", fiber.Map{"Title": "Application received", "Name": req.FullName})
}

// LoginForm GET /login.
func (h *FormsHandler) LoginForm(c *fiber.Ctx) error {
	return c.Render("index", fiber.Map{"Title": "Sign in", "Flash": h.flash.Pop(c)})
}

// SubmitLogin POST /login.
func (h *FormsHandler) SubmitLogin(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		if flashErr := h.flash.Set(c, "Please enter both username and password."); flashErr != nil {
			h.logger.Warn("store flash message", zap.Error(flashErr))
		}
		return c.Redirect("/login", fiber.StatusFound)
	}

	if _, err := h.recorder.RecordCredential(c.UserContext(), service.CredentialInput{
		Username: req.Username,
		Password: req.Password,
	}, clientInfo(c)); err != nil {
		return apperrors.NewInternalError(err)
	}
	return c.Render("welcome", fiber.Map{"Title": "Welcome", "Username": req.Username})
}

// surveyFields returns the posted fields in payload order. Multipart bodies
// carry no order, so their names are sorted.
func surveyFields(c *fiber.Ctx) ([]service.SurveyField, error) {
	if strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm) {
		form, err := c.MultipartForm()
		if err != nil {
			return nil, err
		}
		names := lo.Keys(form.Value)
		sort.Strings(names)

		fields := make([]service.SurveyField, 0, len(names))
		for _, name := range names {
			if values := form.Value[name]; len(values) > 0 {
				fields = append(fields, service.SurveyField{Name: name, Value: values[0]})
			}
		}
		return fields, nil
	}

	var fields []service.SurveyField
	c.Request().PostArgs().VisitAll(func(key, value []byte) {
		fields = append(fields, service.SurveyField{Name: string(key), Value: string(value)})
	})
	return fields, nil
}

func clientInfo(c *fiber.Ctx) domain.ClientInfo {
	ip := c.IP()
	if ip == "" {
		ip = "unknown"
	}
	return domain.ClientInfo{IP: ip, UserAgent: c.Get(fiber.HeaderUserAgent)}
}
