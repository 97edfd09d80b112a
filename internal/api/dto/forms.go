package dto

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ApplicationRequest is the job application form payload. Every field is
// optional; the resume file part is read separately.
type ApplicationRequest struct {
	FullName   string `form:"full_name"`
	Email      string `form:"email"`
	Phone      string `form:"phone"`
	Position   string `form:"position"`
	Experience string `form:"experience"`
	Skills     string `form:"skills"`
}

// Normalize trims surrounding whitespace from every field.
func (r *ApplicationRequest) Normalize() {
	r.FullName = strings.TrimSpace(r.FullName)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Position = strings.TrimSpace(r.Position)
	r.Experience = strings.TrimSpace(r.Experience)
	r.Skills = strings.TrimSpace(r.Skills)
}

// LoginRequest is the login form payload.
type LoginRequest struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// Validate trims the username and checks both fields are present.
func (r *LoginRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	return validate.Struct(r)
}

// ModeRequest is the admin mode toggle payload.
type ModeRequest struct {
	Mode string `form:"mode" validate:"required,oneof=survey apply"`
}

// Validate checks the requested mode is one of the known literals.
func (r *ModeRequest) Validate() error {
	r.Mode = strings.TrimSpace(r.Mode)
	return validate.Struct(r)
}
