package auth

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/spec-kit/capture-portal/pkg/util"
)

const (
	// AdminTokenHeader carries the admin token as an alternative to ?token=.
	AdminTokenHeader = "X-Admin-Token"
	// AdminSessionCookie holds the signed admin session.
	AdminSessionCookie = "portal_admin"
)

// AdminGate admits callers presenting the configured admin token or a valid
// admin session cookie. An empty configured token denies everyone.
type AdminGate struct {
	token  string
	tokens *TokenManager
	secure bool
	logger *zap.Logger
}

// NewAdminGate constructs the gate.
func NewAdminGate(token string, tokens *TokenManager, secureCookie bool, logger *zap.Logger) *AdminGate {
	return &AdminGate{token: token, tokens: tokens, secure: secureCookie, logger: logger}
}

// Authorize compares candidate to the configured token in constant time.
func (g *AdminGate) Authorize(candidate string) bool {
	if g.token == "" || candidate == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(g.token)) == 1
}

// Handle enforces admin access for the admin routes.
func (g *AdminGate) Handle(c *fiber.Ctx) error {
	if g.token == "" {
		return apperrors.NewForbidden("admin access disabled")
	}

	candidate := c.Query("token")
	if candidate == "" {
		candidate = c.Get(AdminTokenHeader)
	}
	if candidate != "" {
		if !g.Authorize(candidate) {
			g.logger.Warn("admin token rejected", zap.String("ip", c.IP()), zap.String("path", c.Path()))
			return apperrors.NewForbidden("invalid admin token")
		}
		g.issueSession(c)
		return c.Next()
	}

	if session := c.Cookies(AdminSessionCookie); session != "" && g.tokens.ParseToken(session) == nil {
		return c.Next()
	}
	return apperrors.NewForbidden("invalid admin token")
}

func (g *AdminGate) issueSession(c *fiber.Ctx) {
	signed, expiresAt, err := g.tokens.GenerateToken()
	if err != nil {
		g.logger.Error("issue admin session", zap.Error(err))
		return
	}
	c.Cookie(&fiber.Cookie{
		Name:     AdminSessionCookie,
		Value:    signed,
		Path:     "/admin",
		Expires:  expiresAt,
		HTTPOnly: true,
		Secure:   g.secure,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}
