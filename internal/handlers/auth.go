package handlers

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/tastytalk/admin-backend/internal/middleware"
	"github.com/tastytalk/admin-backend/internal/models"
	"github.com/tastytalk/admin-backend/pkg/config"
	"github.com/tastytalk/admin-backend/pkg/logger"
)

// AuthHandler handles the admin login and logout
type AuthHandler struct {
	admin    config.AdminConfig
	sessions *middleware.SessionManager
	log      *logger.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(admin config.AdminConfig, sessions *middleware.SessionManager, log *logger.Logger) *AuthHandler {
	return &AuthHandler{admin: admin, sessions: sessions, log: log}
}

// RegisterAuthRoutes registers the login routes. limit guards POST /login.
func (h *AuthHandler) RegisterAuthRoutes(e *echo.Echo, limit echo.MiddlewareFunc) {
	e.GET("/", h.Index)
	e.GET("/login", h.LoginPage)
	if limit != nil {
		e.POST("/login", h.Login, limit)
	} else {
		e.POST("/login", h.Login)
	}
	e.GET("/logout", h.Logout)
}

func (h *AuthHandler) Index(c echo.Context) error {
	return c.Redirect(http.StatusFound, "/login")
}

func (h *AuthHandler) LoginPage(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", echo.Map{
		"Failed":      c.QueryParam("error") != "",
		"AuthEnabled": h.sessions.Enabled(),
	})
}

// Login checks the admin credentials and starts a session
func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	if !h.sessions.Enabled() {
		return c.Redirect(http.StatusFound, "/dashboard")
	}

	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		h.log.Warn(ctx, "binding login form", err)
		return c.Redirect(http.StatusFound, "/login?error=invalid")
	}
	if err := c.Validate(&req); err != nil {
		h.log.Warn(ctx, "rejected login form", err)
		return c.Redirect(http.StatusFound, "/login?error=invalid")
	}

	if !h.checkCredentials(req) {
		h.log.Warn(h.log.WithField(ctx, "email", req.Email), "failed admin login", nil)
		return c.Redirect(http.StatusFound, "/login?error=invalid")
	}

	if err := h.sessions.Issue(c, h.admin.Email); err != nil {
		h.log.Error(ctx, "issuing admin session", err)
		return c.Redirect(http.StatusFound, "/login?error=invalid")
	}
	h.log.Info(ctx, "admin logged in")
	return c.Redirect(http.StatusFound, "/dashboard")
}

func (h *AuthHandler) Logout(c echo.Context) error {
	h.sessions.Clear(c)
	return c.Redirect(http.StatusFound, "/login")
}

func (h *AuthHandler) checkCredentials(req models.LoginRequest) bool {
	emailOK := subtle.ConstantTimeCompare(
		[]byte(strings.ToLower(strings.TrimSpace(req.Email))),
		[]byte(strings.ToLower(strings.TrimSpace(h.admin.Email))),
	) == 1
	// bcrypt runs on every attempt, matching email or not.
	passwordOK := bcrypt.CompareHashAndPassword([]byte(h.admin.PasswordHash), []byte(req.Password)) == nil
	return emailOK && passwordOK
}
