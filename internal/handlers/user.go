package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tastytalk/admin-backend/internal/models"
	"github.com/tastytalk/admin-backend/internal/services"
	"github.com/tastytalk/admin-backend/pkg/logger"
)

// UserHandler handles HTTP requests related to app users
type UserHandler struct {
	admin *services.AdminService
	log   *logger.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(admin *services.AdminService, log *logger.Logger) *UserHandler {
	return &UserHandler{admin: admin, log: log}
}

// RegisterUserRoutes registers user management routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/manage_users", h.ManageUsers)
	g.POST("/edit_user", h.EditUser)
}

// ManageUsers lists every user with their average rating and cooking level
func (h *UserHandler) ManageUsers(c echo.Context) error {
	ctx := c.Request().Context()
	users, err := h.admin.ListUsers(ctx)
	if err != nil {
		h.log.Error(ctx, "listing users", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load users")
	}
	return c.Render(http.StatusOK, "manage_users.html", echo.Map{
		"Active": "manage_users",
		"Users":  users,
	})
}

// EditUser overwrites the editable fields of a user
func (h *UserHandler) EditUser(c echo.Context) error {
	ctx := c.Request().Context()

	var req models.EditUserRequest
	if err := c.Bind(&req); err != nil {
		h.log.Warn(ctx, "binding edit user form", err)
		return c.Redirect(http.StatusFound, "/manage_users")
	}
	ctx = h.log.WithField(ctx, "uid", req.UID)

	if err := c.Validate(&req); err != nil {
		h.log.Warn(ctx, "rejected edit user form", err)
		return c.Redirect(http.StatusFound, "/manage_users")
	}

	if err := h.admin.EditUser(ctx, req); err != nil {
		h.log.Error(ctx, "editing user", err)
		return c.Redirect(http.StatusFound, "/manage_users")
	}
	h.log.Info(ctx, "user updated")
	return c.Redirect(http.StatusFound, "/manage_users")
}
