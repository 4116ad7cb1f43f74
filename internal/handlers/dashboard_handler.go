package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tastytalk/admin-backend/internal/services"
	"github.com/tastytalk/admin-backend/pkg/logger"
)

// DashboardHandler renders the usage metrics page
type DashboardHandler struct {
	admin *services.AdminService
	log   *logger.Logger
}

func NewDashboardHandler(admin *services.AdminService, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{admin: admin, log: log}
}

func (h *DashboardHandler) RegisterDashboardRoutes(g *echo.Group) {
	g.GET("/dashboard", h.Dashboard)
}

func (h *DashboardHandler) Dashboard(c echo.Context) error {
	ctx := c.Request().Context()
	dash, err := h.admin.Dashboard(ctx)
	if err != nil {
		h.log.Error(ctx, "loading dashboard", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load dashboard")
	}
	return c.Render(http.StatusOK, "dashboard.html", echo.Map{
		"Active":    "dashboard",
		"Dashboard": dash,
	})
}
