package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tastytalk/admin-backend/internal/models"
	"github.com/tastytalk/admin-backend/internal/services"
	"github.com/tastytalk/admin-backend/pkg/logger"
)

// DishHandler handles the dish catalog pages
type DishHandler struct {
	catalog *services.CatalogService
	log     *logger.Logger
}

// NewDishHandler creates a new DishHandler
func NewDishHandler(catalog *services.CatalogService, log *logger.Logger) *DishHandler {
	return &DishHandler{catalog: catalog, log: log}
}

// RegisterDishRoutes registers dish catalog routes
func (h *DishHandler) RegisterDishRoutes(g *echo.Group) {
	g.GET("/add_dish", h.AddDishPage)
	g.POST("/add_dish", h.AddDish)
	g.GET("/manage_dish", h.ManageDish)
	g.POST("/update_dish/:id", h.UpdateDish)
	g.POST("/archive_dish/:id", h.ArchiveDish)
	g.POST("/unarchive_dish/:id", h.UnarchiveDish)
}

func (h *DishHandler) AddDishPage(c echo.Context) error {
	return c.Render(http.StatusOK, "add_dish.html", echo.Map{
		"Active": "add_dish",
		"Dish":   models.Dish{},
	})
}

// AddDish creates a dish and announces it to every user
func (h *DishHandler) AddDish(c echo.Context) error {
	ctx := c.Request().Context()

	form, err := c.FormParams()
	if err != nil {
		h.log.Warn(ctx, "reading add dish form", err)
		return c.Redirect(http.StatusFound, "/manage_dish")
	}
	in, err := ParseDishForm(form, c.Echo().Validator)
	if err != nil {
		h.log.Warn(ctx, "rejected add dish form", err)
		return c.Redirect(http.StatusFound, "/manage_dish")
	}

	img, file, err := formImage(c)
	if err != nil {
		h.log.Warn(ctx, "reading dish image", err)
		return c.Redirect(http.StatusFound, "/manage_dish")
	}
	if file != nil {
		defer file.Close()
	}

	result, err := h.catalog.CreateDish(ctx, in, img)
	if err != nil {
		h.log.Error(ctx, "creating dish", err)
		return c.Redirect(http.StatusFound, "/manage_dish")
	}
	h.logWrite(c, "dish created", result)
	return c.Redirect(http.StatusFound, "/manage_dish")
}

// ManageDish lists active and archived dishes, optionally filtered by ?category=
func (h *DishHandler) ManageDish(c echo.Context) error {
	ctx := c.Request().Context()
	category := strings.TrimSpace(c.QueryParam("category"))

	catalog, err := h.catalog.ListCatalog(ctx, category)
	if err != nil {
		h.log.Error(ctx, "listing dishes", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load dishes")
	}
	return c.Render(http.StatusOK, "manage_dish.html", echo.Map{
		"Active":  "manage_dish",
		"Catalog": catalog,
	})
}

// UpdateDish applies the edit form to an existing dish
func (h *DishHandler) UpdateDish(c echo.Context) error {
	ctx := h.log.WithField(c.Request().Context(), "dish_id", c.Param("id"))

	form, err := c.FormParams()
	if err != nil {
		h.log.Warn(ctx, "reading update dish form", err)
		return c.Redirect(http.StatusFound, "/manage_dish")
	}
	in, err := ParseDishForm(form, c.Echo().Validator)
	if err != nil {
		h.log.Warn(ctx, "rejected update dish form", err)
		return c.Redirect(http.StatusFound, "/manage_dish")
	}

	img, file, err := formImage(c)
	if err != nil {
		h.log.Warn(ctx, "reading dish image", err)
		return c.Redirect(http.StatusFound, "/manage_dish")
	}
	if file != nil {
		defer file.Close()
	}

	result, err := h.catalog.UpdateDish(ctx, c.Param("id"), in, img)
	if err != nil {
		h.log.Error(ctx, "updating dish", err)
		return c.Redirect(http.StatusFound, "/manage_dish")
	}
	h.logWrite(c, "dish updated", result)
	return c.Redirect(http.StatusFound, "/manage_dish")
}

func (h *DishHandler) ArchiveDish(c echo.Context) error {
	ctx := h.log.WithField(c.Request().Context(), "dish_id", c.Param("id"))
	if err := h.catalog.Archive(ctx, c.Param("id")); err != nil {
		h.log.Error(ctx, "archiving dish", err)
	}
	return c.Redirect(http.StatusFound, "/manage_dish")
}

func (h *DishHandler) UnarchiveDish(c echo.Context) error {
	ctx := h.log.WithField(c.Request().Context(), "dish_id", c.Param("id"))
	if err := h.catalog.Unarchive(ctx, c.Param("id")); err != nil {
		h.log.Error(ctx, "unarchiving dish", err)
	}
	return c.Redirect(http.StatusFound, "/manage_dish")
}

func (h *DishHandler) logWrite(c echo.Context, msg string, result services.DishWriteResult) {
	zl := h.log.Zerolog(c.Request().Context())
	event := zl.Info()
	if !result.Notified.OK() {
		event = zl.Warn().Err(result.Notified.Err)
	}
	event.
		Str("dish_id", result.DishID).
		Int("recipients", result.Notified.Recipients).
		Int("notified", result.Notified.Written).
		Int("failed_batches", result.Notified.FailedBatches).
		Msg(msg)
}
