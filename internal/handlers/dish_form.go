package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tastytalk/admin-backend/internal/models"
	"github.com/tastytalk/admin-backend/internal/services"
)

// ErrInvalidForm is returned when a submitted dish form cannot be turned into a dish.
var ErrInvalidForm = errors.New("invalid dish form")

// dishFields is validated after coercion
type dishFields struct {
	Name     string `validate:"required,max=200"`
	Category string `validate:"max=100"`
	Servings int    `validate:"gte=0,lte=1000"`
	Duration string `validate:"max=100"`
	Source   string `validate:"max=500"`
}

// ParseDishForm builds a DishInput from the add/edit dish form.
// Ingredient rows come from the parallel ingredient_* arrays; a row without a name is dropped.
func ParseDishForm(form url.Values, v echo.Validator) (models.DishInput, error) {
	fields := dishFields{
		Name:     strings.TrimSpace(form.Get("name")),
		Category: strings.TrimSpace(form.Get("category")),
		Duration: strings.TrimSpace(form.Get("duration")),
		Source:   strings.TrimSpace(form.Get("source")),
	}

	if raw := strings.TrimSpace(form.Get("servings")); raw != "" {
		servings, err := strconv.Atoi(raw)
		if err != nil {
			return models.DishInput{}, fmt.Errorf("%w: servings %q is not a number", ErrInvalidForm, raw)
		}
		fields.Servings = servings
	}

	if v != nil {
		if err := v.Validate(fields); err != nil {
			return models.DishInput{}, fmt.Errorf("%w: %v", ErrInvalidForm, err)
		}
	}

	return models.DishInput{
		Name:        fields.Name,
		Category:    fields.Category,
		Servings:    fields.Servings,
		Duration:    fields.Duration,
		Source:      fields.Source,
		Ingredients: parseIngredients(form),
		Procedures:  parseProcedures(form["procedures[]"]),
	}, nil
}

func parseIngredients(form url.Values) []models.Ingredient {
	names := form["ingredient_name[]"]
	quantities := form["ingredient_quantity[]"]
	units := form["ingredient_unit[]"]
	subs := form["ingredient_subs[]"]

	ingredients := make([]models.Ingredient, 0, len(names))
	for i, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		ingredients = append(ingredients, models.Ingredient{
			Quantity:    strings.TrimSpace(at(quantities, i)),
			Unit:        strings.TrimSpace(at(units, i)),
			Name:        name,
			Substitutes: splitSubstitutes(at(subs, i)),
		})
	}
	return ingredients
}

// splitSubstitutes turns "coconut milk, , cream" into [coconut milk cream]
func splitSubstitutes(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseProcedures(steps []string) []string {
	out := make([]string, 0, len(steps))
	for _, step := range steps {
		if step = strings.TrimSpace(step); step != "" {
			out = append(out, step)
		}
	}
	return out
}

func at(values []string, i int) string {
	if i < len(values) {
		return values[i]
	}
	return ""
}

// formImage opens the optional "image" upload. It returns nil when no file was chosen.
// The caller closes the returned file.
func formImage(c echo.Context) (*services.Image, multipart.File, error) {
	header, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil, nil
		}
		return nil, nil, err
	}
	if header.Filename == "" || header.Size == 0 {
		return nil, nil, nil
	}
	file, err := header.Open()
	if err != nil {
		return nil, nil, err
	}
	return &services.Image{Filename: header.Filename, Body: file}, file, nil
}
