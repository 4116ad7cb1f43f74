// Package views holds the admin pages, embedded into the binary.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var files embed.FS

// Files starting with an underscore are shared by every page.
const sharedPattern = "templates/_*.html"

// Renderer implements echo.Renderer with one template set per page.
type Renderer struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"join": strings.Join,
	"add":  func(a, b int) int { return a + b },
	"rating": func(avg float64) string {
		return fmt.Sprintf("%.2f", avg)
	},
}

// NewRenderer parses every page together with the shared layout and partials.
func NewRenderer() (*Renderer, error) {
	names, err := fs.Glob(files, "templates/*.html")
	if err != nil {
		return nil, err
	}
	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, name := range names {
		page := path.Base(name)
		if strings.HasPrefix(page, "_") {
			continue
		}
		tmpl, err := template.New(page).Funcs(funcs).ParseFS(files, sharedPattern, name)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", page, err)
		}
		r.pages[page] = tmpl
	}
	return r, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	return tmpl.ExecuteTemplate(w, name, data)
}
