package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	apperrors "menuhub/internal/errors"
	"menuhub/internal/model"
	"menuhub/internal/service"
)

//go:embed templates/*.html
var files embed.FS

// Page names accepted by Renderer.Render.
const (
	PageLogin       = "login.html"
	PageRegister    = "register.html"
	PageIndex       = "index.html"
	PageRestaurants = "restaurants.html"
	PageUpdateDish  = "update_dish.html"
)

var pages = []string{PageLogin, PageRegister, PageIndex, PageRestaurants, PageUpdateDish}

// Page is the data every template receives.
type Page struct {
	Title       string
	User        *service.Identity
	Flashes     []apperrors.Flash
	Dishes      []model.Dish
	Restaurants []model.Restaurant
	Dish        *model.Dish
}

// Renderer renders the embedded page templates inside the shared layout.
type Renderer struct {
	templates map[string]*template.Template
}

// Ensure Renderer implements echo.Renderer
var _ echo.Renderer = (*Renderer)(nil)

// NewRenderer parses all page templates.
func NewRenderer() (*Renderer, error) {
	funcs := template.FuncMap{
		"price": func(d decimal.Decimal) string { return d.StringFixed(2) },
	}

	r := &Renderer{templates: make(map[string]*template.Template, len(pages))}
	for _, page := range pages {
		tmpl, err := template.New(page).Funcs(funcs).ParseFS(files, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		r.templates[page] = tmpl
	}
	return r, nil
}

// Render implements echo.Renderer.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	tmpl, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}
	return tmpl.ExecuteTemplate(w, "layout", data)
}
