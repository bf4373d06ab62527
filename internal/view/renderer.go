// Package view renders the HTML pages.  Templates are embedded so the
// server binary is self-contained.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/diabetes-risk-predictor/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer implements echo.Renderer.  Each page is parsed together with
// the shared layout; name is the page's file name, e.g. "index.html".
type Renderer struct {
	pages map[string]*template.Template
}

// New parses every page under templates/.
func New() (*Renderer, error) {
	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	r := &Renderer{pages: map[string]*template.Template{}}
	for _, f := range files {
		name := path.Base(f)
		if name == "layout.html" {
			continue
		}
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", f)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render implements echo.Renderer.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	return t.ExecuteTemplate(w, name, data)
}

var funcs = template.FuncMap{
	"pct": func(p float64) string { return fmt.Sprintf("%.1f", p*100) },
	"inc": func(i int) int { return i + 1 },
	"riskColor": func(l model.RiskLevel) string {
		switch l {
		case model.RiskHigh:
			return "#dc3545"
		case model.RiskModerate:
			return "#ffc107"
		}
		return "#28a745"
	},
}
