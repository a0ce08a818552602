// Package view renders the storefront's server-side HTML pages.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/aaravmahajanofficial/storefront/internal/cart"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/session"
	"github.com/microcosm-cc/bluemonday"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutFile = "templates/layout.html"

// Page is the data every template receives. Data carries the page-specific part.
type Page struct {
	Title     string
	User      *models.AuthUser
	CartCount int
	Flashes   []session.Flash
	Data      any
}

type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses every page together with the shared layout, once.
func NewRenderer() (*Renderer, error) {
	policy := bluemonday.UGCPolicy()

	funcs := template.FuncMap{
		"money": func(d decimal.Decimal) string {
			return "$" + d.StringFixed(2)
		},
		"effectivePrice": func(p models.Product) decimal.Decimal {
			return cart.EffectivePrice(p.Price, p.Discount)
		},
		"sanitize": func(s string) template.HTML {
			return template.HTML(policy.Sanitize(s))
		},
		"date": func(ts models.Timestamp) string {
			if ts.IsZero() {
				return "-"
			}
			return ts.Format("Jan 2, 2006 15:04")
		},
		"lower": strings.ToLower,
	}

	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	pages := make(map[string]*template.Template, len(files))
	for _, file := range files {
		if file == layoutFile {
			continue
		}

		name := strings.TrimSuffix(path.Base(file), ".html")
		tpl, err := template.New(name).Funcs(funcs).ParseFS(templateFS, layoutFile, file)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		pages[name] = tpl
	}

	return &Renderer{pages: pages}, nil
}

// Render writes the named page. The page is rendered into a buffer first so
// a template error never leaves a half-written response.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, page Page) error {
	tpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}

	var buf bytes.Buffer
	if err := tpl.ExecuteTemplate(&buf, "layout", page); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
