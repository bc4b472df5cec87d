package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/Nik-Luchok/finance/pkg/logger"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pages = []string{
	"index.html",
	"register.html",
	"login.html",
	"quote.html",
	"quoted.html",
	"buy.html",
	"sell.html",
	"history.html",
}

// PageData is what every template receives: the transient flash message
// popped from the cookie plus page-specific data.
type PageData struct {
	Flash string
	Data  any
}

type Renderer struct {
	templates map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	funcs := template.FuncMap{
		"usd": func(v any) string {
			switch d := v.(type) {
			case decimal.Decimal:
				return "$" + d.StringFixed(2)
			case *decimal.Decimal:
				if d == nil {
					return ""
				}
				return "$" + d.StringFixed(2)
			}
			return ""
		},
	}

	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		t, err := template.New("base.html").Funcs(funcs).
			ParseFS(templatesFS, "templates/base.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("error parsing template %s: %w", page, err)
		}
		templates[page] = t
	}

	return &Renderer{templates: templates}, nil
}

func (r *Renderer) Render(w http.ResponseWriter, page string, data PageData) {
	t, ok := r.templates[page]
	if !ok {
		logger.Log.Error("unknown template", logger.String("page", page))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := t.Execute(w, data); err != nil {
		logger.Log.Error("error rendering template", logger.String("page", page), logger.Error(err))
	}
}
