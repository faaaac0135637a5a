package web

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/dmitrijs2005/picshare/internal/server/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names.
const (
	pageHome      = "home.html"
	pageDashboard = "dashboard.html"
	pageLogin     = "login.html"
	pageRegister  = "register.html"
)

var pages = mustParsePages(pageHome, pageDashboard, pageLogin, pageRegister)

// mustParsePages builds one template set per page, each sharing the layout.
func mustParsePages(names ...string) map[string]*template.Template {
	out := make(map[string]*template.Template, len(names))
	for _, n := range names {
		out[n] = template.Must(template.ParseFS(templateFS, "templates/layout.html", "templates/"+n))
	}
	return out
}

// pageData is what every page template receives.
type pageData struct {
	Title         string
	UserName      string
	Authenticated bool
	Flash         string
	Notice        string
	Images        []models.StoredObject
}

// render buffers the page; on a template error only a 500 is written.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, page string, data pageData) {
	var buf bytes.Buffer
	if err := pages[page].ExecuteTemplate(&buf, "layout", data); err != nil {
		h.log.Error(r.Context(), "render failed", "page", page, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
