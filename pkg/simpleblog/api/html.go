package api

import (
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/simpleblog/simple-blog/pkg/simpleblog"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pageNames = []string{
	"home",
	"user_index",
	"user_show",
	"post_index",
	"post_show",
	"post_create",
	"post_edit",
}

// newPageTemplates parses each page against the shared layout.
func newPageTemplates() (map[string]*template.Template, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.ParseFS(templatesFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = tmpl
	}
	return pages, nil
}

// pageData is the model handed to every page template.
type pageData struct {
	Title string
	Flash *Flash
	Users []*simpleblog.User
	Posts []*simpleblog.Post
	User  *simpleblog.User
	Post  *simpleblog.Post
}

func (h *Handler) renderPage(w http.ResponseWriter, r *http.Request, name string, data pageData) {
	data.Flash = popFlash(w, r)

	tmpl, ok := h.pages[name]
	if !ok {
		slog.Error("Unknown page template", "page", name)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		slog.Error("Failed to render page", "page", name, "error", err)
	}
}
