// Package web serves the browser dashboard.
package web

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/cryptotrack/cryptotracker/internal/core"
)

//go:embed templates/*
var templateFS embed.FS

// Tracker is the data surface the dashboard depends on.
type Tracker interface {
	Catalog(ctx context.Context) ([]core.Coin, error)
	History(ctx context.Context, coinID string, from, to time.Time) (core.PriceSeries, error)
}

// Handler renders the web UI from embedded templates.
type Handler struct {
	pageTemplates map[string]*template.Template
	tracker       Tracker
	log           *zap.Logger
}

var templateFuncs = template.FuncMap{
	"comma": func(n int) string { return humanize.Comma(int64(n)) },
}

// NewHandler creates a web handler with the embedded templates.
func NewHandler(tracker Tracker, log *zap.Logger) (*Handler, error) {
	subFS, err := fs.Sub(templateFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("accessing embedded templates: %w", err)
	}
	return newHandlerFromFS(subFS, tracker, log)
}

// NewHandlerWithFS creates a web handler using a custom filesystem.
// Useful for testing or custom template sources.
func NewHandlerWithFS(fsys fs.FS, tracker Tracker, log *zap.Logger) (*Handler, error) {
	return newHandlerFromFS(fsys, tracker, log)
}

func newHandlerFromFS(fsys fs.FS, tracker Tracker, log *zap.Logger) (*Handler, error) {
	if log == nil {
		log = zap.NewNop()
	}

	pages := []string{"dashboard.html"}
	pageTemplates := make(map[string]*template.Template)

	for _, page := range pages {
		// Parse layout first, then the page template
		tmpl, err := template.New("layout.html").Funcs(templateFuncs).ParseFS(fsys, "layout.html", page)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}
		pageTemplates[page] = tmpl
	}

	return &Handler{
		pageTemplates: pageTemplates,
		tracker:       tracker,
		log:           log,
	}, nil
}

// render executes the specified page template with the given data
func (h *Handler) render(w http.ResponseWriter, page string, data any) {
	tmpl, ok := h.pageTemplates[page]
	if !ok {
		http.Error(w, "template not found: "+page, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "layout.html", data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
