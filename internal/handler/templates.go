// Package handler contains the HTTP handlers: they parse and validate form
// input, call the services, and render HTML templates or redirect. No
// business rules live here.
package handler

import (
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"
)

// loadPage parses base.html together with one content page. Each page
// defines a "content" block that the base layout includes, so pages must be
// parsed separately rather than all into one template set.
func loadPage(templateDir, page string) (*template.Template, error) {
	tmpl, err := template.ParseFiles(
		filepath.Join(templateDir, "base.html"),
		filepath.Join(templateDir, page),
	)
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", page, err)
	}
	return tmpl, nil
}

// render executes the page into the response. Execution errors after the
// first byte cannot change the status anymore, so they are only logged.
func render(w http.ResponseWriter, logger *slog.Logger, tmpl *template.Template, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		logger.Error("failed to render template",
			slog.String("template", tmpl.Name()),
			slog.String("error", err.Error()),
		)
	}
}
