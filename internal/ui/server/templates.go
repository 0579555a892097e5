package server

import (
	"fmt"
	"html/template"
	"path/filepath"
	"strings"

	"github.com/plantdoc/plantdoc-ui/internal/ui/upload"
)

// loadTemplates parses one template set per page so each page can define its
// own "content" block on top of base.tmpl.
func loadTemplates(dir string) (map[string]*template.Template, error) {
	funcs := template.FuncMap{
		"join":       strings.Join,
		"lower":      strings.ToLower,
		"formatSize": upload.FormatSizeMB,
		"typeLabel":  typeLabel,
	}

	base := filepath.Join(dir, "base.tmpl")
	pages := []string{"index", "about"}
	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		tmpl, err := template.New(page).Funcs(funcs).ParseFiles(base, filepath.Join(dir, page+".tmpl"))
		if err != nil {
			return nil, fmt.Errorf("parse %s templates: %w", page, err)
		}
		templates[page] = tmpl
	}
	return templates, nil
}

// typeLabel turns "image/jpeg" into "JPEG".
func typeLabel(mime string) string {
	_, sub, found := strings.Cut(mime, "/")
	if !found {
		sub = mime
	}
	return strings.ToUpper(sub)
}
