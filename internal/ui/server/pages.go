package server

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/plantdoc/plantdoc-ui/internal/ui/upload"
)

func (s *server) base(title string, secondary *navAction) basePageData {
	return basePageData{
		PageTitle:       title,
		AppName:         s.appName,
		StylesheetPath:  s.stylesPath,
		SecondaryAction: secondary,
		CurrentYear:     s.currentYear,
	}
}

func (s *server) indexData() indexPageData {
	return indexPageData{
		basePageData:   s.base(s.appName, &navAction{Label: "About", Href: "/about"}),
		Places:         s.clientConfig.Places,
		MaxUploadLabel: upload.FormatSizeMB(s.clientConfig.MaxUploadBytes),
		AllowedTypes:   s.clientConfig.AllowedTypes,
	}
}

func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, "index", s.indexData())
}

func (s *server) handleAbout(w http.ResponseWriter, r *http.Request) {
	data := aboutPageData{
		basePageData:      s.base("About · "+s.appName, &navAction{Label: "Analyze a leaf", Href: "/"}),
		BackendConfigured: s.backend != nil,
	}
	s.render(w, "about", data)
}

// render executes into a buffer first so template errors never leave a
// half-written page behind.
func (s *server) render(w http.ResponseWriter, page string, data any) {
	tmpl, ok := s.templates[page]
	if !ok {
		s.logger.Error("general", "template missing", nil, map[string]any{"page": page})
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, page, data); err != nil {
		s.logger.Error("general", "render page", err, map[string]any{"page": page})
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *server) handleClientConfig(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-cache")
	writeJSON(w, http.StatusOK, s.clientConfig)
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"backend": s.backend != nil,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
