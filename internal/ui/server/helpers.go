package server

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"github.com/plantdoc/plantdoc-ui/internal/ui/model"
)

func (s *server) assetHandler(name, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(s.assetsDir, name)
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			http.NotFound(w, r)
			return
		}
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		http.ServeFile(w, r, path)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, model.ErrorResponse{Error: message})
}

// multipartOverhead allows for boundaries and the location field on top of
// the file itself.
const multipartOverhead = 64 * 1024

// limitBody rejects request bodies larger than maxFile plus multipart
// overhead, mirroring the 16 MiB cap the client enforces.
func limitBody(maxFile int64) func(http.Handler) http.Handler {
	limit := maxFile + multipartOverhead
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				writeError(w, http.StatusRequestEntityTooLarge, "File too large")
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
