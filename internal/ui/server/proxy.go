package server

import (
	"errors"
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/plantdoc/plantdoc-ui/logging"
)

func newBackendProxy(target *url.URL, transport http.RoundTripper, logger *logging.Logger) http.Handler {
	proxy := &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			pr.SetXForwarded()
			if id := logging.RequestID(pr.In.Context()); id != "" {
				pr.Out.Header.Set(logging.RequestIDHeader, id)
			}
		},
		Transport: transport,
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeError(w, http.StatusRequestEntityTooLarge, "File too large")
				return
			}
			logger.WithRequestID(logging.RequestID(r.Context())).
				WithCategory("proxy").
				WithField("path", r.URL.Path).
				WithField("backend", target.Host).
				Error("backend request failed", err)
			writeError(w, http.StatusBadGateway, "Analysis backend unavailable")
		},
	}
	return proxy
}

func (s *server) handleBackend(w http.ResponseWriter, r *http.Request) {
	if s.proxy == nil {
		writeError(w, http.StatusServiceUnavailable, "Analysis backend not configured")
		return
	}
	s.proxy.ServeHTTP(w, r)
}
