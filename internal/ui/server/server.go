// Package server renders the upload page, serves the WASM client and proxies
// analysis traffic to the backend.
package server

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/plantdoc/plantdoc-ui/internal/config"
	"github.com/plantdoc/plantdoc-ui/internal/ui/model"
	"github.com/plantdoc/plantdoc-ui/logging"
)

// Options configures the UI HTTP server.
type Options struct {
	Config    config.Config
	Logger    *logging.Logger
	Templates map[string]*template.Template
	// Transport overrides the proxy's round tripper, mainly for tests.
	Transport http.RoundTripper
}

type server struct {
	appName      string
	assetsDir    string
	stylesPath   string
	templates    map[string]*template.Template
	currentYear  int
	clientConfig model.ClientConfig
	backend      *url.URL
	proxy        http.Handler
	logger       *logging.Logger
}

type navAction struct {
	Label string
	Href  string
}

type basePageData struct {
	PageTitle       string
	AppName         string
	StylesheetPath  string
	SecondaryAction *navAction
	CurrentYear     int
}

type indexPageData struct {
	basePageData
	Places         []string
	MaxUploadLabel string
	AllowedTypes   []string
}

type aboutPageData struct {
	basePageData
	BackendConfigured bool
}

func newServer(opts Options) (*server, error) {
	cfg := opts.Config
	logger := opts.Logger
	if logger == nil {
		logger = logging.New("ui-server", logging.ParseLevel(cfg.App.LogLevel))
	}

	assetsPath, err := filepath.Abs(cfg.App.Assets)
	if err != nil {
		return nil, fmt.Errorf("resolve assets dir: %w", err)
	}

	tmpl := opts.Templates
	if tmpl == nil {
		templateRoot, err := filepath.Abs(cfg.App.Templates)
		if err != nil {
			return nil, fmt.Errorf("resolve templates dir: %w", err)
		}
		tmpl, err = loadTemplates(templateRoot)
		if err != nil {
			return nil, fmt.Errorf("load templates: %w", err)
		}
	}

	s := &server{
		appName:      cfg.App.Name,
		assetsDir:    assetsPath,
		stylesPath:   "/styles.css",
		templates:    tmpl,
		currentYear:  time.Now().Year(),
		clientConfig: cfg.Client.Normalize(),
		logger:       logger,
	}

	if cfg.Backend.URL != "" {
		backend, err := url.Parse(cfg.Backend.URL)
		if err != nil {
			return nil, fmt.Errorf("parse backend url: %w", err)
		}
		s.backend = backend
		s.proxy = newBackendProxy(backend, opts.Transport, logger)
	}
	return s, nil
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(logging.NewHTTPLogger(s.logger).Middleware)

	r.Get("/", s.handleIndex)
	r.Get("/about", s.handleAbout)
	r.Get("/healthz", s.handleHealth)
	r.Get("/ui-config.json", s.handleClientConfig)

	r.Get("/styles.css", s.assetHandler("styles.css", "text/css; charset=utf-8"))
	r.Get("/wasm_exec.js", s.assetHandler("wasm_exec.js", "application/javascript"))
	r.Get("/main.wasm", s.assetHandler("main.wasm", "application/wasm"))
	r.Get("/favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	limit := s.clientConfig.MaxUploadBytes
	r.With(limitBody(limit)).Post("/api/analyze", s.handleBackend)
	r.With(limitBody(limit)).Post("/upload", s.handleBackend)
	r.Get("/results/{id}", s.handleBackend)
	r.Get("/history", s.handleBackend)
	r.Handle("/static/uploads/*", http.HandlerFunc(s.handleBackend))
	return r
}

// Run starts the UI HTTP server and blocks until ctx is cancelled or the
// listener fails.
func Run(ctx context.Context, opts Options) error {
	s, err := newServer(opts)
	if err != nil {
		return err
	}
	s.checkPageContract()

	listen := opts.Config.Server.Listen()
	httpServer := &http.Server{
		Addr:              listen,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	backend := "none"
	if s.backend != nil {
		backend = s.backend.String()
	}
	s.logger.Info("general", "serving upload UI", map[string]any{
		"listen":  "http://" + listen,
		"backend": backend,
		"assets":  s.assetsDir,
	})

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
