package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/plantdoc/plantdoc-ui/internal/config"
	"github.com/plantdoc/plantdoc-ui/internal/ui/server"
	"github.com/plantdoc/plantdoc-ui/logging"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	envPath := flag.String("env", ".env", "path to an optional .env file")
	listen := flag.String("listen", "", "override the listen address (host:port)")
	backend := flag.String("backend", "", "override the analysis backend base URL")
	templatesDir := flag.String("templates", "", "override the html/template directory")
	assetsDir := flag.String("assets", "", "override the directory holding styles.css and main.wasm")
	flag.Parse()

	cfg, err := config.Load(*configPath, *envPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if err := applyFlags(&cfg, *listen, *backend, *templatesDir, *assetsDir); err != nil {
		fmt.Fprintf(os.Stderr, "invalid flags: %v\n", err)
		os.Exit(2)
	}

	writers := []io.Writer{os.Stdout}
	if cfg.App.LogDir != "" {
		fileWriter, err := logging.NewFileWriter(cfg.App.LogDir, "ui-server", 50, 7)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open log file: %v\n", err)
			os.Exit(1)
		}
		defer fileWriter.Close()
		writers = append(writers, fileWriter)
	}
	logger := logging.New("ui-server", logging.ParseLevel(cfg.App.LogLevel), writers...)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, server.Options{Config: cfg, Logger: logger}); err != nil {
		logger.Error("general", "server error", err, nil)
		stop()
		os.Exit(1)
	}
}

// applyFlags lets command-line values win over the file and environment.
func applyFlags(cfg *config.Config, listen, backend, templates, assets string) error {
	if listen = strings.TrimSpace(listen); listen != "" {
		host, port, err := net.SplitHostPort(listen)
		if err != nil {
			return fmt.Errorf("listen %q: %w", listen, err)
		}
		cfg.Server.Addr = host
		cfg.Server.Port = ":" + port
	}
	if backend = strings.TrimSpace(backend); backend != "" {
		cfg.Backend.URL = strings.TrimSuffix(backend, "/")
	}
	if templates != "" {
		cfg.App.Templates = templates
	}
	if assets != "" {
		cfg.App.Assets = assets
	}
	return cfg.Validate()
}
