// Package config loads the page server's configuration from a YAML file,
// an optional .env file and environment overrides.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/plantdoc/plantdoc-ui/internal/ui/model"
)

const (
	defaultAddr      = "127.0.0.1"
	defaultPort      = ":4173"
	defaultTemplates = "ui/templates"
	defaultAssets    = "ui"
	defaultLogLevel  = "info"
)

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr string `yaml:"addr"`
	Port string `yaml:"port"`
}

// Listen joins Addr and Port into a listen address.
func (s ServerConfig) Listen() string {
	port := strings.TrimSpace(s.Port)
	if port != "" && !strings.HasPrefix(port, ":") {
		port = ":" + port
	}
	return strings.TrimSpace(s.Addr) + port
}

// AppConfig locates templates, static assets and logs.
type AppConfig struct {
	Name      string `yaml:"name"`
	Templates string `yaml:"templates"`
	Assets    string `yaml:"assets"`
	LogDir    string `yaml:"log_dir"`
	LogLevel  string `yaml:"log_level"`
}

// BackendConfig points at the analysis backend the server proxies to.
type BackendConfig struct {
	URL string `yaml:"url"`
}

// Config is the full runtime configuration.
type Config struct {
	Server  ServerConfig       `yaml:"server"`
	App     AppConfig          `yaml:"app"`
	Backend BackendConfig      `yaml:"backend"`
	Client  model.ClientConfig `yaml:"client"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Server: ServerConfig{Addr: defaultAddr, Port: defaultPort},
		App: AppConfig{
			Name:      "Plant Disease Detection",
			Templates: defaultTemplates,
			Assets:    defaultAssets,
			LogLevel:  defaultLogLevel,
		},
		Client: model.DefaultClientConfig(),
	}
}

// Load reads path (a missing file is not an error), then dotenv, then
// environment overrides, and validates the result.
func Load(path, dotenvPath string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("decode config: %w", err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	if dotenvPath != "" {
		// A missing .env is normal outside development.
		if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load dotenv: %w", err)
		}
	}
	if err := applyEnv(&cfg, os.Getenv); err != nil {
		return Config{}, err
	}

	cfg = applyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config, getenv func(string) string) error {
	if v := strings.TrimSpace(getenv("UI_ADDR")); v != "" {
		cfg.Server.Addr = v
	}
	if v := strings.TrimSpace(getenv("UI_PORT")); v != "" {
		cfg.Server.Port = v
	}
	if v := strings.TrimSpace(getenv("UI_BACKEND_URL")); v != "" {
		cfg.Backend.URL = v
	}
	if v := strings.TrimSpace(getenv("UI_TEMPLATES")); v != "" {
		cfg.App.Templates = v
	}
	if v := strings.TrimSpace(getenv("UI_ASSETS")); v != "" {
		cfg.App.Assets = v
	}
	if v := strings.TrimSpace(getenv("UI_LOG_DIR")); v != "" {
		cfg.App.LogDir = v
	}
	if v := strings.TrimSpace(getenv("UI_LOG_LEVEL")); v != "" {
		cfg.App.LogLevel = v
	}
	if v := strings.TrimSpace(getenv("UI_MAX_UPLOAD_BYTES")); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("UI_MAX_UPLOAD_BYTES: %w", err)
		}
		cfg.Client.MaxUploadBytes = n
	}
	return nil
}

func applyDefaults(cfg Config) Config {
	def := Default()
	if strings.TrimSpace(cfg.Server.Addr) == "" && strings.TrimSpace(cfg.Server.Port) == "" {
		cfg.Server = def.Server
	}
	if cfg.App.Name == "" {
		cfg.App.Name = def.App.Name
	}
	if cfg.App.Templates == "" {
		cfg.App.Templates = def.App.Templates
	}
	if cfg.App.Assets == "" {
		cfg.App.Assets = def.App.Assets
	}
	if cfg.App.LogLevel == "" {
		cfg.App.LogLevel = def.App.LogLevel
	}
	cfg.Backend.URL = strings.TrimSuffix(strings.TrimSpace(cfg.Backend.URL), "/")
	cfg.Client = cfg.Client.Normalize()
	return cfg
}

// Validate checks values that would otherwise fail at request time.
func (c Config) Validate() error {
	if c.Backend.URL != "" {
		u, err := url.Parse(c.Backend.URL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid backend url %q", c.Backend.URL)
		}
	}
	if c.Client.MaxUploadBytes <= 0 {
		return fmt.Errorf("max upload bytes must be positive")
	}
	return nil
}
