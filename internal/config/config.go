package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ---------------------------------------------------------------------------
// Configuration structs
// ---------------------------------------------------------------------------

// Config is the top-level configuration for the scandash clients.
type Config struct {
	Server    Server    `yaml:"server"`
	Serve     Serve     `yaml:"serve"`
	Dashboard Dashboard `yaml:"dashboard"`
	Logging   Logging   `yaml:"logging"`
}

// Server points the dashboard at the published scan artifacts.
type Server struct {
	BaseURL     string `yaml:"base_url"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// Serve configures the local artifact server.
type Serve struct {
	Listen    string `yaml:"listen"`
	PublicDir string `yaml:"public_dir"`
}

// Dashboard holds initial view state for the TUI.
type Dashboard struct {
	TopN int `yaml:"top_n"`
}

// Logging configures the application logger.
type Logging struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server:    Server{BaseURL: "http://localhost:8099", TimeoutSecs: 30},
		Serve:     Serve{Listen: ":8099", PublicDir: "./public"},
		Dashboard: Dashboard{TopN: 50},
		Logging:   Logging{Level: "info"},
	}
}

// Load reads the YAML configuration file at the given path, parses it over
// the defaults, and then applies environment variable overrides. An empty
// path skips the file and uses defaults plus environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// applyEnvOverrides checks well-known environment variables and overrides the
// corresponding configuration fields when they are set.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SCANDASH_BASE_URL"); v != "" {
		cfg.Server.BaseURL = v
	}

	if v := os.Getenv("SCANDASH_LISTEN"); v != "" {
		cfg.Serve.Listen = v
	}

	if v := os.Getenv("SCANDASH_PUBLIC_DIR"); v != "" {
		cfg.Serve.PublicDir = v
	}

	if v := os.Getenv("SCANDASH_TOP_N"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Dashboard.TopN = n
		}
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}

	if v := os.Getenv("LOG_FILE"); v != "" {
		cfg.Logging.File = v
	}
}
