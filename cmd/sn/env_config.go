package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/alnah/go-supernotation/internal/config"
)

// envPrefix is shared by every variable sn reads.
const envPrefix = "SN_"

// ErrInvalidEnv wraps malformed SN_* values.
var ErrInvalidEnv = errors.New("invalid environment variable")

// envConfig holds overrides read from SN_* variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        `env:"CONFIG"`     // SN_CONFIG: config file path
	Strict     bool          `env:"STRICT"`     // SN_STRICT: strict parsing
	Style      string        `env:"STYLE"`      // SN_STYLE: CSS style name or path
	Timeout    time.Duration `env:"TIMEOUT"`    // SN_TIMEOUT: PDF generation timeout
	Workers    int           `env:"WORKERS"`    // SN_WORKERS: parallel renders
	ServeAddr  string        `env:"SERVE_ADDR"` // SN_SERVE_ADDR: preview server address
}

// knownEnvVars lists valid SN_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"SN_CONFIG":     true,
	"SN_STRICT":     true,
	"SN_STYLE":      true,
	"SN_TIMEOUT":    true,
	"SN_WORKERS":    true,
	"SN_SERVE_ADDR": true,
}

// loadEnvConfig decodes the SN_* entries of environ.
func loadEnvConfig(environ []string) (*envConfig, error) {
	cfg := &envConfig{}
	err := env.ParseWithOptions(cfg, env.Options{
		Prefix:      envPrefix,
		Environment: envMap(environ),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidEnv, err)
	}
	if cfg.Timeout < 0 {
		return nil, fmt.Errorf("%w: SN_TIMEOUT must be positive, got %s", ErrInvalidEnv, cfg.Timeout)
	}
	if cfg.Workers < 0 {
		return nil, fmt.Errorf("%w: SN_WORKERS must not be negative, got %d", ErrInvalidEnv, cfg.Workers)
	}
	return cfg, nil
}

func envMap(environ []string) map[string]string {
	m := make(map[string]string, len(environ))
	for _, kv := range environ {
		if key, value, ok := strings.Cut(kv, "="); ok {
			m[key] = value
		}
	}
	return m
}

// warnUnknownEnvVars logs warnings for unrecognized SN_* variables.
// Helps catch typos like SN_STYEL instead of SN_STYLE.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, kv := range environ {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, envPrefix) && !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is empty/zero.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later by each command)
func applyEnvConfig(e *envConfig, cfg *config.Config) {
	if e.Strict {
		cfg.Parse.Strict = true
	}
	if e.Style != "" && cfg.Render.Style == "" {
		cfg.Render.Style = e.Style
	}
	if e.Workers > 0 && cfg.Workers == 0 {
		cfg.Workers = e.Workers
	}
	// serve.addr always carries a default, so the variable replaces it.
	if e.ServeAddr != "" {
		cfg.Serve.Addr = e.ServeAddr
	}
}

// loadSettings resolves the config file (flag, then SN_CONFIG, then the
// search path) and layers the environment on top of it.
func loadSettings(flagConfig string, environment *Environment) (*config.Config, *envConfig, error) {
	e, err := loadEnvConfig(environment.Environ())
	if err != nil {
		return nil, nil, err
	}

	path := flagConfig
	if path == "" {
		path = e.ConfigPath
	}
	cfg, _, err := config.LoadConfig(path)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	applyEnvConfig(e, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return cfg, e, nil
}
