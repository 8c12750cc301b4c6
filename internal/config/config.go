// Package config loads sn.yaml, the optional settings file shared by the
// sn subcommands.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-supernotation/internal/yamlutil"
)

var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")
	ErrFieldTooLong   = errors.New("field exceeds maximum length")
	ErrInvalidValue   = errors.New("invalid config value")
)

// FileName is the config file looked up in the working and user directories.
const FileName = "sn.yaml"

// appDir is the per-user config directory under os.UserConfigDir.
const appDir = "go-supernotation"

// Field length limits.
const (
	MaxStyleLength       = 256  // embedded name or path
	MaxPathLength        = 4096 // directories
	MaxAddrLength        = 256  // host:port
	MaxPageSizeLength    = 10   // "letter", "a4", "legal"
	MaxOrientationLength = 10   // "portrait", "landscape"
	MaxDateLength        = 60   // "auto:MMMM D, YYYY"
	MaxTextLength        = 500  // footer free-form text
	MaxWorkers           = 64
)

// Config mirrors sn.yaml.
type Config struct {
	Parse   ParseConfig  `yaml:"parse"`
	Render  RenderConfig `yaml:"render"`
	PDF     PDFConfig    `yaml:"pdf"`
	Serve   ServeConfig  `yaml:"serve"`
	Workers int          `yaml:"workers"` // 0 = derive from GOMAXPROCS
}

type ParseConfig struct {
	Strict bool `yaml:"strict"`
}

type RenderConfig struct {
	Style     string `yaml:"style"`     // embedded style name, CSS file path, or empty for default
	Highlight bool   `yaml:"highlight"` // chroma highlighting of code blocks
	OutputDir string `yaml:"outputDir"` // empty = next to the source
}

// PDFConfig controls the headless Chrome export.
type PDFConfig struct {
	Enabled bool         `yaml:"enabled"`
	Page    PageConfig   `yaml:"page"`
	Footer  FooterConfig `yaml:"footer"`
}

type PageConfig struct {
	Size        string  `yaml:"size"`        // "letter", "a4", "legal"
	Orientation string  `yaml:"orientation"` // "portrait", "landscape"
	Margin      float64 `yaml:"margin"`      // inches
}

type FooterConfig struct {
	Enabled    bool   `yaml:"enabled"`
	PageNumber bool   `yaml:"pageNumber"`
	Date       string `yaml:"date"` // literal or "auto[:LAYOUT]"
	Text       string `yaml:"text"`
}

type ServeConfig struct {
	Addr string `yaml:"addr"`
	Root string `yaml:"root"`
}

// DefaultConfig returns the settings used when no sn.yaml is found.
func DefaultConfig() *Config {
	return &Config{
		Serve: ServeConfig{Addr: "127.0.0.1:8080", Root: "."},
	}
}

// Validate checks value ranges and field lengths. LoadConfig calls it; callers
// that build a Config by hand should too.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"render.style", c.Render.Style, MaxStyleLength},
		{"render.outputDir", c.Render.OutputDir, MaxPathLength},
		{"pdf.page.size", c.PDF.Page.Size, MaxPageSizeLength},
		{"pdf.page.orientation", c.PDF.Page.Orientation, MaxOrientationLength},
		{"pdf.footer.date", c.PDF.Footer.Date, MaxDateLength},
		{"pdf.footer.text", c.PDF.Footer.Text, MaxTextLength},
		{"serve.addr", c.Serve.Addr, MaxAddrLength},
		{"serve.root", c.Serve.Root, MaxPathLength},
	}
	for _, f := range fields {
		if len(f.value) > f.max {
			return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, f.name, len(f.value), f.max)
		}
	}

	if c.Workers < 0 || c.Workers > MaxWorkers {
		return fmt.Errorf("%w: workers must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Workers)
	}
	if c.PDF.Page.Margin < 0 {
		return fmt.Errorf("%w: pdf.page.margin must not be negative, got %.2f", ErrInvalidValue, c.PDF.Page.Margin)
	}
	return nil
}

// LoadConfig reads the config at path. With an empty path the standard
// locations are searched and a missing file yields DefaultConfig; an explicit
// path that does not exist is an error.
func LoadConfig(path string) (*Config, string, error) {
	if path == "" {
		found, ok := findConfig()
		if !ok {
			return DefaultConfig(), "", nil
		}
		path = found
	}

	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, path, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, path, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, path, fmt.Errorf("%w: %s: %w", ErrConfigParse, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// SearchPaths lists the locations tried, in order, when no path is given.
func SearchPaths() []string {
	paths := []string{FileName}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, appDir, FileName))
	}
	return paths
}

func findConfig() (string, bool) {
	for _, p := range SearchPaths() {
		if info, err := os.Stat(p); err == nil && info.Mode().IsRegular() {
			return p, true
		}
	}
	return "", false
}

// SearchDescription lists the search locations for hints and help output.
func SearchDescription() string {
	return strings.Join(SearchPaths(), ", ")
}
