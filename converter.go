package sn

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/alnah/go-supernotation/internal/assets"
	"github.com/alnah/go-supernotation/internal/dateutil"
	"github.com/alnah/go-supernotation/internal/fileutil"
)

// Converter turns SN source into HTML and, optionally, PDF. The browser used
// for PDF export is started on first use; call Close to release it.
// A Converter is not safe for concurrent use; see ConverterPool.
type Converter struct {
	cfg          converterConfig
	assetLoader  assets.AssetLoader
	pdfConverter pdfConverter
	now          func() time.Time
}

// NewConverter applies opts and resolves the stylesheet.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg:         converterConfig{timeout: defaultTimeout},
		assetLoader: assets.NewEmbeddedLoader(),
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidAssetPath, err)
		}
		c.assetLoader = resolver
	}

	if err := c.resolveStyle(); err != nil {
		return nil, err
	}

	if c.pdfConverter == nil {
		c.pdfConverter = newRodConverter(c.cfg.timeout)
	}

	return c, nil
}

// Convert parses input.Source, renders it and, unless input.HTMLOnly, prints
// the page to PDF. Internal panics are returned as errors.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := validateInput(input); err != nil {
		return nil, err
	}

	doc, err := Parse(string(input.Source), WithMode(c.cfg.mode))
	if err != nil {
		return nil, err
	}

	res := &ConvertResult{
		Document: doc,
		HTML:     []byte(Render(doc, c.renderOptions("")...)),
	}
	if input.HTMLOnly {
		return res, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// The PDF is printed from a temp file, so relative paths need a base.
	page := Render(doc, c.renderOptions(baseURL(input.BaseDir))...)

	footer, err := c.footerData(input.Footer)
	if err != nil {
		return nil, err
	}

	pdf, err := c.pdfConverter.ToPDF(ctx, page, &pdfOptions{Page: input.Page, Footer: footer})
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}
	res.PDF = pdf
	return res, nil
}

// Close shuts down the browser, if one was started.
func (c *Converter) Close() error {
	if c.pdfConverter != nil {
		return c.pdfConverter.Close()
	}
	return nil
}

func (c *Converter) renderOptions(base string) []RenderOption {
	opts := []RenderOption{WithHighlighting(c.cfg.highlight)}
	if c.cfg.hasStyle {
		opts = append(opts, WithStylesheet(c.cfg.resolvedStyle))
	}
	if base != "" {
		opts = append(opts, WithBaseURL(base))
	}
	return opts
}

// footerData resolves the footer date stamp against the converter clock.
func (c *Converter) footerData(f *Footer) (*footerData, error) {
	if f == nil {
		return nil, nil
	}
	date, err := dateutil.Resolve(f.Date, c.now())
	if err != nil {
		return nil, fmt.Errorf("footer date: %w", err)
	}
	return &footerData{ShowPageNumber: f.ShowPageNumber, Date: date, Text: f.Text}, nil
}

// resolveStyle turns the WithStyle input (path, raw CSS or name) into CSS.
// Without WithStyle, Render falls back to the embedded default.
func (c *Converter) resolveStyle() error {
	input := c.cfg.styleInput
	if input == "" {
		return nil
	}

	var css string
	switch {
	case fileutil.IsFilePath(input):
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("loading style file %q: %w", input, err)
		}
		css = string(content)
	case fileutil.IsCSS(input):
		css = input
	default:
		loaded, err := c.assetLoader.LoadStyle(input)
		if err != nil {
			return fmt.Errorf("loading style %q: %w", input, err)
		}
		css = loaded
	}

	c.cfg.resolvedStyle = css
	c.cfg.hasStyle = true
	return nil
}

// validateInput is the boundary for library callers building Input by hand;
// CLI values were already checked by config.Validate. Empty input has no
// header, so it fails the way Parse would.
func validateInput(input Input) error {
	if len(input.Source) == 0 {
		return fmt.Errorf("%w: %w", ErrMissingHeader, ErrEmptyInput)
	}
	if input.HTMLOnly {
		return nil
	}
	return input.Page.Validate()
}

// baseURL returns a file:// URL for dir with a trailing slash, or "" for an
// empty dir.
func baseURL(dir string) string {
	if dir == "" {
		return ""
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs) + "/"}
	return u.String()
}
