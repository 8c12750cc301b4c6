package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	sn "github.com/alnah/go-supernotation"
	"github.com/alnah/go-supernotation/internal/config"
	"github.com/alnah/go-supernotation/internal/dateutil"
)

// Sentinel errors for the render command.
var (
	ErrNoInput     = errors.New("no input specified")
	ErrWriteOutput = errors.New("failed to write output file")
)

// renderFlags holds all flags for the render command.
type renderFlags struct {
	common    commonFlags
	output    string
	workers   int
	timeout   time.Duration
	strict    bool
	pdf       bool
	html      bool
	style     string
	assetPath string
	highlight bool
	page      pageFlags
	footer    footerFlags
}

// renderParams groups parameters shared across batch/file rendering.
type renderParams struct {
	pdf      bool
	keepHTML bool
	page     *sn.PageSettings
	footer   *sn.Footer
}

func parseRenderFlags(args []string, env *Environment) (*renderFlags, string, error) {
	fs := newFlagSet("render", printRenderUsage, env)
	f := &renderFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.DurationVarP(&f.timeout, "timeout", "t", 0, "PDF generation timeout (e.g., 30s, 2m)")
	fs.BoolVar(&f.strict, "strict", false, "fail on unknown commands")
	fs.BoolVar(&f.pdf, "pdf", false, "write PDF instead of HTML")
	fs.BoolVar(&f.html, "html", false, "with --pdf, also write the HTML")
	fs.StringVar(&f.style, "style", "", "CSS style name or file path")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom style directory")
	fs.BoolVar(&f.highlight, "highlight", false, "syntax-highlight code blocks")

	addCommonFlags(fs, &f.common)
	addPageFlags(fs, &f.page)
	addFooterFlags(fs, &f.footer)

	input, err := parseArgs(fs, args)
	if err != nil {
		return nil, "", err
	}
	return f, input, nil
}

// runRender orchestrates HTML and PDF rendering of one file or a tree.
func runRender(ctx context.Context, args []string, env *Environment) error {
	flags, input, err := parseRenderFlags(args, env)
	if err != nil {
		return err
	}
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}
	if flags.timeout < 0 {
		return fmt.Errorf("%w: --timeout must be positive, got %s", ErrUsage, flags.timeout)
	}

	cfg, envCfg, err := loadSettings(flags.common.config, env)
	if err != nil {
		return err
	}
	mergeRenderFlags(flags, cfg)

	params := &renderParams{pdf: cfg.PDF.Enabled, keepHTML: flags.html}
	if params.pdf {
		if params.page, err = buildPageSettings(flags.page, cfg); err != nil {
			return err
		}
		if params.footer, err = buildFooter(flags.footer, cfg, env.Now()); err != nil {
			return err
		}
	}

	ext := ".html"
	if params.pdf {
		ext = ".pdf"
	}
	files, err := discoverFiles(input, flags.output, cfg.Render.OutputDir, ext)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no .sn files found in %s", ErrNoInput, input)
	}

	opts := []sn.Option{
		sn.WithParseMode(parseMode(cfg.Parse.Strict)),
		sn.WithSyntaxHighlighting(cfg.Render.Highlight),
	}
	if cfg.Render.Style != "" {
		opts = append(opts, sn.WithStyle(cfg.Render.Style))
	}
	if flags.assetPath != "" {
		opts = append(opts, sn.WithAssetPath(flags.assetPath))
	}
	if timeout := resolveTimeout(flags.timeout, envCfg); timeout > 0 {
		opts = append(opts, sn.WithTimeout(timeout))
	}

	poolSize := min(sn.ResolvePoolSize(cfg.Workers), len(files))
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Pool size: %d\n", poolSize)
	}
	pool := sn.NewConverterPool(poolSize, opts...)
	defer func() { _ = pool.Close() }()

	// Style and asset errors surface once here instead of once per file.
	first, err := pool.Acquire()
	if err != nil {
		return err
	}
	pool.Release(first)

	results := renderBatch(ctx, &poolAdapter{pool: pool}, files, params)

	if len(results) == 1 && results[0].Err != nil {
		return results[0].Err
	}
	failedCount := printResultsWithWriter(results, flags.common.quiet, flags.common.verbose, env)
	if failedCount > 0 {
		return fmt.Errorf("%d render(s) failed", failedCount)
	}
	return nil
}

// mergeRenderFlags applies explicitly set flags over the config (CLI wins).
func mergeRenderFlags(f *renderFlags, cfg *config.Config) {
	if f.strict {
		cfg.Parse.Strict = true
	}
	if f.pdf {
		cfg.PDF.Enabled = true
	}
	if f.style != "" {
		cfg.Render.Style = f.style
	}
	if f.highlight {
		cfg.Render.Highlight = true
	}
	if f.workers > 0 {
		cfg.Workers = f.workers
	}
}

// resolveTimeout returns the flag value, then SN_TIMEOUT, then 0 for the
// converter default.
func resolveTimeout(flagTimeout time.Duration, e *envConfig) time.Duration {
	if flagTimeout > 0 {
		return flagTimeout
	}
	return e.Timeout
}

// buildPageSettings layers config then flags over the defaults.
func buildPageSettings(f pageFlags, cfg *config.Config) (*sn.PageSettings, error) {
	page := sn.DefaultPageSettings()

	if cfg.PDF.Page.Size != "" {
		page.Size = cfg.PDF.Page.Size
	}
	if cfg.PDF.Page.Orientation != "" {
		page.Orientation = cfg.PDF.Page.Orientation
	}
	if cfg.PDF.Page.Margin > 0 {
		page.Margin = cfg.PDF.Page.Margin
	}

	if f.size != "" {
		page.Size = f.size
	}
	if f.orientation != "" {
		page.Orientation = f.orientation
	}
	if f.margin > 0 {
		page.Margin = f.margin
	}

	if err := page.Validate(); err != nil {
		return nil, err
	}
	return page, nil
}

// buildFooter returns nil when no footer is wanted. The date is resolved once
// for the whole batch.
func buildFooter(f footerFlags, cfg *config.Config, now time.Time) (*sn.Footer, error) {
	if f.disabled {
		return nil, nil
	}

	footer := &sn.Footer{
		ShowPageNumber: cfg.PDF.Footer.PageNumber || f.pageNumber,
		Date:           cfg.PDF.Footer.Date,
		Text:           cfg.PDF.Footer.Text,
	}
	if f.date != "" {
		footer.Date = f.date
	}
	if f.text != "" {
		footer.Text = f.text
	}

	anyFlag := f.pageNumber || f.date != "" || f.text != ""
	if !cfg.PDF.Footer.Enabled && !anyFlag {
		return nil, nil
	}

	date, err := dateutil.Resolve(footer.Date, now)
	if err != nil {
		return nil, fmt.Errorf("%w: footer date: %w", ErrUsage, err)
	}
	footer.Date = date
	return footer, nil
}
