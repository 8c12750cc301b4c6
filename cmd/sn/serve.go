package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	flag "github.com/spf13/pflag"

	sn "github.com/alnah/go-supernotation"
	"github.com/alnah/go-supernotation/internal/assets"
	"github.com/alnah/go-supernotation/internal/fileutil"
	"github.com/alnah/go-supernotation/internal/server"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// serveFlags holds flags for the serve command.
type serveFlags struct {
	common    commonFlags
	addr      string
	strict    bool
	style     string
	assetPath string
	highlight bool
}

func runServe(ctx context.Context, args []string, env *Environment) error {
	fs := newFlagSet("serve", printServeUsage, env)
	f := &serveFlags{}
	addCommonFlags(fs, &f.common)
	fs.StringVarP(&f.addr, "addr", "a", "", "listen address (default 127.0.0.1:8080)")
	fs.BoolVar(&f.strict, "strict", false, "fail on unknown commands")
	fs.StringVar(&f.style, "style", "", "CSS style name or file path")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom style directory")
	fs.BoolVar(&f.highlight, "highlight", false, "syntax-highlight code blocks")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if fs.NArg() > 1 {
		return fmt.Errorf("%w: serve takes at most one DIR argument", ErrUsage)
	}

	cfg, _, err := loadSettings(f.common.config, env)
	if err != nil {
		return err
	}
	if fs.NArg() == 1 {
		cfg.Serve.Root = fs.Arg(0)
	}
	if f.addr != "" {
		cfg.Serve.Addr = f.addr
	}
	if f.style != "" {
		cfg.Render.Style = f.style
	}

	info, err := os.Stat(cfg.Serve.Root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrUsage, cfg.Serve.Root)
	}

	loader, err := assets.NewAssetResolver(f.assetPath)
	if err != nil {
		return fmt.Errorf("%w: %w", sn.ErrInvalidAssetPath, err)
	}
	stylesheet, err := resolveStylesheet(cfg.Render.Style, loader)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if f.common.verbose {
		level = slog.LevelDebug
	}
	if f.common.quiet {
		level = slog.LevelWarn
	}
	logger := slog.New(slog.NewTextHandler(env.Stderr, &slog.HandlerOptions{Level: level}))

	if loader.HasCustomLoader() {
		logger.Debug("custom assets", "dir", f.assetPath)
	}

	handler, err := server.New(os.DirFS(cfg.Serve.Root), logger, server.Config{
		Strict:     f.strict || cfg.Parse.Strict,
		Stylesheet: stylesheet,
		Highlight:  f.highlight || cfg.Render.Highlight,
		Assets:     loader,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Serve.Addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("serving", "root", cfg.Serve.Root, "addr", "http://"+cfg.Serve.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

// resolveStylesheet turns a style setting (file path, raw CSS or style name)
// into CSS. An empty style keeps the embedded default.
func resolveStylesheet(style string, loader assets.AssetLoader) (string, error) {
	switch {
	case style == "":
		return "", nil
	case fileutil.IsFilePath(style):
		css, err := os.ReadFile(style) // #nosec G304 -- user-provided path
		if err != nil {
			return "", fmt.Errorf("loading style file %q: %w", style, err)
		}
		return string(css), nil
	case fileutil.IsCSS(style):
		return style, nil
	}

	css, err := loader.LoadStyle(style)
	if err != nil {
		return "", fmt.Errorf("loading style %q: %w", style, err)
	}
	return css, nil
}
