// Package server is the local preview server behind "sn serve". It renders
// .sn files from a directory tree on request and reports their signature
// state as JSON.
package server

import (
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	sn "github.com/alnah/go-supernotation"
	"github.com/alnah/go-supernotation/internal/assets"
)

// Config controls how documents are parsed and rendered.
type Config struct {
	Strict     bool
	Stylesheet string // empty = embedded default
	Highlight  bool
	Assets     assets.AssetLoader // index template source; nil = embedded
}

// Server serves one document tree.
type Server struct {
	router chi.Router
	root   fs.FS
	index  *template.Template
	log    *slog.Logger
	cfg    Config
}

// New builds a Server over root. root is usually os.DirFS(dir); fs.FS path
// rules keep requests inside it.
func New(root fs.FS, log *slog.Logger, cfg Config) (*Server, error) {
	loader := cfg.Assets
	if loader == nil {
		loader = assets.NewEmbeddedLoader()
	}
	page, err := loader.LoadTemplate(assets.IndexTemplateName)
	if err != nil {
		return nil, err
	}
	index, err := template.New(assets.IndexTemplateName).Parse(page)
	if err != nil {
		return nil, err
	}

	s := &Server{
		root:  root,
		index: index,
		log:   log,
		cfg:   cfg,
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)
	r.Get("/", s.handleIndex)
	r.Get("/api/verify/*", s.handleVerify)
	r.Get("/*", s.handleFile)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok","format":"` + sn.FormatVersion + `"}`))
}

func (s *Server) parseOptions() []sn.ParseOption {
	if s.cfg.Strict {
		return []sn.ParseOption{sn.WithMode(sn.Strict)}
	}
	return nil
}

func (s *Server) renderOptions() []sn.RenderOption {
	opts := []sn.RenderOption{sn.WithHighlighting(s.cfg.Highlight)}
	if s.cfg.Stylesheet != "" {
		opts = append(opts, sn.WithStylesheet(s.cfg.Stylesheet))
	}
	return opts
}
