package server

import (
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"path"
	"sort"

	"github.com/go-chi/chi/v5"

	sn "github.com/alnah/go-supernotation"
	"github.com/alnah/go-supernotation/internal/fileutil"
)

// Signature states shown on the index page.
const (
	statusValid    = "valid"
	statusInvalid  = "invalid"
	statusUnsigned = "unsigned"
)

type indexEntry struct {
	Path   string
	Title  string
	Status string
}

type indexPage struct {
	Title     string
	Documents []indexEntry
}

// verifyResponse is the body of GET /api/verify/{path}.
type verifyResponse struct {
	Path      string `json:"path"`
	Valid     bool   `json:"valid"`
	Sealed    bool   `json:"sealed"`
	Expected  string `json:"expected,omitempty"`
	Found     string `json:"found,omitempty"`
	Message   string `json:"message"`
	Signature bool   `json:"signature"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	var entries []indexEntry
	err := fs.WalkDir(s.root, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !fileutil.IsSNFile(p) {
			return nil
		}
		raw, err := fs.ReadFile(s.root, p)
		if err != nil {
			s.log.Warn("skipping unreadable document", "path", p, "error", err)
			return nil
		}
		entries = append(entries, indexEntry{Path: p, Title: documentTitle(raw), Status: signatureStatus(raw)})
		return nil
	})
	if err != nil {
		s.log.Error("listing documents", "error", err)
		http.Error(w, "failed to list documents", http.StatusInternalServerError)
		return
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.index.Execute(w, indexPage{Title: "SN documents", Documents: entries}); err != nil {
		s.log.Error("rendering index", "error", err)
	}
}

// handleFile renders .sn documents and serves every other file as is, so
// that img:= targets and opensn= links resolve.
func (s *Server) handleFile(w http.ResponseWriter, r *http.Request) {
	p, ok := requestPath(r)
	if !ok {
		http.Error(w, "invalid path", http.StatusBadRequest)
		return
	}
	if !fileutil.IsSNFile(p) {
		http.ServeFileFS(w, r, s.root, p)
		return
	}

	raw, err := fs.ReadFile(s.root, p)
	if err != nil {
		s.fileError(w, p, err)
		return
	}

	doc, err := sn.Parse(string(raw), s.parseOptions()...)
	if err != nil {
		var perr *sn.ParseError
		if errors.As(err, &perr) {
			http.Error(w, p+": "+perr.Error(), http.StatusUnprocessableEntity)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(sn.Render(doc, s.renderOptions()...)))
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	p, ok := requestPath(r)
	if !ok || !fileutil.IsSNFile(p) {
		jsonError(w, "path must name a .sn file", http.StatusBadRequest)
		return
	}

	raw, err := fs.ReadFile(s.root, p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			jsonError(w, "document not found", http.StatusNotFound)
			return
		}
		s.log.Error("reading document", "path", p, "error", err)
		jsonError(w, "failed to read document", http.StatusInternalServerError)
		return
	}

	v := sn.VerifyContent(raw)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(verifyResponse{
		Path:      p,
		Valid:     v.Valid,
		Sealed:    v.Sealed,
		Expected:  v.Expected,
		Found:     v.Found,
		Message:   v.Message(),
		Signature: !errors.Is(v.Err, sn.ErrSignatureNotFound),
	})
}

func (s *Server) fileError(w http.ResponseWriter, p string, err error) {
	if errors.Is(err, fs.ErrNotExist) {
		http.Error(w, "document not found", http.StatusNotFound)
		return
	}
	s.log.Error("reading document", "path", p, "error", err)
	http.Error(w, "failed to read document", http.StatusInternalServerError)
}

// requestPath returns the wildcard part of the route as an fs.FS path.
func requestPath(r *http.Request) (string, bool) {
	p := path.Clean(chi.URLParam(r, "*"))
	return p, p != "." && fs.ValidPath(p)
}

func documentTitle(raw []byte) string {
	doc, err := sn.Parse(string(raw))
	if err != nil {
		return "(unparsable)"
	}
	return doc.Title()
}

func signatureStatus(raw []byte) string {
	v := sn.VerifyContent(raw)
	switch {
	case v.Valid:
		return statusValid
	case errors.Is(v.Err, sn.ErrSignatureNotFound):
		return statusUnsigned
	default:
		return statusInvalid
	}
}

func jsonError(w http.ResponseWriter, msg string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
