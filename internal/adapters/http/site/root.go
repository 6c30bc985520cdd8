// Package site serves the student-facing front-end and the root redirect.
package site

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"net/http"
)

// IndexPath is where GET / redirects.
const IndexPath = "/static/index.html"

// Error constants
var (
	ErrServe = errors.New("site serve failed")
)

// Handler serves assets from an fs.FS.
type Handler struct {
	fsys fs.FS
}

// NewHandler creates a handler over fsys, defaulting to the embedded assets.
func NewHandler(fsys fs.FS) *Handler {
	if fsys == nil {
		fsys = FS()
	}
	return &Handler{fsys: fsys}
}

// Register attaches the root redirect and /static/ routes to mux.
func Register(_ context.Context, mux *http.ServeMux, fsys fs.FS) {
	if mux == nil {
		panic("mux is nil")
	}
	h := NewHandler(fsys)
	mux.HandleFunc("GET /{$}", h.HandleRoot)
	mux.HandleFunc("GET /static/{path...}", h.HandleAsset)
}

// HandleRoot handles GET / with a temporary redirect to the index page.
func (h *Handler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, IndexPath, http.StatusTemporaryRedirect)
}

// HandleAsset handles GET /static/{path...}. The index page is served in
// place rather than redirected to the directory.
func (h *Handler) HandleAsset(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("path")
	if name == "" {
		name = "index.html"
	}
	if !fs.ValidPath(name) {
		http.NotFound(w, r)
		return
	}
	info, err := fs.Stat(h.fsys, name)
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}
	data, err := fs.ReadFile(h.fsys, name)
	if err != nil {
		http.Error(w, ErrServe.Error(), http.StatusInternalServerError)
		return
	}
	http.ServeContent(w, r, info.Name(), info.ModTime(), bytes.NewReader(data))
}
