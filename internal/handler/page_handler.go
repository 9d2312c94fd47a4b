package handler

import (
	"net/http"
	"os"
	"path"
)

// PageHandler serves the landing page and the static assets it links to.
type PageHandler struct {
	indexPage string
	staticDir string
}

func NewPageHandler(indexPage, staticDir string) *PageHandler {
	return &PageHandler{indexPage: indexPage, staticDir: staticDir}
}

// Index handles GET and HEAD /
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	if _, err := os.Stat(h.indexPage); err != nil {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, h.indexPage)
}

// Static serves files from the static directory relative to the site root.
// Directories are only served through their index.html; there are no
// directory listings.
func (h *PageHandler) Static() http.Handler {
	return http.FileServer(noListingFS{http.Dir(h.staticDir)})
}

type noListingFS struct {
	fs http.FileSystem
}

func (n noListingFS) Open(name string) (http.File, error) {
	f, err := n.fs.Open(name)
	if err != nil {
		return nil, err
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if stat.IsDir() {
		index, err := n.fs.Open(path.Join(name, "index.html"))
		if err != nil {
			f.Close()
			return nil, os.ErrNotExist
		}
		index.Close()
	}
	return f, nil
}
