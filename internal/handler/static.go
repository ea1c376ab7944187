package handler

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

type staticHandler struct {
	dir string
}

// NewStaticHandler serves files for paths no route matched. Missing files,
// directories and path escapes answer 404.
func NewStaticHandler(dir string) *staticHandler {
	return &staticHandler{dir: dir}
}

func (h *staticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.NotFound(w, r)
		return
	}

	name := strings.TrimPrefix(filepath.Clean(r.URL.Path), "/")
	if name == "" || name == "." {
		name = "index.html"
	}

	path := filepath.Join(h.dir, name)
	if !strings.HasPrefix(path, filepath.Clean(h.dir)+string(os.PathSeparator)) {
		http.NotFound(w, r)
		return
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}

	http.ServeFile(w, r, path)
}
