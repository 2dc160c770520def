package glubblog

import (
	"net/http"
	"path"
)

// StaticHandler serves files like http.ServeContent without directory
// listings. It also implements http.FileSystem rooted at its prefix.
type StaticHandler struct {
	fs     http.FileSystem
	prefix string
}

func NewStaticHandler(fs http.FileSystem) StaticHandler {
	return StaticHandler{fs: fs}
}

// ServeHTTP serves the file named by the request path, 404 on directories.
func (sh StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f, err := sh.Open(r.URL.Path)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}
	defer f.Close()
	stat, err := f.Stat()
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	if stat.IsDir() {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}
	http.ServeContent(w, r, stat.Name(), stat.ModTime(), f)
}

// Cd returns a handler rooted at dir below the current root.
func (sh StaticHandler) Cd(dir string) StaticHandler {
	sh.prefix = path.Join(sh.prefix, path.Clean("/"+dir))
	return sh
}

func (sh StaticHandler) Open(name string) (http.File, error) {
	return sh.fs.Open(path.Join("/", sh.prefix, path.Clean("/"+name)))
}
