package main

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lemmi/glubblog"
	"github.com/pkg/errors"
)

type stackTracer interface {
	StackTrace() errors.StackTrace
}

func HttpError(w http.ResponseWriter, code int, logErr error) {
	if err, ok := logErr.(stackTracer); ok && DEBUG {
		slog.Error(logErr.Error(), "code", code, "stack", fmt.Sprintf("%+v", err.StackTrace()))
	} else {
		slog.Error(logErr.Error(), "code", code)
	}
	http.Error(w, http.StatusText(code), code)
}

// siteHandler serves the current site. Reloads swap the whole site.
type siteHandler struct {
	mu   sync.RWMutex
	site *glubblog.Site
	load func() (*glubblog.Site, error)
	// pinned backends are reloaded when their revision moves
	revision func() (string, error)
}

func newSiteHandler(load func() (*glubblog.Site, error)) (*siteHandler, error) {
	site, err := load()
	if err != nil {
		return nil, err
	}
	return &siteHandler{site: site, load: load}, nil
}

func (h *siteHandler) Reload() error {
	site, err := h.load()
	if err != nil {
		return err
	}
	h.mu.Lock()
	h.site = site
	h.mu.Unlock()
	slog.Info("site loaded", "posts", site.Store.Len(), "revision", site.Revision())
	return nil
}

// Site returns the current site, reloading first if the backend revision
// changed.
func (h *siteHandler) Site() (*glubblog.Site, error) {
	h.mu.RLock()
	site := h.site
	h.mu.RUnlock()

	if h.revision == nil {
		return site, nil
	}
	rev, err := h.revision()
	if err != nil {
		return nil, err
	}
	if rev == site.Revision() {
		return site, nil
	}
	if err := h.Reload(); err != nil {
		return nil, err
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.site, nil
}

func (h *siteHandler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cacheControl)
	r.Get("/", h.serveIndex)
	r.Get("/id/{id}", h.serveID)
	r.Get("/"+glubblog.StylesheetName, h.serveStylesheet)
	r.Get("/static/*", h.serveStatic("/"))
	r.Get("/robots.txt", h.serveStatic("/static"))
	r.Get("/favicon.ico", h.serveStatic("/static"))
	r.Get("/*", h.servePost)
	return r
}

func cacheControl(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "max-age=32")
		next.ServeHTTP(w, r)
	})
}

func (h *siteHandler) serveStatic(root string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		site, err := h.Site()
		if err != nil {
			HttpError(w, http.StatusInternalServerError, err)
			return
		}
		glubblog.NewStaticHandler(site.FS).Cd(root).ServeHTTP(w, r)
	}
}

func (h *siteHandler) serveStylesheet(w http.ResponseWriter, r *http.Request) {
	site, err := h.Site()
	if err != nil {
		HttpError(w, http.StatusInternalServerError, err)
		return
	}
	buf := bytes.Buffer{}
	if err := glubblog.WriteStylesheet(&buf, site.Config.HighlightStyle); err != nil {
		HttpError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	http.ServeContent(w, r, glubblog.StylesheetName, time.Time{}, bytes.NewReader(buf.Bytes()))
}

func (h *siteHandler) serveIndex(w http.ResponseWriter, r *http.Request) {
	site, err := h.Site()
	if err != nil {
		HttpError(w, http.StatusInternalServerError, err)
		return
	}
	buf := bytes.Buffer{}
	if err := site.Renderer.RenderIndex(&buf, site.Store.Posts()); err != nil {
		HttpError(w, http.StatusInternalServerError, errors.Wrapf(err, "index %q", r.URL.Path))
		return
	}
	page := buf.Bytes()
	if site.Config.Tidy {
		tbuf := bytes.Buffer{}
		if err := glubblog.Tidy(&tbuf, page); err != nil {
			HttpError(w, http.StatusInternalServerError, errors.Wrapf(err, "tidy %q", r.URL.Path))
			return
		}
		page = tbuf.Bytes()
	}
	writePage(w, r, site, page)
}

func (h *siteHandler) serveID(w http.ResponseWriter, r *http.Request) {
	site, err := h.Site()
	if err != nil {
		HttpError(w, http.StatusInternalServerError, err)
		return
	}
	p, err := site.Store.Lookup(chi.URLParam(r, "id"))
	if err != nil {
		HttpError(w, http.StatusNotFound, err)
		return
	}
	http.Redirect(w, r, p.Link(), http.StatusFound)
}

func (h *siteHandler) servePost(w http.ResponseWriter, r *http.Request) {
	site, err := h.Site()
	if err != nil {
		HttpError(w, http.StatusInternalServerError, err)
		return
	}
	slug := chi.URLParam(r, "*")
	p, err := site.Store.BySlug(slug)
	if err != nil {
		HttpError(w, http.StatusNotFound, err)
		return
	}
	if !strings.HasSuffix(r.URL.Path, "/") {
		http.Redirect(w, r, p.Link(), http.StatusMovedPermanently)
		return
	}
	page, err := site.Renderer.RenderBytes(p)
	if err != nil {
		HttpError(w, http.StatusInternalServerError, errors.Wrapf(err, "page generation failed: %q", r.URL.Path))
		return
	}
	writePage(w, r, site, page)
}

func writePage(w http.ResponseWriter, r *http.Request, site *glubblog.Site, page []byte) {
	if rev := site.Revision(); rev != "" {
		w.Header().Set("ETag", `"`+rev+`"`)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	http.ServeContent(w, r, "", time.Time{}, bytes.NewReader(page))
}
