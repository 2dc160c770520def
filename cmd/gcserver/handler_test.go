package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/lemmi/glubblog"
	"github.com/pkg/errors"
)

var site = fstest.MapFS{
	"content/2024-01-02_side-effects.md": {Data: []byte("---\ntitle: Side Effects\n---\nUse *side_effect*.\n")},
	"content/mock/autospec.md":           {Data: []byte("---\ntitle: Autospec\ndate: 2023-06-01\n---\nbody\n")},
	"templates/seo.tmpl":                 {Data: []byte("<title>{{if .Post}}{{.Post.Title}}{{else}}{{.Site.Title}}{{end}}</title>")},
	"static/style.css":                   {Data: []byte("body{}")},
	"static/robots.txt":                  {Data: []byte("User-agent: *")},
}

func newTestHandler(t *testing.T, fs fstest.MapFS) *siteHandler {
	t.Helper()
	cfg := glubblog.DefaultConfig()
	cfg.Title = "Mock Notes"
	h, err := newSiteHandler(func() (*glubblog.Site, error) {
		return glubblog.NewSite(http.FS(fs), cfg)
	})
	if err != nil {
		t.Fatal(err)
	}
	return h
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestRoutes(t *testing.T) {
	h := newTestHandler(t, site).Router()
	tests := []struct {
		path     string
		code     int
		contains string
	}{
		{"/", http.StatusOK, `href="/side-effects/"`},
		{"/side-effects/", http.StatusOK, "<title>Side Effects</title>"},
		{"/mock/autospec/", http.StatusOK, `<div class="entry-body"><p>body</p>`},
		{"/nope/", http.StatusNotFound, ""},
		{"/static/style.css", http.StatusOK, "body{}"},
		{"/static/", http.StatusNotFound, ""},
		{"/robots.txt", http.StatusOK, "User-agent"},
		{"/chroma.css", http.StatusOK, ".chroma"},
	}
	for _, tt := range tests {
		w := get(t, h, tt.path)
		if w.Code != tt.code {
			t.Errorf("GET %s = %d, want %d", tt.path, w.Code, tt.code)
			continue
		}
		if !strings.Contains(w.Body.String(), tt.contains) {
			t.Errorf("GET %s: missing %q", tt.path, tt.contains)
		}
		if got := w.Header().Get("Cache-Control"); got != "max-age=32" {
			t.Errorf("GET %s: Cache-Control = %q", tt.path, got)
		}
	}
}

func TestRedirects(t *testing.T) {
	h := newTestHandler(t, site).Router()

	w := get(t, h, "/side-effects")
	if w.Code != http.StatusMovedPermanently || w.Header().Get("Location") != "/side-effects/" {
		t.Errorf("missing slash: %d %q", w.Code, w.Header().Get("Location"))
	}

	id := glubblog.PostID("mock/autospec.md")
	w = get(t, h, "/id/"+id)
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/mock/autospec/" {
		t.Errorf("by id: %d %q", w.Code, w.Header().Get("Location"))
	}

	if w := get(t, h, "/id/unknown"); w.Code != http.StatusNotFound {
		t.Errorf("unknown id: %d", w.Code)
	}
}

func TestReload(t *testing.T) {
	fs := fstest.MapFS{}
	for k, v := range site {
		fs[k] = v
	}
	h := newTestHandler(t, fs)
	r := h.Router()
	if w := get(t, r, "/fresh/"); w.Code != http.StatusNotFound {
		t.Fatalf("GET /fresh/ before reload = %d", w.Code)
	}

	fs["content/fresh.md"] = &fstest.MapFile{Data: []byte("---\ntitle: Fresh\n---\nnew\n")}
	if err := h.Reload(); err != nil {
		t.Fatal(err)
	}
	if w := get(t, r, "/fresh/"); w.Code != http.StatusOK {
		t.Errorf("GET /fresh/ after reload = %d", w.Code)
	}
}

func TestRevisionReload(t *testing.T) {
	h := newTestHandler(t, site)
	loads := 0
	load := h.load
	h.load = func() (*glubblog.Site, error) {
		loads++
		return load()
	}
	h.revision = func() (string, error) { return "abc", nil }

	// the fstest backend has no revision, so every request sees a new one
	if _, err := h.Site(); err != nil {
		t.Fatal(err)
	}
	if loads != 1 {
		t.Errorf("loads = %d", loads)
	}
}

type brokenRenderer struct{}

func (brokenRenderer) Render([]byte) ([]byte, error) {
	return nil, errors.New("broken engine")
}

func TestPostRenderError(t *testing.T) {
	cfg := glubblog.DefaultConfig()
	h, err := newSiteHandler(func() (*glubblog.Site, error) {
		fs := http.FS(site)
		store, err := glubblog.NewStore(fs, glubblog.WithRenderer(brokenRenderer{}))
		if err != nil {
			return nil, err
		}
		r, err := glubblog.NewEntryRenderer(fs, cfg.SiteInfo(), 0)
		if err != nil {
			return nil, err
		}
		return &glubblog.Site{Config: cfg, FS: fs, Store: store, Renderer: r}, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	w := get(t, h.Router(), "/side-effects/")
	if w.Code != http.StatusInternalServerError {
		t.Errorf("code = %d, body:\n%s", w.Code, w.Body)
	}
	if strings.Contains(w.Body.String(), `<div class="entry-body">`) {
		t.Error("page with an empty body was served")
	}
}
