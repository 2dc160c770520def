package glubblog

import (
	"github.com/lemmi/glubblog/backend"
)

// Site ties a backend, its posts and the page templates together.
type Site struct {
	Config   Config
	FS       backend.Backend
	Store    *Store
	Renderer *EntryRenderer
}

// NewSite scans fs and parses the templates according to cfg.
func NewSite(fs backend.Backend, cfg Config) (*Site, error) {
	cr, err := NewContentRenderer(RendererOptions{
		Engine:         cfg.Markdown,
		HighlightStyle: cfg.HighlightStyle,
		Unsafe:         !cfg.Sanitize,
	})
	if err != nil {
		return nil, err
	}

	opts := []StoreOption{
		WithRenderer(cr),
		WithDrafts(cfg.Drafts),
	}
	if cfg.ContentDir != "" {
		opts = append(opts, WithContentDir(cfg.ContentDir))
	}
	store, err := NewStore(fs, opts...)
	if err != nil {
		return nil, err
	}

	r, err := NewEntryRenderer(fs, cfg.SiteInfo(), cfg.Related)
	if err != nil {
		return nil, err
	}

	return &Site{
		Config:   cfg,
		FS:       fs,
		Store:    store,
		Renderer: r,
	}, nil
}

// Revision is the content revision, empty unless served from git.
func (s *Site) Revision() string {
	return backend.CID(s.FS)
}
