package glubblog

import (
	"bytes"
	"encoding/json"
	"html/template"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/lemmi/glubblog/backend"
	"github.com/pkg/errors"
)

const (
	DefaultContentDir = "content"

	metaFile    = "meta.json"
	articleFile = "article.md"
)

// ErrNotFound is returned for ids and slugs the store does not know.
var ErrNotFound = errors.New("post not found")

// reservedSlugs are first path segments taken by the server routes and the
// build output.
var reservedSlugs = map[string]bool{
	"id":           true,
	staticDir:      true,
	StylesheetName: true,
	indexFile:      true,
	"robots.txt":   true,
	"favicon.ico":  true,
}

var markdownExt = map[string]bool{
	".md":       true,
	".markdown": true,
}

// QueryResult is what a content query yields for an id.
type QueryResult struct {
	Frontmatter Meta
	HTML        template.HTML
}

// Store holds every post found below the content directory of a backend.
type Store struct {
	fs       backend.Backend
	dir      string
	drafts   bool
	renderer ContentRenderer

	posts  Entries
	byID   map[string]*Post
	bySlug map[string]*Post
}

type StoreOption func(*Store)

// WithDrafts keeps posts marked `draft: true`.
func WithDrafts(drafts bool) StoreOption {
	return func(s *Store) {
		s.drafts = drafts
	}
}

func WithRenderer(r ContentRenderer) StoreOption {
	return func(s *Store) {
		s.renderer = r
	}
}

// WithContentDir changes the directory scanned for posts.
func WithContentDir(dir string) StoreOption {
	return func(s *Store) {
		s.dir = dir
	}
}

// NewStore scans fs for posts. Any unreadable or malformed post fails the
// whole scan.
func NewStore(fs backend.Backend, opts ...StoreOption) (*Store, error) {
	s := &Store{
		fs:     fs,
		dir:    DefaultContentDir,
		byID:   make(map[string]*Post),
		bySlug: make(map[string]*Post),
	}
	for _, o := range opts {
		o(s)
	}
	if s.renderer == nil {
		r, err := NewContentRenderer(RendererOptions{})
		if err != nil {
			return nil, err
		}
		s.renderer = r
	}

	if err := s.scan(""); err != nil {
		return nil, err
	}
	sort.Sort(s.posts)
	s.posts.link()
	return s, nil
}

func (s *Store) open(rel string) (http.File, error) {
	return s.fs.Open("/" + path.Join(s.dir, rel))
}

func (s *Store) readDir(rel string) ([]os.FileInfo, error) {
	dir, err := s.open(rel)
	if err != nil {
		return nil, errors.Wrapf(err, "Cannot open directory: %q", path.Join(s.dir, rel))
	}
	defer dir.Close()
	fis, err := dir.Readdir(-1)
	if err != nil {
		return nil, errors.Wrapf(err, "Cannot read directory: %q", path.Join(s.dir, rel))
	}
	sort.Slice(fis, func(i, j int) bool { return fis[i].Name() < fis[j].Name() })
	return fis, nil
}

func (s *Store) readFile(rel string) ([]byte, error) {
	f, err := s.open(rel)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func (s *Store) scan(rel string) error {
	fis, err := s.readDir(rel)
	if err != nil {
		return err
	}

	for _, fi := range fis {
		if fi.Name() == metaFile {
			return s.add(s.legacyPost(rel))
		}
	}

	for _, fi := range fis {
		name := fi.Name()
		if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
			continue
		}
		crel := path.Join(rel, name)
		if fi.IsDir() {
			if err := s.scan(crel); err != nil {
				return err
			}
			continue
		}
		if !markdownExt[strings.ToLower(path.Ext(name))] {
			continue
		}
		if err := s.add(s.filePost(crel)); err != nil {
			return err
		}
	}
	return nil
}

// filePost reads a markdown file with optional front-matter.
func (s *Store) filePost(rel string) (*Post, error) {
	src, err := s.readFile(rel)
	if err != nil {
		return nil, errors.Wrapf(err, "Cannot read markdown file: %q", rel)
	}

	var meta Meta
	body, err := frontmatter.Parse(bytes.NewReader(src), &meta)
	if err != nil {
		return nil, errors.Wrapf(err, "Cannot parse front-matter in %q", rel)
	}

	name := strings.TrimSuffix(path.Base(rel), path.Ext(rel))
	return s.newPost(rel, path.Dir(rel), name, meta, body)
}

// legacyPost reads a directory holding meta.json and article.md.
func (s *Store) legacyPost(rel string) (*Post, error) {
	b, err := s.readFile(path.Join(rel, metaFile))
	if err != nil {
		return nil, errors.Wrapf(err, "Cannot read %q", path.Join(rel, metaFile))
	}
	var meta Meta
	if err := json.Unmarshal(b, &meta); err != nil {
		return nil, errors.Wrapf(err, "Parsing json in %q", path.Join(rel, metaFile))
	}

	body, err := s.readFile(path.Join(rel, articleFile))
	if err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "Cannot read markdown file: %q", path.Join(rel, articleFile))
	}

	return s.newPost(rel, path.Dir(rel), path.Base(rel), meta, body)
}

func (s *Store) newPost(rel, parent, name string, meta Meta, body []byte) (*Post, error) {
	date, base := splitDatePrefix(name)
	if meta.Date.IsZero() && date != "" {
		d, err := ParseGCTime(date)
		if err != nil {
			return nil, errors.Wrapf(err, "date prefix of %q", rel)
		}
		meta.Date = d
	}
	if strings.TrimSpace(meta.Title) == "" {
		meta.Title = titleFromName(name)
	}

	id := PostID(rel)
	slug := strings.Trim(path.Clean("/"+meta.Slug), "/")
	if slug == "" {
		var parts []string
		if parent != "." && parent != "" {
			for _, seg := range strings.Split(parent, "/") {
				parts = append(parts, Slugify(seg))
			}
		}
		leaf := Slugify(base)
		if leaf == "" {
			leaf = Slugify(meta.Title)
		}
		if leaf == "" {
			leaf = id
		}
		parts = append(parts, leaf)
		slug = path.Join(parts...)
	}
	meta.Slug = slug

	renderer := s.renderer
	if meta.Unsafe {
		renderer = Unsanitized(renderer)
	}

	return &Post{
		id:       id,
		meta:     meta,
		link:     url.URL{Path: "/" + slug + "/"},
		source:   path.Join(s.dir, rel),
		body:     body,
		renderer: renderer,
	}, nil
}

func (s *Store) add(p *Post, err error) error {
	if err != nil {
		return err
	}
	if p.Draft() && !s.drafts {
		return nil
	}
	if p.Slug() == "" {
		return errors.Errorf("empty slug for %q", p.Source())
	}
	if first := strings.SplitN(p.Slug(), "/", 2)[0]; reservedSlugs[first] {
		return errors.Errorf("slug %q of %q collides with the reserved path /%s", p.Slug(), p.Source(), first)
	}
	if other, ok := s.byID[p.ID()]; ok {
		return errors.Errorf("duplicate id %s: %q and %q", p.ID(), other.Source(), p.Source())
	}
	if other, ok := s.bySlug[p.Slug()]; ok {
		return errors.Errorf("duplicate slug %q: %q and %q", p.Slug(), other.Source(), p.Source())
	}
	s.byID[p.ID()] = p
	s.bySlug[p.Slug()] = p
	s.posts = append(s.posts, p)
	return nil
}

// Posts returns all posts, highest priority and newest first.
func (s *Store) Posts() Entries {
	return append(Entries(nil), s.posts...)
}

func (s *Store) Len() int {
	return len(s.posts)
}

func (s *Store) Lookup(id string) (*Post, error) {
	p, ok := s.byID[id]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "id %q", id)
	}
	return p, nil
}

func (s *Store) BySlug(slug string) (*Post, error) {
	p, ok := s.bySlug[strings.Trim(slug, "/")]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "slug %q", slug)
	}
	return p, nil
}

// Query resolves id to its front-matter and rendered body.
func (s *Store) Query(id string) (QueryResult, error) {
	p, err := s.Lookup(id)
	if err != nil {
		return QueryResult{}, err
	}
	html, err := p.RenderHTML()
	if err != nil {
		return QueryResult{}, errors.Wrapf(err, "render %q", p.Source())
	}
	return QueryResult{Frontmatter: p.Meta(), HTML: html}, nil
}

// IsNotFound reports whether err was caused by an unknown id or slug.
func IsNotFound(err error) bool {
	return errors.Cause(err) == ErrNotFound
}
