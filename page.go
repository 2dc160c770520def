package glubblog

import (
	"bytes"
	"embed"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"path"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

const tmplPath = "templates"

//go:embed templates/*.tmpl
var builtinTemplates embed.FS

// SiteInfo is the site wide data every page sees.
type SiteInfo struct {
	Title       string
	Description string
	BaseURL     string
	Author      string
}

// Page is the data the "main" template is executed with.
type Page struct {
	Site        SiteInfo
	Description string
	Canonical   string
	Type        string

	// Post is set on entry pages, Posts on the index.
	Post    *Post
	Related Entries
	Posts   Entries
}

// EntryRenderer composes the layout, the SEO block and a post body into a
// page.
type EntryRenderer struct {
	tmpl    *template.Template
	site    SiteInfo
	related int
}

// NewEntryRenderer parses the built-in templates and then any
// templates/*.tmpl found in files, which replace built-ins of the same name.
// files may be nil.
func NewEntryRenderer(files http.FileSystem, site SiteInfo, related int) (*EntryRenderer, error) {
	tmain := template.New("_")
	sub, err := subFS(builtinTemplates, tmplPath)
	if err != nil {
		return nil, err
	}
	if err := parseTemplates(tmain, http.FS(sub), "/"); err != nil {
		return nil, err
	}
	if files != nil {
		err := parseTemplates(tmain, files, tmplPath)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return &EntryRenderer{tmpl: tmain, site: site, related: related}, nil
}

func subFS(f fs.FS, dir string) (fs.FS, error) {
	sub, err := fs.Sub(f, dir)
	return sub, errors.Wrapf(err, "fs.Sub(%q)", dir)
}

func parseTemplates(tmain *template.Template, files http.FileSystem, dir string) error {
	d, err := files.Open(dir)
	if err != nil {
		return errors.Wrapf(err, "Cannot open directory: %q", dir)
	}
	defer d.Close()
	fis, err := d.Readdir(-1)
	if err != nil {
		return errors.Wrapf(err, "Cannot read directory: %q", dir)
	}
	sort.Slice(fis, func(i, j int) bool { return fis[i].Name() < fis[j].Name() })
	for _, fi := range fis {
		if !strings.HasSuffix(fi.Name(), ".tmpl") {
			continue
		}
		fpath := path.Join(dir, fi.Name())
		data, err := files.Open(fpath)
		if err != nil {
			return errors.Wrapf(err, "Cannot open file: %q", fpath)
		}
		databytes, err := io.ReadAll(data)
		data.Close()
		if err != nil {
			return errors.Wrapf(err, "Cannot read file: %q", fpath)
		}

		tname := strings.TrimSuffix(fi.Name(), ".tmpl")
		if _, err := tmain.New(tname).Parse(string(databytes)); err != nil {
			return errors.Wrapf(err, "Cannot parse template: %q", fpath)
		}
	}
	return nil
}

func (r *EntryRenderer) canonical(link string) string {
	if r.site.BaseURL == "" {
		return ""
	}
	return strings.TrimRight(r.site.BaseURL, "/") + link
}

// EntryPage assembles the page data for p.
func (r *EntryRenderer) EntryPage(p *Post) Page {
	desc := p.Description()
	if desc == "" {
		desc = r.site.Description
	}
	var related Entries
	for _, c := range p.Context(r.related) {
		if c != p {
			related = append(related, c)
		}
	}
	return Page{
		Site:        r.site,
		Description: desc,
		Canonical:   r.canonical(p.Link()),
		Type:        "article",
		Post:        p,
		Related:     related,
	}
}

// IndexPage assembles the page data for the post listing.
func (r *EntryRenderer) IndexPage(posts Entries) Page {
	return Page{
		Site:        r.site,
		Description: r.site.Description,
		Canonical:   r.canonical("/"),
		Type:        "website",
		Posts:       posts,
	}
}

// Render writes the page for p. The body is injected as is. A body that fails
// to render fails the page.
func (r *EntryRenderer) Render(w io.Writer, p *Post) error {
	if _, err := p.RenderHTML(); err != nil {
		return errors.Wrapf(err, "render body of %q", p.Source())
	}
	return r.execute(w, r.EntryPage(p))
}

func (r *EntryRenderer) RenderBytes(p *Post) ([]byte, error) {
	buf := bytes.Buffer{}
	if err := r.Render(&buf, p); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *EntryRenderer) RenderIndex(w io.Writer, posts Entries) error {
	return r.execute(w, r.IndexPage(posts))
}

func (r *EntryRenderer) execute(w io.Writer, p Page) error {
	if err := r.tmpl.ExecuteTemplate(w, "main", p); err != nil {
		return errors.Wrapf(err, "template execution failed\n%s", r.tmpl.DefinedTemplates())
	}
	return nil
}
