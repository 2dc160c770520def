package glubblog

import (
	"html/template"
	"log/slog"
	"net/url"
	"sync"
	"time"
)

// Post is a single piece of content. It is immutable once the store that
// produced it is built; the HTML body is rendered on first use.
type Post struct {
	id     string
	meta   Meta
	link   url.URL
	source string
	next   *Post
	prev   *Post

	body     []byte
	renderer ContentRenderer

	once sync.Once
	html []byte
	err  error
}

// NewPost returns a post around an already rendered body.
func NewPost(id, title string, html template.HTML) *Post {
	p := &Post{
		id:   id,
		meta: Meta{Title: title},
		html: []byte(html),
	}
	p.once.Do(func() {})
	return p
}

func (p *Post) ID() string {
	return p.id
}
func (p *Post) Title() string {
	return p.meta.Title
}
func (p *Post) Slug() string {
	return p.meta.Slug
}
func (p *Post) Author() string {
	return p.meta.Author
}
func (p *Post) Description() string {
	return p.meta.Description
}
func (p *Post) Date() time.Time {
	return time.Time(p.meta.Date)
}
func (p *Post) Tags() []string {
	return p.meta.Tags
}
func (p *Post) Priority() int {
	return p.meta.Priority
}
func (p *Post) Draft() bool {
	return p.meta.Draft
}
func (p *Post) Meta() Meta {
	return p.meta
}

// Link is the site relative permalink, always with a trailing slash.
func (p *Post) Link() string {
	return p.link.String()
}

// Source is the content path the post was read from.
func (p *Post) Source() string {
	return p.source
}
func (p *Post) Next() *Post {
	return p.next
}
func (p *Post) Prev() *Post {
	return p.prev
}

// RenderHTML renders the markdown body once and returns the cached result on
// every later call.
func (p *Post) RenderHTML() (template.HTML, error) {
	p.once.Do(func() {
		if p.renderer == nil {
			return
		}
		p.html, p.err = p.renderer.Render(p.body)
	})
	return template.HTML(p.html), p.err
}

// HTML is RenderHTML for templates. Errors are logged, the body stays empty.
func (p *Post) HTML() template.HTML {
	html, err := p.RenderHTML()
	if err != nil {
		slog.Error("render post", "id", p.id, "source", p.source, "err", err)
	}
	return html
}

// Context returns up to c posts around p, newest first.
func (p *Post) Context(c int) Entries {
	if c <= 0 {
		return nil
	}
	first := p
	last := p
	n := 1

	for {
		moved := false

		if n < c && first.prev != nil {
			moved = true
			first = first.prev
			n++
		}
		if n < c && last.next != nil {
			moved = true
			last = last.next
			n++
		}

		if n == c || !moved {
			break
		}
	}

	ret := make(Entries, 0, n)
	for t := first; n > 0; n-- {
		ret = append(ret, t)
		t = t.next
	}
	return ret
}

// Entries is a list of posts in display order.
type Entries []*Post

func (e Entries) Len() int {
	return len(e)
}
func (e Entries) Less(i, j int) bool {
	switch {
	case e[i].Priority() != e[j].Priority():
		return e[i].Priority() > e[j].Priority()
	case !e[i].Date().Equal(e[j].Date()):
		return e[i].Date().After(e[j].Date())
	}
	return e[i].Slug() < e[j].Slug()
}
func (e Entries) Swap(i, j int) {
	e[i], e[j] = e[j], e[i]
}

// link chains e so Prev points at the newer and Next at the older post.
func (e Entries) link() {
	for i, p := range e {
		p.prev, p.next = nil, nil
		if i > 0 {
			p.prev = e[i-1]
		}
		if i < len(e)-1 {
			p.next = e[i+1]
		}
	}
}
