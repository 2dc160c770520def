package glubblog

import (
	"bytes"
	"regexp"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	bm "github.com/microcosm-cc/bluemonday"
	bf "github.com/russross/blackfriday"
)

// ContentRenderer turns a markdown body into HTML.
type ContentRenderer interface {
	Render(src []byte) ([]byte, error)
}

const (
	EngineGoldmark    = "goldmark"
	EngineBlackfriday = "blackfriday"

	DefaultHighlightStyle = "monokailight"
)

type RendererOptions struct {
	Engine         string
	HighlightStyle string
	// Unsafe skips sanitizing. Posts can also opt out with `unsafe: true`.
	Unsafe bool
}

// NewContentRenderer returns the markdown engine selected by opts.Engine.
func NewContentRenderer(opts RendererOptions) (ContentRenderer, error) {
	var r ContentRenderer
	switch strings.ToLower(opts.Engine) {
	case "", EngineGoldmark:
		r = newGoldmarkRenderer(opts.HighlightStyle)
	case EngineBlackfriday:
		r = blackfridayRenderer{}
	default:
		return nil, errors.Errorf("unknown markdown engine %q", opts.Engine)
	}
	if opts.Unsafe {
		return r, nil
	}
	return Sanitized(r), nil
}

type goldmarkRenderer struct {
	md goldmark.Markdown
}

func newGoldmarkRenderer(style string) goldmarkRenderer {
	if style == "" {
		style = DefaultHighlightStyle
	}
	return goldmarkRenderer{md: goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			extension.Typographer,
			highlighting.NewHighlighting(
				highlighting.WithStyle(style),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithUnsafe(),
		),
	)}
}

func (g goldmarkRenderer) Render(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := g.md.Convert(src, &buf); err != nil {
		return nil, errors.Wrap(err, "goldmark")
	}
	return buf.Bytes(), nil
}

type blackfridayRenderer struct{}

func (blackfridayRenderer) Render(src []byte) ([]byte, error) {
	return bf.Markdown(src,
		NewMdModifier(
			bf.HtmlRenderer(0, "", ""),
		), bf.EXTENSION_TABLES|bf.EXTENSION_FENCED_CODE), nil
}

// highlight markup is class based, allow exactly that
var classPattern = regexp.MustCompile(`^[a-zA-Z0-9 _-]+$`)

func sanitizePolicy() *bm.Policy {
	p := bm.UGCPolicy()
	p.AllowAttrs("class").Matching(classPattern).OnElements("pre", "code", "span", "div", "sup", "li", "a", "section", "hr", "input")
	p.AllowAttrs("type", "checked", "disabled").OnElements("input")
	p.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6", "li", "sup")
	return p
}

type sanitizer struct {
	ContentRenderer
	policy *bm.Policy
}

// Sanitized wraps r so its output passes the UGC policy.
func Sanitized(r ContentRenderer) ContentRenderer {
	if s, ok := r.(sanitizer); ok {
		return s
	}
	return sanitizer{ContentRenderer: r, policy: sanitizePolicy()}
}

// Unsanitized strips a Sanitized wrapper.
func Unsanitized(r ContentRenderer) ContentRenderer {
	if s, ok := r.(sanitizer); ok {
		return s.ContentRenderer
	}
	return r
}

func (s sanitizer) Render(src []byte) ([]byte, error) {
	html, err := s.ContentRenderer.Render(src)
	if err != nil {
		return nil, err
	}
	return s.policy.SanitizeBytes(html), nil
}
