package glubblog

import (
	"io"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/pkg/errors"
)

const StylesheetName = "chroma.css"

// WriteStylesheet writes the CSS for the class based code highlighting.
// Unknown styles fall back to chroma's default.
func WriteStylesheet(w io.Writer, style string) error {
	if style == "" {
		style = DefaultHighlightStyle
	}
	f := chromahtml.New(chromahtml.WithClasses(true))
	return errors.Wrapf(f.WriteCSS(w, styles.Get(style)), "stylesheet %q", style)
}
