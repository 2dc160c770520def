package glubblog

import (
	"bytes"
	"io"

	"github.com/pkg/errors"
	"github.com/raymondbutcher/tidyhtml"
)

// Tidy reindents an HTML document. Post pages are never tidied so their body
// stays exactly as rendered.
func Tidy(w io.Writer, page []byte) error {
	return errors.Wrap(tidyhtml.Copy(w, bytes.NewReader(page)), "tidyhtml failed")
}
