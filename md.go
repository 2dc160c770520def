package glubblog

import (
	"bytes"

	bf "github.com/russross/blackfriday"
)

// ImageAltTitleCopy fills a missing image title from its alt text and vice
// versa.
type ImageAltTitleCopy struct {
	bf.Renderer
}

func NewMdModifier(r bf.Renderer) bf.Renderer {
	return ImageAltTitleCopy{r}
}

func (md ImageAltTitleCopy) Image(out *bytes.Buffer, link []byte, title []byte, alt []byte) {
	if len(title) == 0 {
		title = alt
	}
	if len(alt) == 0 {
		alt = title
	}
	md.Renderer.Image(out, link, title, alt)
}
