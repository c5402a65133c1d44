// Package goldmark renders camptocamp markup to HTML.
// Camptocamp-specific tokens are rewritten first; the remaining text is
// rendered as CommonMark by goldmark.
package goldmark

import (
	"bytes"
	"strings"

	"github.com/fwojciec/c2cgpx"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"
)

// Ensure Transformer implements c2cgpx.Transformer at compile time.
var _ c2cgpx.Transformer = (*Transformer)(nil)

// Transformer converts camptocamp markup into HTML.
// It holds no per-call state and is safe to reuse.
type Transformer struct {
	md goldmark.Markdown
}

// NewTransformer creates a new Transformer. Newlines render as hard line
// breaks and raw HTML is passed through.
func NewTransformer() *Transformer {
	md := goldmark.New(
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
			html.WithUnsafe(),
		),
	)
	return &Transformer{md: md}
}

// Transform converts text to HTML. The rewrite order matters: link and
// image rewriting never emit a raw "|", so the pipe delimiter pass only
// sees pipes written by the author.
func (t *Transformer) Transform(text string) string {
	text = strings.ReplaceAll(text, cellMark, "")
	text = rewriteLinks(text)
	text = rewriteImages(text)
	text = strings.ReplaceAll(text, "|", cellMark)
	text = numberPitches(text)
	return t.Normalize(text)
}

// Normalize renders the block structure of text: paragraphs, lists and
// table rows. HTML already present in text is kept as is.
func (t *Transformer) Normalize(text string) string {
	src := groupTables(strings.ReplaceAll(text, "\r\n", "\n"))

	var buf bytes.Buffer
	if err := t.md.Convert([]byte(src), &buf); err != nil {
		return src
	}
	return buf.String()
}
