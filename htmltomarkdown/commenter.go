// Package htmltomarkdown derives plain-text waypoint comments from HTML
// descriptions.
package htmltomarkdown

import (
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/c2cgpx"
)

// Ensure Commenter implements c2cgpx.Commenter at compile time.
var _ c2cgpx.Commenter = (*Commenter)(nil)

var blankLines = regexp.MustCompile(`\n{3,}`)

// Commenter wraps html-to-markdown to render descriptions as Markdown text,
// which GPS units display better than raw HTML.
type Commenter struct {
	conv *converter.Converter

	// MaxLength caps the comment length in runes. Zero means no cap.
	MaxLength int
}

// NewCommenter creates a new Commenter.
func NewCommenter() *Commenter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Commenter{conv: conv}
}

// Comment transforms an HTML description into Markdown.
// Blank input yields an empty comment.
func (c *Commenter) Comment(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", nil
	}

	md, err := c.conv.ConvertString(html)
	if err != nil {
		return "", err
	}

	lines := strings.Split(md, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	md = strings.TrimSpace(blankLines.ReplaceAllString(strings.Join(lines, "\n"), "\n\n"))

	return truncate(md, c.MaxLength), nil
}

// truncate shortens s to n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return strings.TrimRight(string(runes[:n-1]), " \n") + "…"
}
