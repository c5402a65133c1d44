package htmltomarkdown_test

import (
	"testing"
	"unicode/utf8"

	"github.com/fwojciec/c2cgpx"
	"github.com/fwojciec/c2cgpx/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Commenter implements c2cgpx.Commenter at compile time.
var _ c2cgpx.Commenter = (*htmltomarkdown.Commenter)(nil)

func TestCommenter_Comment(t *testing.T) {
	t.Parallel()

	t.Run("converts basic paragraph", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewCommenter().Comment(`<p>Départ du parking.</p>`)

		require.NoError(t, err)
		assert.Equal(t, "Départ du parking.", md)
	})

	t.Run("converts permalink and labels", func(t *testing.T) {
		t.Parallel()

		html := `<p> <a href="https://www.camptocamp.org/routes/57964">57964</a><br/><b>Cotations</b> : 6a</p>`

		md, err := htmltomarkdown.NewCommenter().Comment(html)

		require.NoError(t, err)
		assert.Contains(t, md, "[57964](https://www.camptocamp.org/routes/57964)")
		assert.Contains(t, md, "**Cotations** : 6a")
		assert.NotContains(t, md, "<br")
	})

	t.Run("converts section headings", func(t *testing.T) {
		t.Parallel()

		html := `<hr><h1>Description</h1> <p>Suivre l'arête.</p>`

		md, err := htmltomarkdown.NewCommenter().Comment(html)

		require.NoError(t, err)
		assert.Contains(t, md, "# Description")
		assert.Contains(t, md, "Suivre l'arête.")
	})

	t.Run("converts pitch tables", func(t *testing.T) {
		t.Parallel()

		html := `<table><tr><td><b>L1</b></td><td>6a</td></tr><tr><td><b>L2</b></td><td>6b</td></tr></table>`

		md, err := htmltomarkdown.NewCommenter().Comment(html)

		require.NoError(t, err)
		assert.Contains(t, md, "L1")
		assert.Contains(t, md, "6b")
		assert.Contains(t, md, "|")
	})

	t.Run("trims trailing whitespace", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewCommenter().Comment("<p>un</p>\n\n\n\n<p>deux</p>")

		require.NoError(t, err)
		assert.Equal(t, "un\n\ndeux", md)
	})

	t.Run("returns empty comment for blank input", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewCommenter().Comment("  ")

		require.NoError(t, err)
		assert.Empty(t, md)
	})

	t.Run("truncates to max length in runes", func(t *testing.T) {
		t.Parallel()

		c := htmltomarkdown.NewCommenter()
		c.MaxLength = 10

		md, err := c.Comment(`<p>Éboulis très raides sous le col.</p>`)

		require.NoError(t, err)
		assert.Equal(t, 10, utf8.RuneCountInString(md))
		assert.Equal(t, "Éboulis t…", md)
	})

	t.Run("keeps short comments whole", func(t *testing.T) {
		t.Parallel()

		c := htmltomarkdown.NewCommenter()
		c.MaxLength = 100

		md, err := c.Comment(`<p>Court.</p>`)

		require.NoError(t, err)
		assert.Equal(t, "Court.", md)
	})
}
