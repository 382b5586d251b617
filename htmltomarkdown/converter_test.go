package htmltomarkdown_test

import (
	"testing"

	"github.com/fwojciec/freitagsfoo"
	"github.com/fwojciec/freitagsfoo/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Converter implements freitagsfoo.TextConverter at compile time.
var _ freitagsfoo.TextConverter = (*htmltomarkdown.Converter)(nil)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts basic paragraph", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter("")
		md, err := conv.Convert(`<p>Hello, world!</p>`)

		require.NoError(t, err)
		assert.Equal(t, "Hello, world!", md)
	})

	t.Run("converts emphasis from rendered wikitext", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter("")
		md, err := conv.Convert(`<div class="mw-parser-output"><p><b>Rust</b> for <i>beginners</i></p></div>`)

		require.NoError(t, err)
		assert.Contains(t, md, "**Rust**")
		assert.Contains(t, md, "*beginners*")
	})

	t.Run("resolves user page links against domain", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter("https://wiki.chaosdorf.de")
		md, err := conv.Convert(`<p>by <a href="/User:Alice" title="User:Alice">Alice</a></p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "[Alice](https://wiki.chaosdorf.de/User:Alice")
	})

	t.Run("converts unordered lists", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter("")
		md, err := conv.Convert(`<ul><li>Slides</li><li>Demo</li></ul>`)

		require.NoError(t, err)
		assert.Contains(t, md, "- Slides")
		assert.Contains(t, md, "- Demo")
	})

	t.Run("returns empty string for empty input", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter("")
		md, err := conv.Convert("  \n ")

		require.NoError(t, err)
		assert.Empty(t, md)
	})
}
