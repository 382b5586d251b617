// Package goquery converts HTML rendered by the wiki to plain text.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/freitagsfoo"
	"golang.org/x/net/html"
)

// Ensure TextConverter implements freitagsfoo.TextConverter at compile time.
var _ freitagsfoo.TextConverter = (*TextConverter)(nil)

// removedSelectors match wiki chrome that is not part of the content.
var removedSelectors = []string{
	"script",
	"style",
	".mw-editsection",
	".mw-empty-elt",
	"#toc",
	".toc",
	".noprint",
}

// TextConverter extracts the text nodes of an HTML fragment, the way a
// browser's textContent would, after stripping wiki chrome.
type TextConverter struct{}

// NewTextConverter creates a new TextConverter.
func NewTextConverter() *TextConverter {
	return &TextConverter{}
}

// Convert returns the text content of html. Line breaks (<br>) become
// newlines; all other whitespace is kept as it appears in the markup.
func (c *TextConverter) Convert(htmlContent string) (string, error) {
	if strings.TrimSpace(htmlContent) == "" {
		return "", nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", freitagsfoo.Errorf(freitagsfoo.EINVALID, "failed to parse HTML: %v", err)
	}

	doc.Find(strings.Join(removedSelectors, ", ")).Remove()

	var b strings.Builder
	for _, n := range doc.Find("body").Nodes {
		writeText(&b, n)
	}
	return b.String(), nil
}

func writeText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.CommentNode:
		return
	case html.ElementNode:
		if n.Data == "br" {
			b.WriteByte('\n')
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(b, c)
	}
}
