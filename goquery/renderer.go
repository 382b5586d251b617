package goquery

import (
	"context"

	"github.com/fwojciec/freitagsfoo"
)

// Ensure Renderer implements freitagsfoo.Renderer at compile time.
var _ freitagsfoo.Renderer = (*Renderer)(nil)

// Renderer renders wikitext to HTML and converts the result to text.
type Renderer struct {
	html freitagsfoo.HTMLRenderer
	text freitagsfoo.TextConverter
}

// NewRenderer creates a Renderer. Any TextConverter works; TextConverter
// from this package yields plain text, htmltomarkdown yields Markdown.
func NewRenderer(html freitagsfoo.HTMLRenderer, text freitagsfoo.TextConverter) *Renderer {
	return &Renderer{html: html, text: text}
}

// Render returns the text of the rendered wikitext.
func (r *Renderer) Render(ctx context.Context, wikitext string) (string, error) {
	rendered, err := r.html.RenderHTML(ctx, wikitext)
	if err != nil {
		return "", err
	}
	return r.text.Convert(rendered)
}
