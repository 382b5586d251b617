package mock

import (
	"context"

	"github.com/fwojciec/freitagsfoo"
)

// Compile-time interface verification.
var (
	_ freitagsfoo.Renderer      = (*Renderer)(nil)
	_ freitagsfoo.HTMLRenderer  = (*HTMLRenderer)(nil)
	_ freitagsfoo.TextConverter = (*TextConverter)(nil)
)

// Renderer is a mock implementation of freitagsfoo.Renderer.
type Renderer struct {
	RenderFn func(ctx context.Context, wikitext string) (string, error)
}

func (r *Renderer) Render(ctx context.Context, wikitext string) (string, error) {
	return r.RenderFn(ctx, wikitext)
}

// HTMLRenderer is a mock implementation of freitagsfoo.HTMLRenderer.
type HTMLRenderer struct {
	RenderHTMLFn func(ctx context.Context, wikitext string) (string, error)
}

func (r *HTMLRenderer) RenderHTML(ctx context.Context, wikitext string) (string, error) {
	return r.RenderHTMLFn(ctx, wikitext)
}

// TextConverter is a mock implementation of freitagsfoo.TextConverter.
type TextConverter struct {
	ConvertFn func(html string) (string, error)
}

func (c *TextConverter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
