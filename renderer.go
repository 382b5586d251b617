package freitagsfoo

import "context"

// Renderer converts a wikitext fragment to plain text.
type Renderer interface {
	Render(ctx context.Context, wikitext string) (string, error)
}

// HTMLRenderer converts a wikitext fragment to HTML, usually by asking the
// wiki to parse it.
type HTMLRenderer interface {
	RenderHTML(ctx context.Context, wikitext string) (string, error)
}

// TextConverter converts rendered HTML to text suitable for a talk description.
type TextConverter interface {
	// Convert transforms HTML content into text.
	// Empty input yields empty output.
	Convert(html string) (string, error)
}
