package freitagsfoo

import "context"

// Page is the raw wikitext of a meetup page.
type Page struct {
	Title string

	// Text is the full page markup.
	Text string

	// TopSection is the markup preceding the first heading.
	TopSection string
}

// PageSource provides page markup.
// Implementations hide whether the text comes from the wiki API or a local file.
type PageSource interface {
	// FetchPage returns the page with the given title.
	// Returns ENOTFOUND if the page does not exist.
	FetchPage(ctx context.Context, title string) (*Page, error)
}
