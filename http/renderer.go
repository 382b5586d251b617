package http

import (
	"context"
	"net/url"

	"github.com/fwojciec/freitagsfoo"
)

// Ensure HTMLRenderer implements freitagsfoo.HTMLRenderer at compile time.
var _ freitagsfoo.HTMLRenderer = (*HTMLRenderer)(nil)

// HTMLRenderer renders wikitext on the wiki with action=parse, so templates
// expand exactly as they do on the page.
type HTMLRenderer struct {
	client *Client
}

// NewHTMLRenderer creates a new HTMLRenderer.
func NewHTMLRenderer(client *Client) *HTMLRenderer {
	return &HTMLRenderer{client: client}
}

type parseResponse struct {
	Parse struct {
		Text string `json:"text"`
	} `json:"parse"`
}

// RenderHTML returns the HTML for a wikitext fragment.
func (r *HTMLRenderer) RenderHTML(ctx context.Context, wikitext string) (string, error) {
	params := url.Values{}
	params.Set("action", "parse")
	params.Set("text", wikitext)
	params.Set("contentmodel", "wikitext")
	params.Set("prop", "text")
	params.Set("disablelimitreport", "1")
	params.Set("disableeditsection", "1")

	var resp parseResponse
	if err := r.client.call(ctx, params, true, &resp); err != nil {
		return "", err
	}
	return resp.Parse.Text, nil
}
