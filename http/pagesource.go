package http

import (
	"context"
	"net/url"

	"github.com/fwojciec/freitagsfoo"
)

// Ensure PageSource implements freitagsfoo.PageSource at compile time.
var _ freitagsfoo.PageSource = (*PageSource)(nil)

// PageSource reads page wikitext through the revisions API.
type PageSource struct {
	client *Client
}

// NewPageSource creates a new PageSource.
func NewPageSource(client *Client) *PageSource {
	return &PageSource{client: client}
}

type revisionsResponse struct {
	Query struct {
		Pages []struct {
			Title     string `json:"title"`
			Missing   bool   `json:"missing"`
			Invalid   bool   `json:"invalid"`
			Revisions []struct {
				Slots struct {
					Main struct {
						Content string `json:"content"`
					} `json:"main"`
				} `json:"slots"`
			} `json:"revisions"`
		} `json:"pages"`
	} `json:"query"`
}

// FetchPage returns the current revision of the page. The top section is
// requested separately so the wiki decides where it ends.
func (s *PageSource) FetchPage(ctx context.Context, title string) (*freitagsfoo.Page, error) {
	text, err := s.content(ctx, title, "")
	if err != nil {
		return nil, err
	}
	top, err := s.content(ctx, title, "0")
	if err != nil {
		return nil, err
	}
	return &freitagsfoo.Page{
		Title:      title,
		Text:       text,
		TopSection: top,
	}, nil
}

func (s *PageSource) content(ctx context.Context, title, section string) (string, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("prop", "revisions")
	params.Set("rvprop", "content")
	params.Set("rvslots", "main")
	params.Set("titles", title)
	if section != "" {
		params.Set("rvsection", section)
	}

	var resp revisionsResponse
	if err := s.client.call(ctx, params, false, &resp); err != nil {
		return "", err
	}

	if len(resp.Query.Pages) == 0 {
		return "", freitagsfoo.Errorf(freitagsfoo.ENOTFOUND, "page %q not found", title)
	}
	page := resp.Query.Pages[0]
	if page.Invalid {
		return "", freitagsfoo.Errorf(freitagsfoo.EINVALID, "invalid page title %q", title)
	}
	if page.Missing || len(page.Revisions) == 0 {
		return "", freitagsfoo.Errorf(freitagsfoo.ENOTFOUND, "page %q not found", title)
	}
	return page.Revisions[0].Slots.Main.Content, nil
}
