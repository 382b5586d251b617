package mock

import (
	"context"

	"github.com/fwojciec/freitagsfoo"
)

var _ freitagsfoo.PageSource = (*PageSource)(nil)

// PageSource is a mock implementation of freitagsfoo.PageSource.
type PageSource struct {
	FetchPageFn func(ctx context.Context, title string) (*freitagsfoo.Page, error)
}

func (s *PageSource) FetchPage(ctx context.Context, title string) (*freitagsfoo.Page, error) {
	return s.FetchPageFn(ctx, title)
}
