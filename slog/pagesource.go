// Package slog decorates the I/O collaborators with structured logging.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/freitagsfoo"
)

// Ensure LoggingPageSource implements freitagsfoo.PageSource.
var _ freitagsfoo.PageSource = (*LoggingPageSource)(nil)

// LoggingPageSource wraps a PageSource with logging.
type LoggingPageSource struct {
	next   freitagsfoo.PageSource
	logger *slog.Logger
}

// NewLoggingPageSource creates a new LoggingPageSource.
func NewLoggingPageSource(next freitagsfoo.PageSource, logger *slog.Logger) *LoggingPageSource {
	return &LoggingPageSource{next: next, logger: logger}
}

// FetchPage delegates to the wrapped source and logs the operation.
func (s *LoggingPageSource) FetchPage(ctx context.Context, title string) (page *freitagsfoo.Page, err error) {
	defer func(begin time.Time) {
		var size int
		if page != nil {
			size = len(page.Text)
		}
		s.logger.Info("fetch page",
			"title", title,
			"bytes", size,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FetchPage(ctx, title)
}
