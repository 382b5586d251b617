package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/freitagsfoo"
)

// Ensure LoggingRenderer implements freitagsfoo.Renderer.
var _ freitagsfoo.Renderer = (*LoggingRenderer)(nil)

// LoggingRenderer wraps a Renderer with debug logging. Rendering runs once
// per talk, so successful calls are only visible at debug level.
type LoggingRenderer struct {
	next   freitagsfoo.Renderer
	logger *slog.Logger
}

// NewLoggingRenderer creates a new LoggingRenderer.
func NewLoggingRenderer(next freitagsfoo.Renderer, logger *slog.Logger) *LoggingRenderer {
	return &LoggingRenderer{next: next, logger: logger}
}

// Render delegates to the wrapped renderer and logs the operation.
func (r *LoggingRenderer) Render(ctx context.Context, wikitext string) (text string, err error) {
	defer func(begin time.Time) {
		level := slog.LevelDebug
		if err != nil {
			level = slog.LevelError
		}
		r.logger.Log(ctx, level, "render",
			"bytes_in", len(wikitext),
			"bytes_out", len(text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.Render(ctx, wikitext)
}
