package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/wenku"
)

// Ensure LoggingArticleWriter implements wenku.ArticleWriter.
var _ wenku.ArticleWriter = (*LoggingArticleWriter)(nil)

// LoggingArticleWriter wraps an ArticleWriter with debug logging.
type LoggingArticleWriter struct {
	next   wenku.ArticleWriter
	logger *slog.Logger
}

// NewLoggingArticleWriter creates a new LoggingArticleWriter.
func NewLoggingArticleWriter(next wenku.ArticleWriter, logger *slog.Logger) *LoggingArticleWriter {
	return &LoggingArticleWriter{next: next, logger: logger}
}

// WriteArticle delegates to the wrapped writer and logs the operation.
func (w *LoggingArticleWriter) WriteArticle(ctx context.Context, rec *wenku.Record) (err error) {
	defer func(begin time.Time) {
		w.logger.Debug("write article",
			"document", rec.DocumentID,
			"article", rec.ArticleID,
			"tags", len(rec.Tags),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.WriteArticle(ctx, rec)
}
