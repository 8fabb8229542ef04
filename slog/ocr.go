package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/wenku"
)

// Ensure LoggingOCREngine implements wenku.OCREngine.
var _ wenku.OCREngine = (*LoggingOCREngine)(nil)

// LoggingOCREngine wraps an OCREngine with logging.
type LoggingOCREngine struct {
	next   wenku.OCREngine
	logger *slog.Logger
}

// NewLoggingOCREngine creates a new LoggingOCREngine.
func NewLoggingOCREngine(next wenku.OCREngine, logger *slog.Logger) *LoggingOCREngine {
	return &LoggingOCREngine{next: next, logger: logger}
}

// Recognize delegates to the wrapped engine and logs the operation.
func (e *LoggingOCREngine) Recognize(ctx context.Context, src wenku.PageSource, params wenku.OCRParams) (page *wenku.OCRPage, err error) {
	defer func(begin time.Time) {
		fragments := 0
		if page != nil {
			fragments = len(page.Results)
		}
		e.logger.Info("recognize",
			"document", src.DocumentID,
			"page", src.Page,
			"fragments", fragments,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Recognize(ctx, src, params)
}
