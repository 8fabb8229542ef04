package build

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/wenku"
)

// DefaultRetryDelays returns the backoff delays for recognition retries:
// 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// recognizeWithRetry runs engine with one attempt per delay plus one.
// Application errors (invalid input, missing files) are not retried. The
// engine call itself never sees cancellation, so a started page completes;
// ctx only cuts the waits between attempts short.
func recognizeWithRetry(ctx context.Context, engine wenku.OCREngine, src wenku.PageSource, params wenku.OCRParams, delays []time.Duration, logger *slog.Logger) (*wenku.OCRPage, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		page, err := engine.Recognize(context.WithoutCancel(ctx), src, params)
		if err == nil {
			return page, nil
		}
		lastErr = err

		if attempt >= maxAttempts-1 || !transient(err) {
			break
		}

		logger.Warn("retry recognize", "document", src.DocumentID, "page", src.Page, "attempt", attempt+2, "err", err)

		select {
		case <-ctx.Done():
			return nil, lastErr
		case <-time.After(delays[attempt]):
		}
	}
	return nil, lastErr
}

func transient(err error) bool {
	switch wenku.ErrorCode(err) {
	case wenku.EINVALID, wenku.ENOTFOUND:
		return false
	}
	return true
}
