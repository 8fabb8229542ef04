package build

import (
	"context"

	"github.com/fwojciec/wenku"
	"golang.org/x/time/rate"
)

// Ensure ThrottledEngine implements wenku.OCREngine.
var _ wenku.OCREngine = (*ThrottledEngine)(nil)

// ThrottledEngine caps how often the wrapped engine is started, for OCR
// services shared with other jobs. The bucket has a burst of 1.
type ThrottledEngine struct {
	next    wenku.OCREngine
	limiter *rate.Limiter
}

// NewThrottledEngine returns next limited to pps pages per second.
func NewThrottledEngine(next wenku.OCREngine, pps float64) *ThrottledEngine {
	return &ThrottledEngine{next: next, limiter: rate.NewLimiter(rate.Limit(pps), 1)}
}

// Recognize waits for a token, then delegates to the wrapped engine.
func (e *ThrottledEngine) Recognize(ctx context.Context, src wenku.PageSource, params wenku.OCRParams) (*wenku.OCRPage, error) {
	if err := e.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return e.next.Recognize(ctx, src, params)
}
