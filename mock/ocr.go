package mock

import (
	"context"

	"github.com/fwojciec/wenku"
)

var (
	_ wenku.OCREngine = (*OCREngine)(nil)
	_ wenku.OCRCache  = (*OCRCache)(nil)
)

// OCREngine is a mock implementation of wenku.OCREngine.
type OCREngine struct {
	RecognizeFn func(ctx context.Context, src wenku.PageSource, params wenku.OCRParams) (*wenku.OCRPage, error)
}

func (e *OCREngine) Recognize(ctx context.Context, src wenku.PageSource, params wenku.OCRParams) (*wenku.OCRPage, error) {
	return e.RecognizeFn(ctx, src, params)
}

// OCRCache is a mock implementation of wenku.OCRCache.
type OCRCache struct {
	FindPageFn func(ctx context.Context, documentID string, page int) (*wenku.OCRPage, error)
	SavePageFn func(ctx context.Context, documentID string, page int, p *wenku.OCRPage) error
}

func (c *OCRCache) FindPage(ctx context.Context, documentID string, page int) (*wenku.OCRPage, error) {
	return c.FindPageFn(ctx, documentID, page)
}

func (c *OCRCache) SavePage(ctx context.Context, documentID string, page int, p *wenku.OCRPage) error {
	return c.SavePageFn(ctx, documentID, page, p)
}
