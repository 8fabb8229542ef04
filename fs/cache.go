package fs

import (
	"context"
	"path/filepath"
	"strconv"

	"github.com/fwojciec/wenku"
)

// Ensure service implements interface.
var _ wenku.OCRCache = (*OCRCache)(nil)
var _ wenku.OCREngine = (*CachedEngine)(nil)

// OCRCache stores recognised pages as <dir>/<document_id>/<page>.json.
type OCRCache struct {
	dir string
}

// NewOCRCache returns a cache rooted at dir.
func NewOCRCache(dir string) *OCRCache {
	return &OCRCache{dir: dir}
}

func (c *OCRCache) pagePath(documentID string, page int) string {
	return filepath.Join(c.dir, documentID, strconv.Itoa(page)+".json")
}

// FindPage returns the cached page.
// Returns ENOTFOUND if the page has not been recognised yet.
func (c *OCRCache) FindPage(ctx context.Context, documentID string, page int) (*wenku.OCRPage, error) {
	var p wenku.OCRPage
	if err := readJSON(c.pagePath(documentID, page), &p); err != nil {
		if wenku.ErrorCode(err) == wenku.ENOTFOUND {
			return nil, wenku.Errorf(wenku.ENOTFOUND, "page %d of %s not in OCR cache", page, documentID)
		}
		return nil, err
	}
	return &p, nil
}

// SavePage stores a recognised page, replacing any previous entry.
func (c *OCRCache) SavePage(ctx context.Context, documentID string, page int, p *wenku.OCRPage) error {
	if documentID == "" {
		return wenku.Errorf(wenku.EINVALID, "document ID required")
	}
	if p.Results == nil {
		p = &wenku.OCRPage{Results: []wenku.OCRResult{}, Dimensions: p.Dimensions}
	}
	return writeJSON(c.pagePath(documentID, page), p)
}

// CachedEngine recognises pages through a cache. A cached page is returned
// as is, whatever the parameters; a miss is recognised and stored.
type CachedEngine struct {
	cache  wenku.OCRCache
	engine wenku.OCREngine
}

// NewCachedEngine wraps engine with cache.
func NewCachedEngine(cache wenku.OCRCache, engine wenku.OCREngine) *CachedEngine {
	return &CachedEngine{cache: cache, engine: engine}
}

func (e *CachedEngine) Recognize(ctx context.Context, src wenku.PageSource, params wenku.OCRParams) (*wenku.OCRPage, error) {
	p, err := e.cache.FindPage(ctx, src.DocumentID, src.Page)
	if err == nil {
		return p, nil
	}
	if wenku.ErrorCode(err) != wenku.ENOTFOUND {
		return nil, err
	}

	p, err = e.engine.Recognize(ctx, src, params)
	if err != nil {
		return nil, err
	}
	if err := e.cache.SavePage(ctx, src.DocumentID, src.Page, p); err != nil {
		return nil, err
	}
	return p, nil
}
