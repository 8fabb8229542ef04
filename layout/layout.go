// Package layout implements the automation parser: it rebuilds articles
// from cached OCR pages using the configured article page ranges.
package layout

import (
	"context"
	"fmt"

	"github.com/fwojciec/wenku"
)

// ParserID is the registry id of the layout parser.
const ParserID = "automation"

// Ensure Parser implements wenku.Parser.
var _ wenku.Parser = (*Parser)(nil)

// Parser reconstructs the configured articles of a resource from the OCR
// cache. It never calls an engine; pages must be cached beforehand.
type Parser struct {
	Cache wenku.OCRCache
	// Defaults are the parameters below every configured override.
	Defaults wenku.OCRParams
}

// NewParser returns a parser reading pages from cache.
func NewParser(cache wenku.OCRCache) *Parser {
	return &Parser{Cache: cache, Defaults: wenku.DefaultOCRParams()}
}

// Parse returns one article per configured article, in configuration order.
func (p *Parser) Parse(ctx context.Context, src *wenku.Source) ([]*wenku.Article, error) {
	r := src.Resource
	if len(r.Options.Articles) == 0 {
		return nil, wenku.Errorf(wenku.EINVALID, "resource %s: no articles configured", r.ID)
	}

	articles := make([]*wenku.Article, 0, len(r.Options.Articles))
	for i := range r.Options.Articles {
		cfg := &r.Options.Articles[i]
		parts, err := p.parseArticle(ctx, r, cfg)
		if err != nil {
			return nil, fmt.Errorf("article %q: %w", cfg.Title, err)
		}
		articles = append(articles, wenku.NewArticle(cfg, parts))
	}
	return articles, nil
}

func (p *Parser) parseArticle(ctx context.Context, r *wenku.Resource, cfg *wenku.ArticleConfig) ([]wenku.ContentPart, error) {
	var raw []wenku.PartRaw
	for page := cfg.PageStart; page <= cfg.PageEnd; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ocr, err := p.Cache.FindPage(ctx, r.ID, page)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", page, err)
		}
		opts := r.Options.PageParams(p.Defaults, cfg, page).Layout()
		raw = append(raw, wenku.ReconstructPage(ocr, page, opts)...)
	}
	return wenku.MergeParts(raw), nil
}
