package build

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/wenku"
	"github.com/fwojciec/wenku/goquery"
)

// HTMLParserID is the registry id of the HTML archive parser.
const HTMLParserID = "html"

// Ensure HTMLParser implements wenku.Parser.
var _ wenku.Parser = (*HTMLParser)(nil)

// HTMLParser turns archived pages into one article each: main content is
// extracted, converted to Markdown and split into parts, with headings as
// title parts.
type HTMLParser struct {
	// Extractors are selected by the resource's extractor option.
	Extractors map[string]wenku.Extractor
	// Default names the extractor used when a resource sets none.
	Default   string
	Converter wenku.Converter
}

// Parse returns an article per HTML page under src.Path.
func (p *HTMLParser) Parse(ctx context.Context, src *wenku.Source) ([]*wenku.Article, error) {
	name := src.Resource.Options.Extractor
	if name == "" {
		name = p.Default
	}
	extractor, ok := p.Extractors[name]
	if !ok {
		return nil, wenku.Errorf(wenku.EINVALID, "unknown extractor %q", name)
	}

	files, err := goquery.HTMLFiles(src.Path)
	if err != nil {
		return nil, err
	}

	var articles []*wenku.Article
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}
		a, err := p.article(extractor, string(data))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(file), err)
		}
		articles = append(articles, a)
	}
	return articles, nil
}

func (p *HTMLParser) article(extractor wenku.Extractor, html string) (*wenku.Article, error) {
	res, err := extractor.Extract(html)
	if err != nil {
		return nil, err
	}
	md, err := p.Converter.Convert(res.ContentHTML)
	if err != nil {
		return nil, err
	}
	parts := wenku.PartsFromMarkdown(md)

	title := res.Title
	if title == "" && len(parts) > 0 && parts[0].Type == wenku.ContentTitle {
		title = parts[0].Text
	}
	if title == "" {
		return nil, wenku.Errorf(wenku.EINVALID, "page has no title")
	}
	if len(parts) > 0 && parts[0].Type == wenku.ContentTitle && parts[0].Text == title {
		parts = parts[1:]
	}

	dates := wenku.ExtractDates(res.Date)
	cfg := &wenku.ArticleConfig{
		Title:       title,
		Authors:     res.Authors,
		Dates:       dates.Dates,
		IsRangeDate: dates.IsRangeDate,
	}
	return wenku.NewArticle(cfg, parts), nil
}
