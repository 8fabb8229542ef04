// Package readability extracts article text from archived web pages with
// go-readability. It is the fallback for pages go-trafilatura mangles.
package readability

import (
	"strings"

	"github.com/fwojciec/wenku"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements wenku.Extractor at compile time.
var _ wenku.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the main content of rawHTML with its title, byline and
// publication date.
func (e *Extractor) Extract(rawHTML string) (*wenku.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, wenku.Errorf(wenku.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, wenku.Errorf(wenku.EINVALID, "extract: %s", err)
	}

	result := &wenku.ExtractResult{
		Title:       strings.TrimSpace(article.Title),
		ContentHTML: article.Content,
	}
	if byline := strings.TrimSpace(article.Byline); byline != "" {
		result.Authors = strings.Fields(byline)
	}
	if article.PublishedTime != nil {
		result.Date = article.PublishedTime.Format("2006年1月2日")
	}
	return result, nil
}
