// Package trafilatura extracts article text and metadata from archived web
// pages with go-trafilatura.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/wenku"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements wenku.Extractor at compile time.
var _ wenku.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura. Comments below the article are dropped.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the main content of rawHTML with its title, authors and
// publication date.
func (e *Extractor) Extract(rawHTML string) (*wenku.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, wenku.Errorf(wenku.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
	})
	if err != nil {
		return nil, wenku.Errorf(wenku.EINVALID, "extract: %s", err)
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	out := &wenku.ExtractResult{
		Title:       result.Metadata.Title,
		Authors:     splitAuthors(result.Metadata.Author),
		ContentHTML: contentHTML,
	}
	if !result.Metadata.Date.IsZero() {
		out.Date = result.Metadata.Date.Format("2006年1月2日")
	}
	return out, nil
}

// splitAuthors splits trafilatura's joined author string.
func splitAuthors(s string) []string {
	var authors []string
	for _, a := range strings.FieldsFunc(s, func(r rune) bool { return r == ';' || r == '；' || r == '、' }) {
		if a = strings.TrimSpace(a); a != "" {
			authors = append(authors, a)
		}
	}
	return authors
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
