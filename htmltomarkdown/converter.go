// Package htmltomarkdown turns extracted article HTML into Markdown blocks
// with html-to-markdown.
package htmltomarkdown

import (
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/wenku"
)

// Ensure Converter implements wenku.Converter at compile time.
var _ wenku.Converter = (*Converter)(nil)

// indentRe matches the ideographic spaces archived Chinese text uses to
// indent paragraphs.
var indentRe = regexp.MustCompile(`(?m)^[\x{3000}\x{00a0} ]+`)

// Converter wraps html-to-markdown to convert HTML to Markdown.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms HTML content into Markdown with paragraph indentation
// removed.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", wenku.Errorf(wenku.EINVALID, "empty HTML input")
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", err
	}
	return indentRe.ReplaceAllString(result, ""), nil
}

// Parts converts HTML to article parts: headings become titles and every
// other block a paragraph.
func (c *Converter) Parts(html string) ([]wenku.ContentPart, error) {
	md, err := c.Convert(html)
	if err != nil {
		return nil, err
	}
	return wenku.PartsFromMarkdown(md), nil
}
