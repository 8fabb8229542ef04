// Package goquery parses archived HTML pages into articles with CSS
// selectors, using github.com/PuerkitoBio/goquery.
package goquery

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/wenku"
)

// ParserID is the registry id of the selector parser.
const ParserID = "selector"

// Ensure Parser implements wenku.Parser.
var _ wenku.Parser = (*Parser)(nil)

// Parser extracts articles from an HTML file, or from every .html/.htm file
// of a directory in name order. Selectors come from the resource; without
// them a preset is detected from each page.
type Parser struct {
	presets *Presets
}

// NewParser returns a selector parser using presets when a resource
// configures no selectors.
func NewParser(presets *Presets) *Parser {
	return &Parser{presets: presets}
}

// Parse returns the articles of every page under src.Path.
func (p *Parser) Parse(ctx context.Context, src *wenku.Source) ([]*wenku.Article, error) {
	files, err := HTMLFiles(src.Path)
	if err != nil {
		return nil, err
	}

	var articles []*wenku.Article
	for _, name := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(name)
		if err != nil {
			return nil, err
		}
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(data)))
		if err != nil {
			return nil, wenku.Errorf(wenku.EINVALID, "%s: failed to parse HTML: %v", filepath.Base(name), err)
		}

		sel := src.Resource.Options.Selectors
		if sel == nil {
			sel = p.presets.Detect(doc)
		}
		found, err := Extract(doc, sel)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(name), err)
		}
		articles = append(articles, found...)
	}
	return articles, nil
}

// Extract returns one article per element matching sel.Article, or a single
// article for the whole document when sel.Article is empty. Containers
// without a title are skipped.
func Extract(doc *goquery.Document, sel *wenku.Selectors) ([]*wenku.Article, error) {
	if sel.Title == "" || sel.Paragraphs == "" {
		return nil, wenku.Errorf(wenku.EINVALID, "title and paragraph selectors required")
	}

	containers := doc.Selection
	if sel.Article != "" {
		containers = doc.Find(sel.Article)
	}

	var articles []*wenku.Article
	containers.Each(func(_ int, c *goquery.Selection) {
		title := cleanText(c.Find(sel.Title).First().Text())
		if title == "" {
			return
		}
		cfg := &wenku.ArticleConfig{Title: title, Authors: []string{}}
		if sel.Authors != "" {
			c.Find(sel.Authors).Each(func(_ int, s *goquery.Selection) {
				cfg.Authors = append(cfg.Authors, splitNames(s.Text())...)
			})
		}
		if sel.Date != "" {
			dates := wenku.ExtractDates(c.Find(sel.Date).First().Text())
			cfg.Dates = dates.Dates
			cfg.IsRangeDate = dates.IsRangeDate
		}

		var parts []wenku.ContentPart
		c.Find(sel.Paragraphs).Each(func(_ int, s *goquery.Selection) {
			text := cleanText(s.Text())
			if text == "" || text == title {
				return
			}
			typ := wenku.ContentParagraph
			if isHeading(s) {
				typ = wenku.ContentTitle
			}
			parts = append(parts, wenku.ContentPart{Type: typ, Text: text})
		})
		articles = append(articles, wenku.NewArticle(cfg, parts))
	})
	return articles, nil
}

// HTMLFiles returns path itself when it is a file, otherwise the .html and
// .htm files of the directory sorted by name.
func HTMLFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, wenku.Errorf(wenku.ENOTFOUND, "source %s not found", path)
		}
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if !e.IsDir() && (ext == ".html" || ext == ".htm") {
			files = append(files, filepath.Join(path, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

func isHeading(s *goquery.Selection) bool {
	switch goquery.NodeName(s) {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return true
	}
	return false
}

// cleanText collapses whitespace. Ideographic spaces used for indentation
// are dropped with the rest.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// splitNames splits a byline on whitespace and enumeration commas.
func splitNames(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == '、' || r == ',' || r == '，' || r == ' ' || r == '　' || r == '\n' || r == '\t'
	})
}
