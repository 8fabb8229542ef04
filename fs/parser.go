package fs

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/fwojciec/wenku"
)

// Parser ids of the file-based parsers.
const (
	ResultJSONParserID = "result-json"
	RecordDirParserID  = "record-dir"
	TextParserID       = "text"
)

// Ensure parsers implement wenku.Parser.
var (
	_ wenku.Parser = (*ResultJSONParser)(nil)
	_ wenku.Parser = (*RecordDirParser)(nil)
	_ wenku.Parser = (*TextParser)(nil)
)

// ResultJSONParser reads a file holding a JSON list of already parsed
// articles.
type ResultJSONParser struct{}

// Parse returns the articles of the file at src.Path.
func (p *ResultJSONParser) Parse(ctx context.Context, src *wenku.Source) ([]*wenku.Article, error) {
	var list []*wenku.Article
	if err := readJSON(src.Path, &list); err != nil {
		return nil, err
	}
	articles := make([]*wenku.Article, 0, len(list))
	for i, a := range list {
		if a == nil {
			return nil, wenku.Errorf(wenku.EINVALID, "%s: article %d is null", filepath.Base(src.Path), i)
		}
		a = a.Clone()
		if err := a.Validate(); err != nil {
			return nil, fmt.Errorf("%s: article %d: %w", filepath.Base(src.Path), i, err)
		}
		articles = append(articles, a)
	}
	return articles, nil
}

// record is one file of a record directory.
type record struct {
	Title   string              `json:"title"`
	Authors []string            `json:"authors"`
	Creator []string            `json:"creator"`
	Date    string              `json:"date"`
	Dates   []wenku.Date        `json:"dates"`
	Text    string              `json:"text"`
	Parts   []wenku.ContentPart `json:"parts"`
}

// RecordDirParser reads a directory tree of JSON records, one article per
// file, visited in lexical path order.
type RecordDirParser struct{}

// Parse returns one article per *.json file under src.Path.
func (p *RecordDirParser) Parse(ctx context.Context, src *wenku.Source) ([]*wenku.Article, error) {
	var files []string
	err := filepath.WalkDir(src.Path, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".json") {
			files = append(files, path)
		}
		return nil
	})
	if os.IsNotExist(err) {
		return nil, wenku.Errorf(wenku.ENOTFOUND, "source %s not found", src.Path)
	} else if err != nil {
		return nil, err
	}
	sort.Strings(files)

	articles := make([]*wenku.Article, 0, len(files))
	for _, name := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var r record
		if err := readJSON(name, &r); err != nil {
			return nil, err
		}
		a, err := r.article()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		articles = append(articles, a)
	}
	return articles, nil
}

func (r *record) article() (*wenku.Article, error) {
	cfg := &wenku.ArticleConfig{Title: strings.TrimSpace(r.Title), Authors: r.Authors, Dates: r.Dates}
	if cfg.Authors == nil {
		cfg.Authors = r.Creator
	}
	if len(cfg.Dates) == 0 && r.Date != "" {
		dates := parseDateLine(r.Date)
		cfg.Dates, cfg.IsRangeDate = dates.Dates, dates.IsRangeDate
	}

	parts := r.Parts
	if parts == nil {
		parts = paragraphs(strings.Split(r.Text, "\n"))
	}
	a := wenku.NewArticle(cfg, parts)
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// TextParser reads plain text articles: the title on line 1, authors
// separated by ideographic spaces on line 2, the date on line 3 and one
// paragraph per remaining non-blank line. A directory is read file by file
// in name order.
type TextParser struct{}

// Parse returns one article per .txt file at src.Path.
func (p *TextParser) Parse(ctx context.Context, src *wenku.Source) ([]*wenku.Article, error) {
	info, err := os.Stat(src.Path)
	if os.IsNotExist(err) {
		return nil, wenku.Errorf(wenku.ENOTFOUND, "source %s not found", src.Path)
	} else if err != nil {
		return nil, err
	}

	files := []string{src.Path}
	if info.IsDir() {
		if files, err = filepath.Glob(filepath.Join(src.Path, "*.txt")); err != nil {
			return nil, err
		}
		sort.Strings(files)
	}

	articles := make([]*wenku.Article, 0, len(files))
	for _, name := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		a, err := parseTextFile(name)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(name), err)
		}
		articles = append(articles, a)
	}
	return articles, nil
}

func parseTextFile(name string) (*wenku.Article, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	s := bufio.NewScanner(f)
	s.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for s.Scan() {
		lines = append(lines, strings.TrimRight(s.Text(), "\r"))
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	if len(lines) < 3 {
		return nil, wenku.Errorf(wenku.EINVALID, "expected title, authors and date lines, got %d lines", len(lines))
	}

	dates := parseDateLine(lines[2])
	cfg := &wenku.ArticleConfig{
		Title:       strings.TrimSpace(strings.TrimPrefix(lines[0], "\ufeff")),
		Authors:     strings.FieldsFunc(lines[1], func(r rune) bool { return r == '　' || r == ' ' }),
		Dates:       dates.Dates,
		IsRangeDate: dates.IsRangeDate,
	}
	a := wenku.NewArticle(cfg, paragraphs(lines[3:]))
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

func paragraphs(lines []string) []wenku.ContentPart {
	parts := []wenku.ContentPart{}
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			parts = append(parts, wenku.ContentPart{Type: wenku.ContentParagraph, Text: l})
		}
	}
	return parts
}

var isoDate = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)

// parseDateLine reads an ISO date, or any form ExtractDates understands.
func parseDateLine(s string) wenku.DateList {
	s = strings.TrimSpace(s)
	if m := isoDate.FindStringSubmatch(s); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		return wenku.DateList{Dates: []wenku.Date{{Year: year, Month: month, Day: day}}}
	}
	return wenku.ExtractDates(s)
}
