package build_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/wenku"
	"github.com/fwojciec/wenku/build"
	"github.com/fwojciec/wenku/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func htmlSource(t *testing.T, files map[string]string, extractor string) *wenku.Source {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return &wenku.Source{
		Resource: &wenku.Resource{ID: "site", ParserID: build.HTMLParserID, Options: wenku.ParserOptions{Extractor: extractor}},
		Path:     dir,
	}
}

// passthrough treats the page itself as the Markdown content.
func passthrough(title, date string, authors ...string) (*mock.Extractor, *mock.Converter) {
	ex := &mock.Extractor{
		ExtractFn: func(html string) (*wenku.ExtractResult, error) {
			return &wenku.ExtractResult{Title: title, Authors: authors, Date: date, ContentHTML: html}, nil
		},
	}
	conv := &mock.Converter{
		ConvertFn: func(html string) (string, error) { return html, nil },
	}
	return ex, conv
}

func TestHTMLParser_Parse(t *testing.T) {
	t.Parallel()

	t.Run("builds an article per page", func(t *testing.T) {
		t.Parallel()

		ex, conv := passthrough("关于调查工作", "1930年5月", "甲")
		p := &build.HTMLParser{
			Extractors: map[string]wenku.Extractor{"trafilatura": ex},
			Default:    "trafilatura",
			Converter:  conv,
		}
		src := htmlSource(t, map[string]string{
			"a.html": "# 关于调查工作\n\n没有调查，没有发言权。〔1〕\n\n## 一\n\n调查就是解决问题。",
			"b.txt":  "ignored",
		}, "")

		articles, err := p.Parse(context.Background(), src)

		require.NoError(t, err)
		require.Len(t, articles, 1)
		a := articles[0]
		assert.Equal(t, "关于调查工作", a.Title)
		assert.Equal(t, []string{"甲"}, a.Authors)
		assert.Equal(t, []wenku.Date{{Year: 1930, Month: 5}}, a.Dates)
		assert.Equal(t, []wenku.ContentPart{
			{Type: wenku.ContentParagraph, Text: "没有调查，没有发言权。"},
			{Type: wenku.ContentTitle, Text: "一"},
			{Type: wenku.ContentParagraph, Text: "调查就是解决问题。"},
		}, a.Parts)
		require.Len(t, a.CommentPivots, 1)
		assert.Equal(t, 0, a.CommentPivots[0].PartIdx)
	})

	t.Run("title falls back to the first heading", func(t *testing.T) {
		t.Parallel()

		ex, conv := passthrough("", "")
		p := &build.HTMLParser{Extractors: map[string]wenku.Extractor{"readability": ex}, Converter: conv}
		src := htmlSource(t, map[string]string{"a.html": "# 反对本本主义\n\n正文"}, "readability")

		articles, err := p.Parse(context.Background(), src)

		require.NoError(t, err)
		require.Len(t, articles, 1)
		assert.Equal(t, "反对本本主义", articles[0].Title)
		assert.Equal(t, []wenku.ContentPart{{Type: wenku.ContentParagraph, Text: "正文"}}, articles[0].Parts)
		assert.Equal(t, []string{}, articles[0].Authors)
	})

	t.Run("page without title is invalid", func(t *testing.T) {
		t.Parallel()

		ex, conv := passthrough("", "")
		p := &build.HTMLParser{Extractors: map[string]wenku.Extractor{"x": ex}, Default: "x", Converter: conv}
		src := htmlSource(t, map[string]string{"a.html": "只有正文"}, "")

		_, err := p.Parse(context.Background(), src)

		assert.Equal(t, wenku.EINVALID, wenku.ErrorCode(err))
		assert.ErrorContains(t, err, "a.html")
	})

	t.Run("unknown extractor is invalid", func(t *testing.T) {
		t.Parallel()

		p := &build.HTMLParser{Extractors: map[string]wenku.Extractor{}}
		src := htmlSource(t, nil, "goose")

		_, err := p.Parse(context.Background(), src)

		assert.Equal(t, wenku.EINVALID, wenku.ErrorCode(err))
	})

	t.Run("extractor errors name the file", func(t *testing.T) {
		t.Parallel()

		ex := &mock.Extractor{
			ExtractFn: func(string) (*wenku.ExtractResult, error) { return nil, errors.New("no content") },
		}
		p := &build.HTMLParser{Extractors: map[string]wenku.Extractor{"x": ex}, Default: "x"}
		src := htmlSource(t, map[string]string{"page.htm": "<p></p>"}, "")

		_, err := p.Parse(context.Background(), src)

		assert.ErrorContains(t, err, "page.htm")
		assert.ErrorContains(t, err, "no content")
	})

	t.Run("missing source is not found", func(t *testing.T) {
		t.Parallel()

		ex, conv := passthrough("t", "")
		p := &build.HTMLParser{Extractors: map[string]wenku.Extractor{"x": ex}, Default: "x", Converter: conv}
		src := &wenku.Source{Resource: &wenku.Resource{ID: "site"}, Path: filepath.Join(t.TempDir(), "nope")}

		_, err := p.Parse(context.Background(), src)

		assert.Equal(t, wenku.ENOTFOUND, wenku.ErrorCode(err))
	})
}
