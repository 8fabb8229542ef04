package fs_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/fwojciec/wenku"
	"github.com/fwojciec/wenku/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func source(path string) *wenku.Source {
	return &wenku.Source{Resource: &wenku.Resource{ID: "doc"}, Path: path}
}

func TestResultJSONParser_Parse(t *testing.T) {
	t.Parallel()

	t.Run("returns the stored articles with empty lists filled", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "result.json")
		writeFile(t, path, `[{"title":"标题","parts":[{"type":"paragraph","text":"正文"}],"dates":[{"year":1966}]}]`)

		got, err := (&fs.ResultJSONParser{}).Parse(context.Background(), source(path))

		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "标题", got[0].Title)
		assert.Equal(t, []wenku.Date{{Year: 1966}}, got[0].Dates)
		assert.Equal(t, []string{}, got[0].Authors)
		assert.Equal(t, []wenku.Pivot{}, got[0].CommentPivots)
	})

	t.Run("rejects articles without a title", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "result.json")
		writeFile(t, path, `[{"title":""}]`)

		_, err := (&fs.ResultJSONParser{}).Parse(context.Background(), source(path))

		assert.Equal(t, wenku.EINVALID, wenku.ErrorCode(err))
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := (&fs.ResultJSONParser{}).Parse(context.Background(), source(filepath.Join(t.TempDir(), "none.json")))

		assert.Equal(t, wenku.ENOTFOUND, wenku.ErrorCode(err))
	})
}

func TestRecordDirParser_Parse(t *testing.T) {
	t.Parallel()

	t.Run("reads nested records in path order", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "1967", "02.json"), `{"title":"乙","authors":["作者"],"date":"1967年2月3日","text":"第一段\n\n第二段〔1〕"}`)
		writeFile(t, filepath.Join(dir, "1967", "01.json"), `{"title":"甲","creator":["编者"],"dates":[{"year":1967,"month":1}],"parts":[{"type":"title","text":"小标题"}]}`)
		writeFile(t, filepath.Join(dir, "README.md"), `说明`)

		got, err := (&fs.RecordDirParser{}).Parse(context.Background(), source(dir))

		require.NoError(t, err)
		require.Len(t, got, 2)

		assert.Equal(t, "甲", got[0].Title)
		assert.Equal(t, []string{"编者"}, got[0].Authors)
		assert.Equal(t, []wenku.Date{{Year: 1967, Month: 1}}, got[0].Dates)
		assert.Equal(t, []wenku.ContentPart{{Type: wenku.ContentTitle, Text: "小标题"}}, got[0].Parts)

		assert.Equal(t, "乙", got[1].Title)
		assert.Equal(t, []wenku.Date{{Year: 1967, Month: 2, Day: 3}}, got[1].Dates)
		assert.Equal(t, []wenku.ContentPart{
			{Type: wenku.ContentParagraph, Text: "第一段"},
			{Type: wenku.ContentParagraph, Text: "第二段"},
		}, got[1].Parts)
		assert.Equal(t, []wenku.Pivot{{PartIdx: 1, Offset: 3, Index: 1}}, got[1].CommentPivots)
	})

	t.Run("malformed record", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "a.json"), `{`)

		_, err := (&fs.RecordDirParser{}).Parse(context.Background(), source(dir))

		assert.Equal(t, wenku.EINVALID, wenku.ErrorCode(err))
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()

		_, err := (&fs.RecordDirParser{}).Parse(context.Background(), source(filepath.Join(t.TempDir(), "none")))

		assert.Equal(t, wenku.ENOTFOUND, wenku.ErrorCode(err))
	})
}

func TestTextParser_Parse(t *testing.T) {
	t.Parallel()

	t.Run("reads header lines and paragraphs", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "a.txt")
		writeFile(t, path, "\ufeff社论\r\n本报评论员　特约评论员\r\n1966-06-01\r\n\r\n　　横扫一切牛鬼蛇神。\r\n\r\n第二段。\r\n")

		got, err := (&fs.TextParser{}).Parse(context.Background(), source(path))

		require.NoError(t, err)
		require.Len(t, got, 1)
		a := got[0]
		assert.Equal(t, "社论", a.Title)
		assert.Equal(t, []string{"本报评论员", "特约评论员"}, a.Authors)
		assert.Equal(t, []wenku.Date{{Year: 1966, Month: 6, Day: 1}}, a.Dates)
		assert.Equal(t, []wenku.ContentPart{
			{Type: wenku.ContentParagraph, Text: "横扫一切牛鬼蛇神。"},
			{Type: wenku.ContentParagraph, Text: "第二段。"},
		}, a.Parts)
	})

	t.Run("reads every text file of a directory", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "b.txt"), "乙\n\n一九六七年\n正文")
		writeFile(t, filepath.Join(dir, "a.txt"), "甲\n\n\n正文")

		got, err := (&fs.TextParser{}).Parse(context.Background(), source(dir))

		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "甲", got[0].Title)
		assert.Empty(t, got[0].Authors)
		assert.Equal(t, []wenku.Date{{Year: 1967}}, got[1].Dates)
	})

	t.Run("too few lines", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "a.txt")
		writeFile(t, path, "标题\n")

		_, err := (&fs.TextParser{}).Parse(context.Background(), source(path))

		assert.Equal(t, wenku.EINVALID, wenku.ErrorCode(err))
	})
}
