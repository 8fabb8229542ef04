package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/wenku"
	"github.com/fwojciec/wenku/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func newLoader(t *testing.T, dir string) *fs.ConfigLoader {
	t.Helper()
	l, err := fs.NewConfigLoader(dir)
	require.NoError(t, err)
	return l
}

const bookRecord = `{
	"id": "book-1",
	"parser_id": "automation",
	"path": "book-1.pdf",
	"entity": {"name": "选集"},
	"parser_option": {
		"type": "pdf",
		"ocr": {"line_merge_threshold": 20},
		"ocr_exceptions": {"3": {"auto_vsplit": false}},
		"articles": [
			{"title": "第一篇", "authors": ["甲"], "dates": [{"year": 1966, "month": 5}], "page_start": 1, "page_end": 3}
		]
	}
}`

func TestConfigLoader_LoadResources(t *testing.T) {
	t.Parallel()

	t.Run("loads records in file name order", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "b.json"), bookRecord)
		writeFile(t, filepath.Join(dir, "a.json"), `{"id": "song", "resource_type": "music"}`)
		writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")

		resources, err := newLoader(t, dir).LoadResources(context.Background())

		require.NoError(t, err)
		require.Len(t, resources, 2)
		assert.Equal(t, "song", resources[0].ID)
		assert.Equal(t, wenku.ResourceMusic, resources[0].Kind())

		book := resources[1]
		assert.Equal(t, "book-1", book.ID)
		assert.Equal(t, wenku.SourcePDF, book.Options.Type)
		assert.InDelta(t, 20.0, *book.Options.OCR.LineMergeThreshold, 1e-9)
		assert.False(t, *book.Options.OCRExceptions["3"].AutoVSplit)
		require.Len(t, book.Options.Articles, 1)
		assert.Equal(t, []wenku.Date{{Year: 1966, Month: 5}}, book.Options.Articles[0].Dates)
		assert.Equal(t, "选集", book.Entity["name"])
	})

	t.Run("rejects unknown fields naming the file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "bad.json"), `{"id": "x", "parser_id": "automation", "colour": "red"}`)

		_, err := newLoader(t, dir).LoadResources(context.Background())

		require.Error(t, err)
		assert.Equal(t, wenku.EINVALID, wenku.ErrorCode(err))
		assert.Contains(t, wenku.ErrorMessage(err), "bad.json")
	})

	t.Run("rejects wrongly typed fields", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "bad.json"), `{"id": "x", "parser_id": "automation", "parser_option": {"articles": [{"title": "t", "page_start": "one", "page_end": 2}]}}`)

		_, err := newLoader(t, dir).LoadResources(context.Background())

		assert.Equal(t, wenku.EINVALID, wenku.ErrorCode(err))
	})

	t.Run("rejects records failing semantic checks", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "bad.json"), `{"id": "x"}`)

		_, err := newLoader(t, dir).LoadResources(context.Background())

		assert.Equal(t, wenku.EINVALID, wenku.ErrorCode(err))
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "bad.json"), `{"id":`)

		_, err := newLoader(t, dir).LoadResources(context.Background())

		assert.Equal(t, wenku.EINVALID, wenku.ErrorCode(err))
	})

	t.Run("rejects duplicate IDs", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "a.json"), bookRecord)
		writeFile(t, filepath.Join(dir, "b.json"), bookRecord)

		_, err := newLoader(t, dir).LoadResources(context.Background())

		assert.Equal(t, wenku.ECONFLICT, wenku.ErrorCode(err))
	})

	t.Run("returns not found for a missing directory", func(t *testing.T) {
		t.Parallel()

		_, err := newLoader(t, filepath.Join(t.TempDir(), "missing")).LoadResources(context.Background())

		assert.Equal(t, wenku.ENOTFOUND, wenku.ErrorCode(err))
	})
}

func TestConfigLoader_FindResource(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.json"), bookRecord)
	l := newLoader(t, dir)

	r, err := l.FindResource(context.Background(), "book-1")
	require.NoError(t, err)
	assert.Equal(t, "automation", r.ParserID)

	_, err = l.FindResource(context.Background(), "other")
	assert.Equal(t, wenku.ENOTFOUND, wenku.ErrorCode(err))
}

func TestConfigLoader_CreateResource(t *testing.T) {
	t.Parallel()

	t.Run("writes a record the loader accepts", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		l := newLoader(t, dir)
		r := &wenku.Resource{ID: "new", ParserID: "automation", Path: "new.pdf", Options: wenku.ParserOptions{Type: wenku.SourcePDF}}

		require.NoError(t, l.CreateResource(context.Background(), r))

		got, err := l.FindResource(context.Background(), "new")
		require.NoError(t, err)
		assert.Equal(t, "new.pdf", got.Path)
	})

	t.Run("refuses to overwrite", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		l := newLoader(t, dir)
		r := &wenku.Resource{ID: "new", ParserID: "automation"}
		require.NoError(t, l.CreateResource(context.Background(), r))

		err := l.CreateResource(context.Background(), r)

		assert.Equal(t, wenku.ECONFLICT, wenku.ErrorCode(err))
	})
}
