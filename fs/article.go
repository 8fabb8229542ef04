package fs

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/fwojciec/wenku"
)

// Ensure ArticleStore implements the persistence interfaces.
var (
	_ wenku.ArticleWriter      = (*ArticleStore)(nil)
	_ wenku.ArticleWalker      = (*ArticleStore)(nil)
	_ wenku.DocumentInfoWriter = (*ArticleStore)(nil)
)

// ArticleStore persists parsed articles under
// <dir>/<doc[:3]>/<doc>/<id[:3]>/<id>.json with the tag list in a sibling
// .tag file and the document metadata in <dir>/<doc[:3]>/<doc>/<doc>.bookinfo.
type ArticleStore struct {
	dir string
}

// NewArticleStore returns a store rooted at dir.
func NewArticleStore(dir string) *ArticleStore {
	return &ArticleStore{dir: dir}
}

func shard(id string) string {
	return id[:min(3, len(id))]
}

func (s *ArticleStore) documentDir(documentID string) string {
	return filepath.Join(s.dir, shard(documentID), documentID)
}

// ArticlePath returns the path of an article file without its extension.
func (s *ArticleStore) ArticlePath(documentID, articleID string) string {
	return filepath.Join(s.documentDir(documentID), shard(articleID), articleID)
}

// WriteArticle writes the article and its tags, replacing earlier versions.
func (s *ArticleStore) WriteArticle(ctx context.Context, rec *wenku.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	base := s.ArticlePath(rec.DocumentID, rec.ArticleID)
	if err := writeJSON(base+".json", rec.Article); err != nil {
		return err
	}
	tags := rec.Tags
	if tags == nil {
		tags = []wenku.Tag{}
	}
	return writeJSON(base+".tag", tags)
}

// WriteTags replaces the tag file of a persisted article.
func (s *ArticleStore) WriteTags(ctx context.Context, documentID, articleID string, tags []wenku.Tag) error {
	if tags == nil {
		tags = []wenku.Tag{}
	}
	return writeJSON(s.ArticlePath(documentID, articleID)+".tag", tags)
}

// WriteDocumentInfo writes the sidecar of a resource: the entity for books,
// the whole record for music and galleries.
func (s *ArticleStore) WriteDocumentInfo(ctx context.Context, r *wenku.Resource) error {
	base := filepath.Join(s.documentDir(r.ID), r.ID)
	switch r.Kind() {
	case wenku.ResourceMusic:
		return writeJSON(base+".musicinfo", r)
	case wenku.ResourceGallery:
		return writeJSON(base+".galleryinfo", r)
	default:
		entity := r.Entity
		if entity == nil {
			entity = map[string]any{}
		}
		return writeJSON(base+".bookinfo", entity)
	}
}

// WalkArticles calls fn for every persisted article in lexical path order.
// Tags are read from the .tag file when present.
func (s *ArticleStore) WalkArticles(ctx context.Context, fn func(rec *wenku.Record) error) error {
	return filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path == s.dir {
				return nil
			}
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".json") || strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(s.dir, path)
		if err != nil {
			return err
		}
		segments := strings.Split(filepath.ToSlash(rel), "/")
		if len(segments) != 4 {
			return nil
		}

		rec := &wenku.Record{
			DocumentID: segments[1],
			ArticleID:  strings.TrimSuffix(segments[3], ".json"),
			Article:    &wenku.Article{},
		}
		if err := readJSON(path, rec.Article); err != nil {
			return err
		}
		tagPath := strings.TrimSuffix(path, ".json") + ".tag"
		if err := readJSON(tagPath, &rec.Tags); err != nil && wenku.ErrorCode(err) != wenku.ENOTFOUND {
			return err
		}
		return fn(rec)
	})
}
