package mock

import (
	"context"

	"github.com/fwojciec/wenku"
)

var (
	_ wenku.ArticleWriter      = (*ArticleWriter)(nil)
	_ wenku.ArticleService     = (*ArticleService)(nil)
	_ wenku.ArticleWalker      = (*ArticleWalker)(nil)
	_ wenku.DocumentInfoWriter = (*DocumentInfoWriter)(nil)
	_ wenku.TagWriter          = (*TagWriter)(nil)
)

// ArticleWriter is a mock implementation of wenku.ArticleWriter.
type ArticleWriter struct {
	WriteArticleFn func(ctx context.Context, rec *wenku.Record) error
}

func (w *ArticleWriter) WriteArticle(ctx context.Context, rec *wenku.Record) error {
	return w.WriteArticleFn(ctx, rec)
}

// ArticleService is a mock implementation of wenku.ArticleService.
type ArticleService struct {
	WriteArticleFn             func(ctx context.Context, rec *wenku.Record) error
	FindArticleByIDFn          func(ctx context.Context, id string) (*wenku.Record, error)
	FindArticlesFn             func(ctx context.Context, filter wenku.ArticleFilter) ([]*wenku.Record, error)
	DeleteArticlesByDocumentFn func(ctx context.Context, documentID string) error
}

func (s *ArticleService) WriteArticle(ctx context.Context, rec *wenku.Record) error {
	return s.WriteArticleFn(ctx, rec)
}

func (s *ArticleService) FindArticleByID(ctx context.Context, id string) (*wenku.Record, error) {
	return s.FindArticleByIDFn(ctx, id)
}

func (s *ArticleService) FindArticles(ctx context.Context, filter wenku.ArticleFilter) ([]*wenku.Record, error) {
	return s.FindArticlesFn(ctx, filter)
}

func (s *ArticleService) DeleteArticlesByDocument(ctx context.Context, documentID string) error {
	return s.DeleteArticlesByDocumentFn(ctx, documentID)
}

// ArticleWalker is a mock implementation of wenku.ArticleWalker.
type ArticleWalker struct {
	WalkArticlesFn func(ctx context.Context, fn func(rec *wenku.Record) error) error
}

func (w *ArticleWalker) WalkArticles(ctx context.Context, fn func(rec *wenku.Record) error) error {
	return w.WalkArticlesFn(ctx, fn)
}

// DocumentInfoWriter is a mock implementation of wenku.DocumentInfoWriter.
type DocumentInfoWriter struct {
	WriteDocumentInfoFn func(ctx context.Context, r *wenku.Resource) error
}

func (w *DocumentInfoWriter) WriteDocumentInfo(ctx context.Context, r *wenku.Resource) error {
	return w.WriteDocumentInfoFn(ctx, r)
}

// TagWriter is a mock implementation of wenku.TagWriter.
type TagWriter struct {
	WriteTagsFn func(ctx context.Context, documentID, articleID string, tags []wenku.Tag) error
}

func (w *TagWriter) WriteTags(ctx context.Context, documentID, articleID string, tags []wenku.Tag) error {
	return w.WriteTagsFn(ctx, documentID, articleID, tags)
}
