package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/wenku"
	"github.com/fwojciec/wenku/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRecord(documentID, articleID, title string, tags ...wenku.Tag) *wenku.Record {
	if tags == nil {
		tags = []wenku.Tag{}
	}
	return &wenku.Record{
		DocumentID: documentID,
		ArticleID:  articleID,
		Article: &wenku.Article{
			Title:         title,
			Authors:       []string{"甲"},
			Dates:         []wenku.Date{{Year: 1967, Month: 1}},
			Parts:         []wenku.ContentPart{{Type: wenku.ContentParagraph, Text: "正文"}},
			Comments:      []string{},
			CommentPivots: []wenku.Pivot{},
		},
		Tags: tags,
	}
}

func TestArticleService_WriteArticle(t *testing.T) {
	t.Parallel()

	t.Run("stores the record with its tags", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewArticleService(db)
		ctx := context.Background()
		rec := newRecord("doc", "a1", "标题",
			wenku.Tag{Name: "甲", Type: wenku.TagCharacter},
			wenku.Tag{Name: "writings", Type: wenku.TagArticleType},
		)

		require.NoError(t, svc.WriteArticle(ctx, rec))

		got, err := svc.FindArticleByID(ctx, "a1")
		require.NoError(t, err)
		assert.Equal(t, rec, got)
	})

	t.Run("replaces an existing record", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewArticleService(db)
		ctx := context.Background()
		require.NoError(t, svc.WriteArticle(ctx, newRecord("doc", "a1", "旧", wenku.Tag{Name: "x", Type: wenku.TagSubject})))

		require.NoError(t, svc.WriteArticle(ctx, newRecord("doc", "a1", "新")))

		got, err := svc.FindArticleByID(ctx, "a1")
		require.NoError(t, err)
		assert.Equal(t, "新", got.Article.Title)
		assert.Empty(t, got.Tags)

		var count int
		require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM articles").Scan(&count))
		assert.Equal(t, 1, count)
	})

	t.Run("keeps the same article in different documents apart", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewArticleService(db)
		ctx := context.Background()
		require.NoError(t, svc.WriteArticle(ctx, newRecord("doc-b", "a1", "标题")))
		require.NoError(t, svc.WriteArticle(ctx, newRecord("doc-a", "a1", "标题")))

		got, err := svc.FindArticleByID(ctx, "a1")
		require.NoError(t, err)
		assert.Equal(t, "doc-a", got.DocumentID)

		all, err := svc.FindArticles(ctx, wenku.ArticleFilter{})
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("rejects invalid records", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewArticleService(db)

		err := svc.WriteArticle(context.Background(), &wenku.Record{DocumentID: "doc"})

		assert.Equal(t, wenku.EINVALID, wenku.ErrorCode(err))
	})
}

func TestArticleService_FindArticleByID(t *testing.T) {
	t.Parallel()

	t.Run("returns not found for unknown ID", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewArticleService(db)

		_, err := svc.FindArticleByID(context.Background(), "missing")

		assert.Equal(t, wenku.ENOTFOUND, wenku.ErrorCode(err))
	})
}

func TestArticleService_FindArticles(t *testing.T) {
	t.Parallel()

	seed := func(t *testing.T) *sqlite.ArticleService {
		t.Helper()
		db := setupTestDB(t)
		svc := sqlite.NewArticleService(db)
		ctx := context.Background()
		require.NoError(t, svc.WriteArticle(ctx, newRecord("doc-1", "a", "在会议上的讲话", wenku.Tag{Name: "夺权", Type: wenku.TagSubject})))
		require.NoError(t, svc.WriteArticle(ctx, newRecord("doc-1", "b", "给某人的信")))
		require.NoError(t, svc.WriteArticle(ctx, newRecord("doc-2", "c", "又一次讲话", wenku.Tag{Name: "夺权", Type: wenku.TagSubject})))
		return svc
	}

	ids := func(records []*wenku.Record) []string {
		out := make([]string, len(records))
		for i, r := range records {
			out[i] = r.ArticleID
		}
		return out
	}

	str := func(s string) *string { return &s }

	t.Run("filters by document", func(t *testing.T) {
		t.Parallel()

		got, err := seed(t).FindArticles(context.Background(), wenku.ArticleFilter{DocumentID: str("doc-1")})

		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"a", "b"}, ids(got))
	})

	t.Run("filters by title substring", func(t *testing.T) {
		t.Parallel()

		got, err := seed(t).FindArticles(context.Background(), wenku.ArticleFilter{Title: str("讲话")})

		require.NoError(t, err)
		assert.Equal(t, []string{"a", "c"}, ids(got))
	})

	t.Run("filters by tag", func(t *testing.T) {
		t.Parallel()

		got, err := seed(t).FindArticles(context.Background(), wenku.ArticleFilter{Tag: str("夺权")})

		require.NoError(t, err)
		assert.Equal(t, []string{"a", "c"}, ids(got))
		assert.Equal(t, []wenku.Tag{{Name: "夺权", Type: wenku.TagSubject}}, got[0].Tags)
	})

	t.Run("paginates", func(t *testing.T) {
		t.Parallel()

		svc := seed(t)

		first, err := svc.FindArticles(context.Background(), wenku.ArticleFilter{Limit: 2})
		require.NoError(t, err)
		rest, err := svc.FindArticles(context.Background(), wenku.ArticleFilter{Offset: 2})
		require.NoError(t, err)

		assert.Len(t, first, 2)
		assert.Len(t, rest, 1)
	})
}

func TestArticleService_DeleteArticlesByDocument(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	svc := sqlite.NewArticleService(db)
	ctx := context.Background()
	require.NoError(t, svc.WriteArticle(ctx, newRecord("doc-1", "a", "一", wenku.Tag{Name: "x", Type: wenku.TagSubject})))
	require.NoError(t, svc.WriteArticle(ctx, newRecord("doc-2", "b", "二")))

	require.NoError(t, svc.DeleteArticlesByDocument(ctx, "doc-1"))

	got, err := svc.FindArticles(ctx, wenku.ArticleFilter{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].ArticleID)

	var tags int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM article_tags").Scan(&tags))
	assert.Equal(t, 0, tags)
}
