package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/wenku"
)

// Compile-time interface verification.
var _ wenku.ArticleService = (*ArticleService)(nil)

// ArticleService implements wenku.ArticleService using SQLite. Articles are
// keyed by document and article ID; the article itself is stored as JSON.
type ArticleService struct {
	db  *DB
	now func() time.Time
}

// NewArticleService creates a new ArticleService.
func NewArticleService(db *DB) *ArticleService {
	return &ArticleService{db: db, now: time.Now}
}

// WriteArticle inserts or replaces a record. A record whose article and tags
// are unchanged keeps its original index time.
func (s *ArticleService) WriteArticle(ctx context.Context, rec *wenku.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	body, err := json.Marshal(rec.Article)
	if err != nil {
		return err
	}
	tags, err := json.Marshal(rec.Tags)
	if err != nil {
		return err
	}
	hash := hashContent(append(body, tags...))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var existing string
	err = tx.QueryRowContext(ctx, `
		SELECT content_hash FROM articles WHERE document_id = ? AND id = ?
	`, rec.DocumentID, rec.ArticleID).Scan(&existing)
	if err == nil && existing == hash {
		return nil
	}
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO articles (document_id, id, title, body, content_hash, indexed_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (document_id, id) DO UPDATE
		SET title = excluded.title, body = excluded.body,
			content_hash = excluded.content_hash, indexed_at = excluded.indexed_at
	`, rec.DocumentID, rec.ArticleID, rec.Article.Title, string(body), hash,
		s.now().UTC().Format(time.RFC3339)); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM article_tags WHERE document_id = ? AND article_id = ?
	`, rec.DocumentID, rec.ArticleID); err != nil {
		return err
	}
	for i, tag := range rec.Tags {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO article_tags (document_id, article_id, position, name, type)
			VALUES (?, ?, ?, ?, ?)
		`, rec.DocumentID, rec.ArticleID, i, tag.Name, string(tag.Type)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindArticleByID retrieves a record by article ID. When several documents
// contain the article, the one with the smallest document ID wins.
func (s *ArticleService) FindArticleByID(ctx context.Context, id string) (*wenku.Record, error) {
	var rec wenku.Record
	var body string

	err := s.db.QueryRowContext(ctx, `
		SELECT document_id, id, body
		FROM articles
		WHERE id = ?
		ORDER BY document_id
		LIMIT 1
	`, id).Scan(&rec.DocumentID, &rec.ArticleID, &body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, wenku.Errorf(wenku.ENOTFOUND, "article not found")
	}
	if err != nil {
		return nil, err
	}

	if err := decodeArticle(&rec, body); err != nil {
		return nil, err
	}
	if err := s.attachTags(ctx, []*wenku.Record{&rec}); err != nil {
		return nil, err
	}
	return &rec, nil
}

// FindArticles retrieves records matching the filter, ordered by document,
// title and ID.
func (s *ArticleService) FindArticles(ctx context.Context, filter wenku.ArticleFilter) ([]*wenku.Record, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT document_id, id, body FROM articles a WHERE 1=1")

	if filter.DocumentID != nil {
		query.WriteString(" AND document_id = ?")
		args = append(args, *filter.DocumentID)
	}
	if filter.Title != nil {
		query.WriteString(" AND instr(title, ?) > 0")
		args = append(args, *filter.Title)
	}
	if filter.Tag != nil {
		query.WriteString(` AND EXISTS (
			SELECT 1 FROM article_tags t
			WHERE t.document_id = a.document_id AND t.article_id = a.id AND t.name = ?
		)`)
		args = append(args, *filter.Tag)
	}

	query.WriteString(" ORDER BY document_id, title, id")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*wenku.Record
	for rows.Next() {
		var rec wenku.Record
		var body string
		if err := rows.Scan(&rec.DocumentID, &rec.ArticleID, &body); err != nil {
			return nil, err
		}
		if err := decodeArticle(&rec, body); err != nil {
			return nil, err
		}
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// The pool holds a single connection, so tags are read only after the
	// article rows are closed.
	rows.Close()

	if err := s.attachTags(ctx, records); err != nil {
		return nil, err
	}
	return records, nil
}

// DeleteArticlesByDocument removes all records of a document.
func (s *ArticleService) DeleteArticlesByDocument(ctx context.Context, documentID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM articles WHERE document_id = ?", documentID)
	return err
}

func decodeArticle(rec *wenku.Record, body string) error {
	rec.Article = &wenku.Article{}
	if err := json.Unmarshal([]byte(body), rec.Article); err != nil {
		return wenku.Errorf(wenku.EINTERNAL, "corrupt article %s: %s", rec.ArticleID, err)
	}
	return nil
}

func (s *ArticleService) attachTags(ctx context.Context, records []*wenku.Record) error {
	for _, rec := range records {
		rows, err := s.db.QueryContext(ctx, `
			SELECT name, type FROM article_tags
			WHERE document_id = ? AND article_id = ?
			ORDER BY position
		`, rec.DocumentID, rec.ArticleID)
		if err != nil {
			return err
		}

		rec.Tags = []wenku.Tag{}
		for rows.Next() {
			var tag wenku.Tag
			var typ string
			if err := rows.Scan(&tag.Name, &typ); err != nil {
				rows.Close()
				return err
			}
			tag.Type = wenku.TagType(typ)
			rec.Tags = append(rec.Tags, tag)
		}
		err = rows.Err()
		rows.Close()
		if err != nil {
			return err
		}
	}
	return nil
}
