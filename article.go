package wenku

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sort"

	"github.com/cespare/xxhash/v2"
)

// Article is the canonical output unit of every parser.
type Article struct {
	Title       string        `json:"title"`
	Alias       string        `json:"alias,omitempty"`
	Authors     []string      `json:"authors"`
	Dates       []Date        `json:"dates"`
	IsRangeDate bool          `json:"is_range_date"`
	Parts       []ContentPart `json:"parts"`
	Comments    []string      `json:"comments"`
	// CommentPivots locate the footnote markers cut out of Parts.
	CommentPivots []Pivot `json:"comment_pivots"`
	Description   string  `json:"description"`
	PageStart     int     `json:"page_start,omitempty"`
	PageEnd       int     `json:"page_end,omitempty"`
}

// Validate returns an error if the article contains invalid fields.
func (a *Article) Validate() error {
	if a.Title == "" {
		return Errorf(EINVALID, "article title required")
	}
	for _, p := range a.CommentPivots {
		if p.PartIdx < 0 || p.PartIdx >= len(a.Parts) {
			return Errorf(EINVALID, "article %q: pivot references missing part %d", a.Title, p.PartIdx)
		}
	}
	return nil
}

// Clone returns a deep copy of the article with nil lists replaced by empty
// ones.
func (a *Article) Clone() *Article {
	c := *a
	c.Authors = cloneOrEmpty(a.Authors)
	c.Dates = cloneOrEmpty(a.Dates)
	c.Parts = cloneOrEmpty(a.Parts)
	c.Comments = cloneOrEmpty(a.Comments)
	c.CommentPivots = cloneOrEmpty(a.CommentPivots)
	return &c
}

func cloneOrEmpty[S ~[]E, E any](s S) S {
	if s == nil {
		return S{}
	}
	return slices.Clone(s)
}

// NewArticle builds the base article for a configured page range from
// merged parts. Footnote markers are moved out of the part text into
// CommentPivots.
func NewArticle(cfg *ArticleConfig, parts []ContentPart) *Article {
	a := &Article{
		Title:       cfg.Title,
		Alias:       cfg.Alias,
		Authors:     cloneOrEmpty(cfg.Authors),
		Dates:       cloneOrEmpty(cfg.Dates),
		IsRangeDate: cfg.IsRangeDate,
		Parts:       make([]ContentPart, len(parts)),
		Comments:    []string{},
		PageStart:   cfg.PageStart,
		PageEnd:     cfg.PageEnd,
	}
	a.CommentPivots = []Pivot{}
	for i, p := range parts {
		pivots, text := ExtractPivots(p.Text, i)
		a.Parts[i] = ContentPart{Type: p.Type, Text: text}
		a.CommentPivots = append(a.CommentPivots, pivots...)
	}
	return a
}

// ArticleID returns the identity of an article: a hash of its title, dates
// sorted as YYYY-MM-DD strings, range flag and sorted authors. Text does
// not contribute, so corrections keep the identity stable.
func ArticleID(a *Article) string {
	dates := cloneOrEmpty(a.Dates)
	sort.SliceStable(dates, func(i, j int) bool { return dates[i].String() < dates[j].String() })
	authors := cloneOrEmpty(a.Authors)
	sort.Strings(authors)

	b, err := json.Marshal([]any{a.Title, dates, a.IsRangeDate, authors})
	if err != nil {
		panic(fmt.Sprintf("marshal article identity: %v", err))
	}
	return fmt.Sprintf("%016x", xxhash.Sum64(b))
}

// Record is an article ready to be persisted.
type Record struct {
	DocumentID string   `json:"documentId"`
	ArticleID  string   `json:"articleId"`
	Article    *Article `json:"article"`
	Tags       []Tag    `json:"tags"`
}

// Validate returns an error if the record contains invalid fields.
func (r *Record) Validate() error {
	if r.DocumentID == "" {
		return Errorf(EINVALID, "record document ID required")
	}
	if r.ArticleID == "" {
		return Errorf(EINVALID, "record article ID required")
	}
	if r.Article == nil {
		return Errorf(EINVALID, "record article required")
	}
	return r.Article.Validate()
}

// ArticleWriter persists article records.
type ArticleWriter interface {
	WriteArticle(ctx context.Context, rec *Record) error
}

// ArticleService represents a service for querying persisted articles.
type ArticleService interface {
	// WriteArticle inserts or replaces a record.
	WriteArticle(ctx context.Context, rec *Record) error

	// FindArticleByID retrieves a record by article ID.
	// Returns ENOTFOUND if the article does not exist.
	FindArticleByID(ctx context.Context, id string) (*Record, error)

	// FindArticles retrieves records matching the filter.
	FindArticles(ctx context.Context, filter ArticleFilter) ([]*Record, error)

	// DeleteArticlesByDocument removes all records of a document.
	DeleteArticlesByDocument(ctx context.Context, documentID string) error
}

// ArticleFilter represents a filter for FindArticles.
type ArticleFilter struct {
	DocumentID *string `json:"documentId"`
	Tag        *string `json:"tag"`
	// Title matches any article whose title contains the value.
	Title *string `json:"title"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// ArticleWalker iterates persisted records.
type ArticleWalker interface {
	// WalkArticles calls fn for every record. Iteration stops at the first
	// error, which is returned.
	WalkArticles(ctx context.Context, fn func(rec *Record) error) error
}

// DocumentInfoWriter persists the metadata sidecar of a source document.
type DocumentInfoWriter interface {
	WriteDocumentInfo(ctx context.Context, r *Resource) error
}

// TagWriter replaces the derived tags of a persisted article.
type TagWriter interface {
	WriteTags(ctx context.Context, documentID, articleID string, tags []Tag) error
}
