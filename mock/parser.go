package mock

import (
	"context"

	"github.com/fwojciec/wenku"
)

var (
	_ wenku.Parser     = (*Parser)(nil)
	_ wenku.PatchStore = (*PatchStore)(nil)
	_ wenku.Tagger     = (*Tagger)(nil)
)

// Parser is a mock implementation of wenku.Parser.
type Parser struct {
	ParseFn func(ctx context.Context, src *wenku.Source) ([]*wenku.Article, error)
}

func (p *Parser) Parse(ctx context.Context, src *wenku.Source) ([]*wenku.Article, error) {
	return p.ParseFn(ctx, src)
}

// PatchStore is a mock implementation of wenku.PatchStore.
type PatchStore struct {
	FindPatchesFn func(ctx context.Context, articleID, documentID string) ([]wenku.Patch, error)
}

func (s *PatchStore) FindPatches(ctx context.Context, articleID, documentID string) ([]wenku.Patch, error) {
	return s.FindPatchesFn(ctx, articleID, documentID)
}

// Tagger is a mock implementation of wenku.Tagger.
type Tagger struct {
	TagsFn func(a *wenku.Article) []wenku.Tag
}

func (t *Tagger) Tags(a *wenku.Article) []wenku.Tag {
	return t.TagsFn(a)
}

var _ wenku.ParserRegistry = (*ParserRegistry)(nil)

// ParserRegistry is a mock implementation of wenku.ParserRegistry.
type ParserRegistry struct {
	RegisterFn func(id string, p wenku.Parser)
	GetFn      func(id string) (wenku.Parser, error)
	ListFn     func() []string
}

func (r *ParserRegistry) Register(id string, p wenku.Parser) {
	r.RegisterFn(id, p)
}

func (r *ParserRegistry) Get(id string) (wenku.Parser, error) {
	return r.GetFn(id)
}

func (r *ParserRegistry) List() []string {
	return r.ListFn()
}
