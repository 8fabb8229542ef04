package wenku

import "context"

// Source is the input handed to a parser.
type Source struct {
	Resource *Resource
	// Path is the resource path resolved against the raw directory.
	Path string
}

// Parser turns a source into articles.
type Parser interface {
	Parse(ctx context.Context, src *Source) ([]*Article, error)
}

// ParserFunc adapts a function to the Parser interface.
type ParserFunc func(ctx context.Context, src *Source) ([]*Article, error)

// Parse calls f(ctx, src).
func (f ParserFunc) Parse(ctx context.Context, src *Source) ([]*Article, error) {
	return f(ctx, src)
}

// ParserRegistry maps parser IDs to parsers.
type ParserRegistry interface {
	// Register adds or replaces the parser for id.
	Register(id string, p Parser)

	// Get returns the parser for id.
	// Returns EINVALID if no parser is registered under id.
	Get(id string) (Parser, error)

	// List returns the registered IDs in sorted order.
	List() []string
}
