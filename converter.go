package wenku

import "context"

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms clean HTML (e.g., from an Extractor) into Markdown.
	Convert(html string) (string, error)
}

// TextConverter rewrites article text, e.g. traditional to simplified
// Chinese characters.
type TextConverter interface {
	ConvertText(ctx context.Context, s string) (string, error)
}
