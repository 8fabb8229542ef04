package mock

import (
	"context"

	"github.com/fwojciec/wenku"
)

var (
	_ wenku.Converter     = (*Converter)(nil)
	_ wenku.TextConverter = (*TextConverter)(nil)
)

// Converter is a mock implementation of wenku.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

// TextConverter is a mock implementation of wenku.TextConverter.
type TextConverter struct {
	ConvertTextFn func(ctx context.Context, s string) (string, error)
}

func (c *TextConverter) ConvertText(ctx context.Context, s string) (string, error) {
	return c.ConvertTextFn(ctx, s)
}
