package mock

import "github.com/fwojciec/wenku"

var _ wenku.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of wenku.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*wenku.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*wenku.ExtractResult, error) {
	return e.ExtractFn(html)
}
