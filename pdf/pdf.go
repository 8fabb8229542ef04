// Package pdf reads text fragments from the text layer of born-digital PDFs
// using github.com/ledongthuc/pdf.
package pdf

import (
	"context"
	"math"
	"os"
	"strings"
	"unicode"

	"github.com/fwojciec/wenku"
	lpdf "github.com/ledongthuc/pdf"
)

// Ensure TextEngine implements wenku.OCREngine.
var _ wenku.OCREngine = (*TextEngine)(nil)

// TextEngine returns the text layer of a PDF page in the shape of OCR
// output, with coordinates in points measured from the top-left corner.
type TextEngine struct{}

// NewTextEngine returns a text layer engine.
func NewTextEngine() *TextEngine {
	return &TextEngine{}
}

// Recognize reads page src.Page of the PDF at src.Path.
func (e *TextEngine) Recognize(ctx context.Context, src wenku.PageSource, params wenku.OCRParams) (_ *wenku.OCRPage, err error) {
	if !src.PDF {
		return nil, wenku.Errorf(wenku.EINVALID, "pdf: %s is not a PDF source", src.Path)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, r, err := open(src.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// The reader panics on malformed objects and content streams.
	defer func() {
		if v := recover(); v != nil {
			err = wenku.Errorf(wenku.EINVALID, "pdf: %s page %d: %v", src.Path, src.Page, v)
		}
	}()

	if src.Page < 1 || src.Page > r.NumPage() {
		return nil, wenku.Errorf(wenku.ENOTFOUND, "pdf: %s has no page %d", src.Path, src.Page)
	}
	page := r.Page(src.Page)
	if page.V.IsNull() {
		return nil, wenku.Errorf(wenku.ENOTFOUND, "pdf: %s has no page %d", src.Path, src.Page)
	}

	dim := mediaBox(page)
	return &wenku.OCRPage{
		Results:    fragments(page.Content().Text, dim.Height),
		Dimensions: dim,
	}, nil
}

// PageCount returns the number of pages of the PDF at path.
func PageCount(path string) (int, error) {
	f, r, err := open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return r.NumPage(), nil
}

func open(path string) (*os.File, *lpdf.Reader, error) {
	f, r, err := lpdf.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, wenku.Errorf(wenku.ENOTFOUND, "pdf %s not found", path)
		}
		return nil, nil, wenku.Errorf(wenku.EINVALID, "pdf %s: %s", path, err)
	}
	return f, r, nil
}

// defaultMediaBox is US Letter, used when a page declares no media box.
var defaultMediaBox = wenku.Dimensions{Width: 612, Height: 792}

// mediaBox returns the page size, following inherited page tree attributes.
func mediaBox(p lpdf.Page) wenku.Dimensions {
	for v := p.V; !v.IsNull(); v = v.Key("Parent") {
		box := v.Key("MediaBox")
		if box.IsNull() {
			continue
		}
		if box.Len() != 4 {
			break
		}
		return wenku.Dimensions{
			Width:  math.Abs(box.Index(2).Float64() - box.Index(0).Float64()),
			Height: math.Abs(box.Index(3).Float64() - box.Index(1).Float64()),
		}
	}
	return defaultMediaBox
}

// fragments groups glyphs into runs sharing a baseline and font size with no
// gap wider than one em, then converts each run to a fragment. Whitespace is
// dropped and empty runs are skipped.
func fragments(glyphs []lpdf.Text, height float64) []wenku.OCRResult {
	results := []wenku.OCRResult{}
	var run []lpdf.Text
	flush := func() {
		if len(run) == 0 {
			return
		}
		if r, ok := toResult(run, height); ok {
			results = append(results, r)
		}
		run = run[:0]
	}
	for _, g := range glyphs {
		if len(run) > 0 && !continues(run[len(run)-1], g) {
			flush()
		}
		run = append(run, g)
	}
	flush()
	return results
}

func continues(prev, next lpdf.Text) bool {
	const eps = 0.01
	if math.Abs(prev.Y-next.Y) > eps || math.Abs(prev.FontSize-next.FontSize) > eps {
		return false
	}
	gap := next.X - (prev.X + prev.W)
	return gap > -prev.FontSize && gap <= prev.FontSize
}

func toResult(run []lpdf.Text, height float64) (wenku.OCRResult, bool) {
	var b strings.Builder
	for _, g := range run {
		b.WriteString(g.S)
	}
	text := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, b.String())
	if text == "" {
		return wenku.OCRResult{}, false
	}

	first, last := run[0], run[len(run)-1]
	x1 := first.X
	x2 := last.X + last.W
	top := height - first.Y
	return wenku.OCRResult{
		Text: text,
		Box:  wenku.NewBoundingBox(x1, top, x2, top+first.FontSize),
	}, true
}
