// Package tesseract recognises page images with libtesseract through gosseract.
// Building it requires cgo and the tesseract and leptonica headers.
package tesseract

import (
	"context"

	"github.com/fwojciec/wenku"
	"github.com/fwojciec/wenku/paddle"
	"github.com/otiai10/gosseract/v2"
)

// DefaultLanguages are used when the parameters name none.
var DefaultLanguages = []string{"chi_sim"}

// Ensure Engine implements wenku.OCREngine.
var _ wenku.OCREngine = (*Engine)(nil)

// Engine recognises text lines with tesseract. A client is created per call,
// so an Engine is safe for concurrent use.
type Engine struct{}

// NewEngine returns a tesseract engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Recognize returns one fragment per text line of the image at src.Path.
func (e *Engine) Recognize(ctx context.Context, src wenku.PageSource, params wenku.OCRParams) (*wenku.OCRPage, error) {
	if src.PDF {
		return nil, wenku.Errorf(wenku.EINVALID, "tesseract: %s page %d: PDF pages must be extracted to an image first", src.DocumentID, src.Page)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dim, err := paddle.ImageDimensions(src.Path)
	if err != nil {
		return nil, err
	}

	client := gosseract.NewClient()
	defer client.Close()

	langs := params.Languages
	if len(langs) == 0 {
		langs = DefaultLanguages
	}
	if err := client.SetLanguage(langs...); err != nil {
		return nil, wenku.Errorf(wenku.EINVALID, "tesseract: %s", err)
	}
	if err := client.SetImage(src.Path); err != nil {
		return nil, err
	}
	boxes, err := client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return nil, err
	}

	results := make([]wenku.OCRResult, 0, len(boxes))
	for _, b := range boxes {
		text := trimLine(b.Word)
		if text == "" {
			continue
		}
		r := b.Box
		results = append(results, wenku.OCRResult{
			Text: text,
			Box:  wenku.NewBoundingBox(float64(r.Min.X), float64(r.Min.Y), float64(r.Max.X), float64(r.Max.Y)),
		})
	}
	return &wenku.OCRPage{Results: results, Dimensions: dim}, nil
}
