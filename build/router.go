package build

import (
	"context"

	"github.com/fwojciec/wenku"
)

// Ensure EngineRouter implements wenku.OCREngine.
var _ wenku.OCREngine = (*EngineRouter)(nil)

// EngineRouter sends each page to the engine suited to its source: the PDF
// text layer when extract_text_from_pdf is set, the scan extractor for
// other PDF pages and the image engine for page images.
type EngineRouter struct {
	Text  wenku.OCREngine
	Scan  wenku.OCREngine
	Image wenku.OCREngine
}

// Recognize delegates src to the selected engine.
func (r *EngineRouter) Recognize(ctx context.Context, src wenku.PageSource, params wenku.OCRParams) (*wenku.OCRPage, error) {
	var e wenku.OCREngine
	switch {
	case src.PDF && params.TextFromPDF():
		e = r.Text
	case src.PDF:
		e = r.Scan
	default:
		e = r.Image
	}
	if e == nil {
		return nil, wenku.Errorf(wenku.EINVALID, "no OCR engine configured for %s page %d", src.DocumentID, src.Page)
	}
	return e.Recognize(ctx, src, params)
}
