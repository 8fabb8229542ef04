package wenku

import "context"

// Point is an (x, y) pixel coordinate encoded as a two-element array.
type Point [2]float64

// X returns the horizontal coordinate.
func (p Point) X() float64 { return p[0] }

// Y returns the vertical coordinate.
func (p Point) Y() float64 { return p[1] }

// BoundingBox holds four corners in the order top-left, top-right,
// bottom-right, bottom-left.
type BoundingBox [4]Point

// NewBoundingBox returns the axis-aligned box spanning (x1, y1) to (x2, y2).
func NewBoundingBox(x1, y1, x2, y2 float64) BoundingBox {
	return BoundingBox{{x1, y1}, {x2, y1}, {x2, y2}, {x1, y2}}
}

func (b BoundingBox) TopLeft() Point     { return b[0] }
func (b BoundingBox) TopRight() Point    { return b[1] }
func (b BoundingBox) BottomRight() Point { return b[2] }
func (b BoundingBox) BottomLeft() Point  { return b[3] }

// OCRResult is one recognised text fragment. Fragment order carries no
// meaning; reading order is recovered from the box geometry.
type OCRResult struct {
	Text string      `json:"text"`
	Box  BoundingBox `json:"box"`
}

// Dimensions is the size of a page image in pixels.
type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// OCRPage is the recognition output for one page. It is also the on-disk
// format of the OCR cache.
type OCRPage struct {
	Results    []OCRResult `json:"ocr_results"`
	Dimensions Dimensions  `json:"dimensions"`
}

// PageSource identifies a single page to recognise.
type PageSource struct {
	DocumentID string
	// Path is the PDF file or the page image.
	Path string
	// Page is 1-based.
	Page int
	PDF  bool
}

// OCREngine recognises the text on a page.
type OCREngine interface {
	// Recognize returns the text fragments and page dimensions of src.
	Recognize(ctx context.Context, src PageSource, params OCRParams) (*OCRPage, error)
}

// OCRCache stores recognised pages keyed by document and page number only.
// Changing recognition parameters does not invalidate an entry.
type OCRCache interface {
	// FindPage returns the cached page.
	// Returns ENOTFOUND if the page has not been recognised yet.
	FindPage(ctx context.Context, documentID string, page int) (*OCRPage, error)

	// SavePage stores a recognised page, replacing any previous entry.
	SavePage(ctx context.Context, documentID string, page int, p *OCRPage) error
}
