package wenku

import (
	"context"
	"maps"
	"strconv"
)

// ResourceType is the kind of source a resource record describes.
type ResourceType string

// ResourceType constants.
const (
	ResourceBook    ResourceType = "book"
	ResourceMusic   ResourceType = "music"
	ResourceGallery ResourceType = "gallery"
)

// SourceType is the physical form of a book's pages.
type SourceType string

// SourceType constants.
const (
	SourcePDF    SourceType = "pdf"
	SourceImages SourceType = "img"
)

// Resource is one configuration record: a source document and how to parse it.
type Resource struct {
	ID       string         `json:"id" jsonschema:"document identifier, also the OCR cache and output directory name"`
	Type     ResourceType   `json:"resource_type,omitempty" jsonschema:"book (default), music or gallery"`
	ParserID string         `json:"parser_id,omitempty" jsonschema:"registered parser handling this book"`
	Path     string         `json:"path,omitempty" jsonschema:"source path relative to the raw directory"`
	Entity   map[string]any `json:"entity,omitempty" jsonschema:"source metadata written to the document sidecar"`
	Options  ParserOptions  `json:"parser_option,omitempty"`
}

// Kind returns the resource type, defaulting to book.
func (r *Resource) Kind() ResourceType {
	if r.Type == "" {
		return ResourceBook
	}
	return r.Type
}

// Validate returns an error if the resource contains invalid fields.
func (r *Resource) Validate() error {
	if r.ID == "" {
		return Errorf(EINVALID, "resource ID required")
	}
	switch r.Kind() {
	case ResourceMusic, ResourceGallery:
		return nil
	case ResourceBook:
	default:
		return Errorf(EINVALID, "resource %s: unknown resource type %q", r.ID, r.Type)
	}
	if r.ParserID == "" {
		return Errorf(EINVALID, "resource %s: parser ID required", r.ID)
	}
	for page := range r.Options.OCRExceptions {
		if _, err := strconv.Atoi(page); err != nil {
			return Errorf(EINVALID, "resource %s: OCR exception key %q is not a page number", r.ID, page)
		}
	}
	for i, a := range r.Options.Articles {
		if err := a.Validate(); err != nil {
			return Errorf(EINVALID, "resource %s: article %d: %s", r.ID, i, ErrorMessage(err))
		}
	}
	return nil
}

// ResourceStore reads and creates configuration records.
type ResourceStore interface {
	// LoadResources returns every record.
	LoadResources(ctx context.Context) ([]*Resource, error)

	// FindResource returns the record with the given ID.
	// Returns ENOTFOUND if no record has that ID.
	FindResource(ctx context.Context, id string) (*Resource, error)

	// CreateResource stores a new record.
	// Returns ECONFLICT if a record with the same ID exists.
	CreateResource(ctx context.Context, r *Resource) error
}

// ParserOptions configure a parser for one resource.
type ParserOptions struct {
	Type          SourceType           `json:"type,omitempty" jsonschema:"pdf or img"`
	OCR           OCRParams            `json:"ocr,omitempty"`
	OCRExceptions map[string]OCRParams `json:"ocr_exceptions,omitempty" jsonschema:"per-page overrides keyed by page number, applied last"`
	Articles      []ArticleConfig      `json:"articles,omitempty"`
	Selectors     *Selectors           `json:"selectors,omitempty"`
	// Extractor picks the HTML main-content extractor: trafilatura or readability.
	Extractor string `json:"extractor,omitempty"`
}

// PageParams merges parameters for one page of an article. Later sources
// win: defaults < document < article < article page exception < document
// page exception.
func (o *ParserOptions) PageParams(defaults OCRParams, a *ArticleConfig, page int) OCRParams {
	key := strconv.Itoa(page)
	p := defaults.Merge(o.OCR)
	if a != nil {
		p = p.Merge(a.OCR)
		p = p.Merge(a.OCRExceptions[key])
	}
	return p.Merge(o.OCRExceptions[key])
}

// Selectors are CSS selectors for selector-driven HTML parsing.
type Selectors struct {
	Article    string `json:"article,omitempty" jsonschema:"selector of each article container, defaults to the whole document"`
	Title      string `json:"title"`
	Authors    string `json:"authors,omitempty"`
	Date       string `json:"date,omitempty"`
	Paragraphs string `json:"paragraphs"`
}

// ArticleConfig describes one article inside a paged book.
type ArticleConfig struct {
	Title         string               `json:"title"`
	Alias         string               `json:"alias,omitempty"`
	Authors       []string             `json:"authors,omitempty"`
	Dates         []Date               `json:"dates,omitempty"`
	IsRangeDate   bool                 `json:"is_range_date,omitempty"`
	PageStart     int                  `json:"page_start"`
	PageEnd       int                  `json:"page_end"`
	OCR           OCRParams            `json:"ocr,omitempty"`
	OCRExceptions map[string]OCRParams `json:"ocr_exceptions,omitempty"`
}

// Validate returns an error if the article configuration is invalid.
func (a *ArticleConfig) Validate() error {
	if a.Title == "" {
		return Errorf(EINVALID, "article title required")
	}
	if a.PageStart < 1 || a.PageEnd < a.PageStart {
		return Errorf(EINVALID, "article %q: invalid page range %d-%d", a.Title, a.PageStart, a.PageEnd)
	}
	return nil
}

// OCRParams are recognition and layout parameters. Nil fields are unset and
// do not override during Merge.
type OCRParams struct {
	ContentThresholds     *[4]float64 `json:"content_thresholds,omitempty" jsonschema:"top, bottom, left, right margins as page fractions"`
	LineMergeThreshold    *float64    `json:"line_merge_threshold,omitempty"`
	StandardThreshold     *float64    `json:"standard_paragraph_merge_strategy_threshold,omitempty"`
	DifferentialThreshold *float64    `json:"differential_paragraph_merge_strategy_threshold,omitempty"`
	AutoVSplit            *bool       `json:"auto_vsplit,omitempty"`
	VSplit                *float64    `json:"vsplit,omitempty"`
	ExtractTextFromPDF    *bool       `json:"extract_text_from_pdf,omitempty"`

	DetDBBoxThresh  *float64       `json:"det_db_box_thresh,omitempty"`
	DetLimitSideLen *int           `json:"det_limit_side_len,omitempty"`
	DropScore       *float64       `json:"drop_score,omitempty"`
	RecCharDictPath *string        `json:"rec_char_dict_path,omitempty"`
	RecModelDir     *string        `json:"rec_model_dir,omitempty"`
	DetModelDir     *string        `json:"det_model_dir,omitempty"`
	UseGPU          *bool          `json:"use_gpu,omitempty"`
	GPUMem          *int           `json:"gpu_mem,omitempty"`
	Languages       []string       `json:"languages,omitempty" jsonschema:"tesseract languages"`
	Extra           map[string]any `json:"extra,omitempty" jsonschema:"additional engine parameters passed through verbatim"`
}

// DefaultOCRParams returns the built-in parameters.
func DefaultOCRParams() OCRParams {
	l := DefaultLayoutOptions()
	return OCRParams{
		ContentThresholds:     ptr(l.ContentThresholds),
		LineMergeThreshold:    ptr(l.LineMergeThreshold),
		StandardThreshold:     ptr(l.StandardThreshold),
		DifferentialThreshold: ptr(l.DifferentialThreshold),
		AutoVSplit:            ptr(l.AutoVSplit),
		VSplit:                ptr(l.VSplit),
		DetDBBoxThresh:        ptr(0.2),
		DetLimitSideLen:       ptr(2496),
		DropScore:             ptr(0.3),
	}
}

// Merge returns p overridden by every field set in o.
func (p OCRParams) Merge(o OCRParams) OCRParams {
	p.ContentThresholds = pick(p.ContentThresholds, o.ContentThresholds)
	p.LineMergeThreshold = pick(p.LineMergeThreshold, o.LineMergeThreshold)
	p.StandardThreshold = pick(p.StandardThreshold, o.StandardThreshold)
	p.DifferentialThreshold = pick(p.DifferentialThreshold, o.DifferentialThreshold)
	p.AutoVSplit = pick(p.AutoVSplit, o.AutoVSplit)
	p.VSplit = pick(p.VSplit, o.VSplit)
	p.ExtractTextFromPDF = pick(p.ExtractTextFromPDF, o.ExtractTextFromPDF)
	p.DetDBBoxThresh = pick(p.DetDBBoxThresh, o.DetDBBoxThresh)
	p.DetLimitSideLen = pick(p.DetLimitSideLen, o.DetLimitSideLen)
	p.DropScore = pick(p.DropScore, o.DropScore)
	p.RecCharDictPath = pick(p.RecCharDictPath, o.RecCharDictPath)
	p.RecModelDir = pick(p.RecModelDir, o.RecModelDir)
	p.DetModelDir = pick(p.DetModelDir, o.DetModelDir)
	p.UseGPU = pick(p.UseGPU, o.UseGPU)
	p.GPUMem = pick(p.GPUMem, o.GPUMem)
	if o.Languages != nil {
		p.Languages = o.Languages
	}
	if len(o.Extra) > 0 {
		extra := maps.Clone(p.Extra)
		if extra == nil {
			extra = map[string]any{}
		}
		maps.Copy(extra, o.Extra)
		p.Extra = extra
	}
	return p
}

// Layout resolves the layout parameters, filling unset fields with defaults.
func (p OCRParams) Layout() LayoutOptions {
	l := DefaultLayoutOptions()
	if p.ContentThresholds != nil {
		l.ContentThresholds = *p.ContentThresholds
	}
	if p.LineMergeThreshold != nil {
		l.LineMergeThreshold = *p.LineMergeThreshold
	}
	if p.StandardThreshold != nil {
		l.StandardThreshold = *p.StandardThreshold
	}
	if p.DifferentialThreshold != nil {
		l.DifferentialThreshold = *p.DifferentialThreshold
	}
	if p.AutoVSplit != nil {
		l.AutoVSplit = *p.AutoVSplit
	}
	if p.VSplit != nil {
		l.VSplit = *p.VSplit
	}
	return l
}

// TextFromPDF reports whether PDF pages should be read from the text layer
// instead of being recognised.
func (p OCRParams) TextFromPDF() bool {
	return p.ExtractTextFromPDF != nil && *p.ExtractTextFromPDF
}

func ptr[T any](v T) *T { return &v }

func pick[T any](base, override *T) *T {
	if override != nil {
		return override
	}
	return base
}
