package wenku

import "strings"

// ContentType is the kind of a content part.
type ContentType string

// ContentType constants.
const (
	ContentParagraph ContentType = "paragraph"
	ContentTitle     ContentType = "title"
)

// ContentPart is one unit of article text in reading order.
type ContentPart struct {
	Type ContentType `json:"type"`
	Text string      `json:"text"`
}

// PartRaw is a classified line waiting for the paragraph merge step.
type PartRaw struct {
	Page int
	Text string
	Type ContentType
	Box  BoundingBox
	// MergeUp marks the line as a continuation of the previous part.
	MergeUp bool
}

// X returns the left edge of the line.
func (p PartRaw) X() float64 { return p.Box.TopLeft().X() }

// LayoutOptions are the resolved page reconstruction parameters.
type LayoutOptions struct {
	// ContentThresholds are the top, bottom, left and right margins as
	// fractions of the page height or width.
	ContentThresholds [4]float64
	// LineMergeThreshold is the fragment chaining distance in pixels.
	LineMergeThreshold float64
	// StandardThreshold is a fraction of the page width; lines starting left
	// of it continue the previous paragraph.
	StandardThreshold float64
	// DifferentialThreshold is the indentation in pixels relative to a
	// neighbouring line that starts a new paragraph.
	DifferentialThreshold float64
	// AutoVSplit splits landscape pages into two columns.
	AutoVSplit bool
	// VSplit is the column split position as a fraction of the page width.
	VSplit float64
}

// DefaultLayoutOptions returns the built-in reconstruction parameters.
func DefaultLayoutOptions() LayoutOptions {
	return LayoutOptions{
		LineMergeThreshold:    30,
		DifferentialThreshold: 30,
		AutoVSplit:            true,
		VSplit:                0.5,
	}
}

// CropToContent drops fragments with any corner outside the content region.
func CropToContent(results []OCRResult, dim Dimensions, thresholds [4]float64) []OCRResult {
	top := thresholds[0] * dim.Height
	bottom := dim.Height - thresholds[1]*dim.Height
	left := thresholds[2] * dim.Width
	right := dim.Width - thresholds[3]*dim.Width

	var kept []OCRResult
	for _, r := range results {
		b := r.Box
		if b.TopLeft().X() >= left && b.BottomLeft().X() >= left &&
			b.TopRight().X() <= right && b.BottomRight().X() <= right &&
			b.TopLeft().Y() >= top && b.TopRight().Y() >= top &&
			b.BottomRight().Y() <= bottom && b.BottomLeft().Y() <= bottom {
			kept = append(kept, r)
		}
	}
	return kept
}

// SplitColumns divides a page into left and right columns when the options
// ask for it, otherwise it returns the fragments as a single column.
// Fragments whose left edge straddles the split line belong to neither
// column.
func SplitColumns(results []OCRResult, dim Dimensions, opts LayoutOptions) [][]OCRResult {
	split := (opts.AutoVSplit && dim.Height < dim.Width) || (!opts.AutoVSplit && opts.VSplit != 0)
	if !split {
		return [][]OCRResult{results}
	}

	at := dim.Width * opts.VSplit
	var left, right []OCRResult
	for _, r := range results {
		tl, bl := r.Box.TopLeft().X(), r.Box.BottomLeft().X()
		switch {
		case tl < at && bl < at:
			left = append(left, r)
		case tl >= at && bl >= at:
			right = append(right, r)
		}
	}
	return [][]OCRResult{left, right}
}

// ExtractParts classifies sorted lines into paragraph parts and decides
// for each whether it continues the previous part.
//
// With a differential threshold, a line starts a new paragraph when it is
// indented by more than the threshold relative to the line before or the
// line after it. Otherwise, with a standard threshold, a line continues the
// previous paragraph iff its left edge is strictly less than
// width*threshold. With neither, every line is its own part.
func ExtractParts(lines []OCRResult, page int, dim Dimensions, opts LayoutOptions) []PartRaw {
	parts := make([]PartRaw, len(lines))
	for i, l := range lines {
		parts[i] = PartRaw{
			Page: page,
			Text: strings.TrimSpace(l.Text),
			Type: ContentParagraph,
			Box:  l.Box,
		}
	}

	for i := range parts {
		p := &parts[i]
		switch {
		case opts.DifferentialThreshold > 0:
			p.MergeUp = true
			if i > 0 && p.X()-parts[i-1].X() > opts.DifferentialThreshold {
				p.MergeUp = false
			} else if i < len(parts)-1 && p.X()-parts[i+1].X() > opts.DifferentialThreshold {
				p.MergeUp = false
			}
		case opts.StandardThreshold > 0:
			p.MergeUp = p.X() < dim.Width*opts.StandardThreshold
		}
	}
	return parts
}

// MergeParts folds parts marked MergeUp into the preceding part of the same
// type. Text is appended without a separator.
func MergeParts(parts []PartRaw) []ContentPart {
	var merged []ContentPart
	for _, p := range parts {
		if p.MergeUp && len(merged) > 0 && merged[len(merged)-1].Type == p.Type {
			merged[len(merged)-1].Text += p.Text
			continue
		}
		merged = append(merged, ContentPart{Type: p.Type, Text: p.Text})
	}
	return merged
}

// ReconstructPage runs the per-page pipeline: drop empty fragments, crop to
// the content region, split columns, chain fragments into lines and
// classify the lines of each column in top-to-bottom order.
func ReconstructPage(p *OCRPage, page int, opts LayoutOptions) []PartRaw {
	var results []OCRResult
	for _, r := range p.Results {
		if r.Text != "" {
			results = append(results, r)
		}
	}
	results = CropToContent(results, p.Dimensions, opts.ContentThresholds)

	var parts []PartRaw
	for _, column := range SplitColumns(results, p.Dimensions, opts) {
		lines := MergeToLines(column, opts.LineMergeThreshold)
		parts = append(parts, ExtractParts(lines, page, p.Dimensions, opts)...)
	}
	return parts
}
