package wenku

// ExtractResult holds the content found in an archived HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// Authors are the bylines found in the page metadata, if any.
	Authors []string

	// Date is the publication date as free text, suitable for ExtractDates.
	Date string

	// ContentHTML is the main content as clean HTML.
	// Boilerplate (nav, footer, sidebar, ads) has been removed.
	ContentHTML string
}

// Extractor extracts main content from archived HTML pages.
type Extractor interface {
	// Extract processes raw HTML and returns the main content.
	Extract(html string) (*ExtractResult, error)
}
