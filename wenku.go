// Package wenku turns scanned and archived documents into structured
// article records. It recognises page text, rebuilds lines and paragraphs
// from bounding boxes, separates footnote markers from the text, applies
// human corrections and derives identity and topical tags.
//
// This package contains domain types, interfaces and the pure
// reconstruction algorithms following Ben Johnson's Standard Package
// Layout. Implementations live in subdirectories named after their primary
// dependency (e.g., sqlite/, goquery/, tesseract/).
package wenku
