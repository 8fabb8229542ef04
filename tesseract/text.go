package tesseract

import (
	"strings"
	"unicode"
)

// trimLine drops the whitespace tesseract inserts between CJK glyphs and
// around the line.
func trimLine(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
