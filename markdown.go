package wenku

import (
	"regexp"
	"strings"
)

var (
	headingRe   = regexp.MustCompile(`^#{1,6}\s+(.+?)\s*#*$`)
	codeBlockRe = regexp.MustCompile("(?s)```.*?```")
	blankLineRe = regexp.MustCompile(`\n\s*\n`)
	linkRe      = regexp.MustCompile(`!?\[([^\]]*)\]\([^)]*\)`)
	emphasisRe  = regexp.MustCompile(`\*\*|__|\*`)
	quoteRe     = regexp.MustCompile(`(?m)^>\s?`)
)

// PartsFromMarkdown splits Markdown into content parts. Headings become
// title parts and every other block becomes a paragraph whose lines are
// joined without separators. Code blocks, link targets, images and
// emphasis markers are dropped.
func PartsFromMarkdown(markdown string) []ContentPart {
	cleaned := codeBlockRe.ReplaceAllString(markdown, "")

	var parts []ContentPart
	for _, block := range blankLineRe.Split(cleaned, -1) {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		if m := headingRe.FindStringSubmatch(block); m != nil && !strings.Contains(block, "\n") {
			parts = append(parts, ContentPart{Type: ContentTitle, Text: cleanInline(m[1])})
			continue
		}

		var b strings.Builder
		for _, line := range strings.Split(quoteRe.ReplaceAllString(block, ""), "\n") {
			b.WriteString(strings.TrimSpace(line))
		}
		if text := cleanInline(b.String()); text != "" {
			parts = append(parts, ContentPart{Type: ContentParagraph, Text: text})
		}
	}
	return parts
}

func cleanInline(s string) string {
	s = linkRe.ReplaceAllString(s, "$1")
	s = emphasisRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
