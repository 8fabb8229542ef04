package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/wenku"
)

// Preset is a named selector set with the markers that identify pages it
// applies to.
type Preset struct {
	Name string
	// Generator matches a substring of <meta name="generator">.
	Generator string
	// Markers are selectors any one of which identifies the page.
	Markers   []string
	Selectors wenku.Selectors
}

// Presets detects the selector set for a page. Presets are checked in
// registration order; the fallback applies when none matches.
type Presets struct {
	presets  []Preset
	fallback wenku.Selectors
}

// NewPresets returns the built-in presets for common archive sites.
func NewPresets() *Presets {
	return &Presets{
		presets: []Preset{
			{
				Name:      "mediawiki",
				Generator: "MediaWiki",
				Markers:   []string{"#mw-content-text", ".mw-parser-output"},
				Selectors: wenku.Selectors{
					Title:      "#firstHeading",
					Paragraphs: ".mw-parser-output > p, .mw-parser-output > h2, .mw-parser-output > h3",
				},
			},
			{
				Name:    "marxists",
				Markers: []string{"p.information", "p.title"},
				Selectors: wenku.Selectors{
					Title:      "h2, h3",
					Date:       "p.information",
					Paragraphs: "p:not(.information):not(.title), h4",
				},
			},
			{
				Name:    "wordpress",
				Markers: []string{".entry-content"},
				Selectors: wenku.Selectors{
					Title:      ".entry-title",
					Authors:    ".author .fn, .byline .author",
					Date:       "time.entry-date",
					Paragraphs: ".entry-content p, .entry-content h2, .entry-content h3",
				},
			},
		},
		fallback: wenku.Selectors{
			Title:      "h1",
			Paragraphs: "p, h2, h3",
		},
	}
}

// Register appends a preset, checked after those already registered.
func (p *Presets) Register(preset Preset) {
	p.presets = append(p.presets, preset)
}

// Detect returns the selectors of the first preset matching doc.
func (p *Presets) Detect(doc *goquery.Document) *wenku.Selectors {
	if generator, ok := doc.Find(`meta[name="generator"]`).Attr("content"); ok {
		for i := range p.presets {
			if g := p.presets[i].Generator; g != "" && strings.Contains(generator, g) {
				s := p.presets[i].Selectors
				return &s
			}
		}
	}
	for i := range p.presets {
		for _, m := range p.presets[i].Markers {
			if doc.Find(m).Length() > 0 {
				s := p.presets[i].Selectors
				return &s
			}
		}
	}
	fallback := p.fallback
	return &fallback
}

// Names returns the preset names in detection order.
func (p *Presets) Names() []string {
	names := make([]string, len(p.presets))
	for i, preset := range p.presets {
		names[i] = preset.Name
	}
	return names
}
