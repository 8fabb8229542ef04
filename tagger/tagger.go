// Package tagger derives topical tags from articles by matching keyword
// dictionaries against their text.
package tagger

import (
	_ "embed"
	"encoding/json"
	"io"
	"regexp"
	"slices"
	"strings"

	"github.com/fwojciec/wenku"
)

//go:embed dictionary.json
var defaultDictionary []byte

// MinYear is the earliest year that qualifies an article for organization
// and province tags.
const MinYear = 1965

// Ensure Tagger implements wenku.Tagger.
var _ wenku.Tagger = (*Tagger)(nil)

// Entry maps any of several spellings to one canonical tag name.
type Entry struct {
	Name  string   `json:"name"`
	Match []string `json:"match"`
}

// TypeRule assigns an article type when any pattern matches the title or
// description.
type TypeRule struct {
	Type     wenku.ArticleType `json:"type"`
	Patterns []string          `json:"patterns"`
}

// Dictionary holds the keyword lists a Tagger matches.
type Dictionary struct {
	Characters    []string   `json:"characters"`
	Organizations []Entry    `json:"organizations"`
	Provinces     []string   `json:"provinces"`
	Events        []Entry    `json:"events"`
	ArticleTypes  []TypeRule `json:"article_types"`
}

// DefaultDictionary returns the built-in dictionary.
func DefaultDictionary() *Dictionary {
	d, err := decodeDictionary(defaultDictionary)
	if err != nil {
		panic(err)
	}
	return d
}

// LoadDictionary reads a dictionary in the same JSON form as the built-in one.
func LoadDictionary(r io.Reader) (*Dictionary, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return decodeDictionary(data)
}

func decodeDictionary(data []byte) (*Dictionary, error) {
	var d Dictionary
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, wenku.Errorf(wenku.EINVALID, "malformed tag dictionary: %s", err)
	}
	return &d, nil
}

type typeMatcher struct {
	typ      wenku.ArticleType
	patterns []*regexp.Regexp
}

// Tagger derives tags with a fixed dictionary.
type Tagger struct {
	dict  *Dictionary
	types []typeMatcher
}

// New returns a Tagger for d. Returns EINVALID if an article type pattern
// does not compile.
func New(d *Dictionary) (*Tagger, error) {
	t := &Tagger{dict: d}
	for _, rule := range d.ArticleTypes {
		m := typeMatcher{typ: rule.Type}
		for _, p := range rule.Patterns {
			re, err := regexp.Compile(p)
			if err != nil {
				return nil, wenku.Errorf(wenku.EINVALID, "article type %s: %s", rule.Type, err)
			}
			m.patterns = append(m.patterns, re)
		}
		t.types = append(t.types, m)
	}
	return t, nil
}

// Tags returns the tags of a, each (type, name) pair once, in the order
// characters, organizations, provinces, events, article types.
func (t *Tagger) Tags(a *wenku.Article) []wenku.Tag {
	var b strings.Builder
	b.WriteString(a.Description)
	b.WriteString(a.Title)
	for _, p := range a.Parts {
		b.WriteString(p.Text)
		b.WriteByte('\n')
	}
	content := b.String()
	recent := hasYearFrom(a.Dates, MinYear)

	var tags []wenku.Tag
	seen := make(map[wenku.Tag]bool)
	add := func(name string, typ wenku.TagType) {
		tag := wenku.Tag{Name: name, Type: typ}
		if !seen[tag] {
			seen[tag] = true
			tags = append(tags, tag)
		}
	}

	for _, name := range t.dict.Characters {
		if strings.Count(content, name) >= 2 || slices.Contains(a.Authors, name) {
			add(name, wenku.TagCharacter)
		}
	}
	if recent {
		for _, e := range t.dict.Organizations {
			if e.matches(content) {
				add(e.Name, wenku.TagOrganization)
			}
		}
		for _, p := range t.dict.Provinces {
			if strings.Count(content, p) >= 2 {
				add(p+"文革", wenku.TagSubject)
			}
		}
	}
	for _, e := range t.dict.Events {
		if e.matches(content) {
			add(e.Name, wenku.TagSubject)
		}
	}
	for _, typ := range t.ArticleTypes(a) {
		add(string(typ), wenku.TagArticleType)
	}
	return tags
}

// ArticleTypes classifies a by its title and description. An article no
// rule matches is writings.
func (t *Tagger) ArticleTypes(a *wenku.Article) []wenku.ArticleType {
	var types []wenku.ArticleType
	for _, m := range t.types {
		if m.matches(a.Title) || m.matches(a.Description) {
			types = append(types, m.typ)
		}
	}
	if len(types) == 0 {
		types = append(types, wenku.ArticleWritings)
	}
	return types
}

func (m typeMatcher) matches(s string) bool {
	for _, re := range m.patterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

func (e Entry) matches(content string) bool {
	for _, s := range e.Match {
		if strings.Contains(content, s) {
			return true
		}
	}
	return false
}

func hasYearFrom(dates []wenku.Date, year int) bool {
	for _, d := range dates {
		if d.Year >= year {
			return true
		}
	}
	return false
}
