package wenku

import (
	"regexp"
	"sort"
	"strconv"
	"unicode/utf8"
)

// Footnote marker brackets.
const (
	BracketLeft  = "〔"
	BracketRight = "〕"
)

var pivotPattern = regexp.MustCompile(`〔(\d+)〕`)

// Pivot records that footnote marker Index was cut out of part PartIdx at
// rune Offset of the part's bracket-free text.
type Pivot struct {
	PartIdx int `json:"part_idx"`
	Offset  int `json:"offset"`
	Index   int `json:"index"`
}

// ExtractPivots removes footnote markers from text one at a time, always
// the leftmost in the already shortened text, and returns them with the
// bracket-free text. A marker whose number does not fit in an int is not a
// footnote and stays in the text.
func ExtractPivots(text string, partIdx int) ([]Pivot, string) {
	var pivots []Pivot
	from := 0
	for {
		loc := pivotPattern.FindStringSubmatchIndex(text[from:])
		if loc == nil {
			break
		}
		for i := range loc {
			loc[i] += from
		}
		index, err := strconv.Atoi(text[loc[2]:loc[3]])
		if err != nil {
			from = loc[1]
			continue
		}
		pivots = append(pivots, Pivot{
			PartIdx: partIdx,
			Offset:  utf8.RuneCountInString(text[:loc[0]]),
			Index:   index,
		})
		text = text[:loc[0]] + text[loc[1]:]
	}
	return pivots, text
}

// RestorePivots reinserts the markers of part partIdx into text in
// descending offset order. Pivots sharing an offset are inserted last-first
// so their original order is kept. Offsets past the end append.
func RestorePivots(text string, partIdx int, pivots []Pivot) string {
	own := PartPivots(pivots, partIdx)
	if len(own) == 0 {
		return text
	}
	sort.SliceStable(own, func(i, j int) bool { return own[i].Offset < own[j].Offset })

	runes := []rune(text)
	for i := len(own) - 1; i >= 0; i-- {
		at := min(max(own[i].Offset, 0), len(runes))
		marker := []rune(BracketLeft + strconv.Itoa(own[i].Index) + BracketRight)
		runes = append(runes[:at], append(marker, runes[at:]...)...)
	}
	return string(runes)
}

// PartPivots returns a copy of the pivots that belong to part partIdx.
func PartPivots(pivots []Pivot, partIdx int) []Pivot {
	var own []Pivot
	for _, p := range pivots {
		if p.PartIdx == partIdx {
			own = append(own, p)
		}
	}
	return own
}
