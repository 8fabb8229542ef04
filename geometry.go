package wenku

import (
	"math"
	"sort"
	"strings"
)

// MergeToLines joins fragments that continue each other to the right into
// lines and returns the lines sorted by top edge.
//
// A fragment b continues a when the Manhattan distance between a's
// top-right corner and b's top-left corner is below threshold, a has no
// successor yet, b is not already a successor, and linking would not close
// a cycle. Pairs are visited with a in input order and, for each a, b in
// input order; the first qualifying b wins. Each chain becomes one line
// whose text is the concatenation of the chain and whose box spans from the
// head's left edge to the tail's right edge.
func MergeToLines(results []OCRResult, threshold float64) []OCRResult {
	n := len(results)
	next := make([]int, n)
	claimed := make([]bool, n)
	for i := range next {
		next[i] = -1
	}

	for a := 0; a < n; a++ {
		tr := results[a].Box.TopRight()
		for b := 0; b < n && next[a] < 0; b++ {
			if a == b || claimed[b] {
				continue
			}
			tl := results[b].Box.TopLeft()
			if math.Abs(tl.X()-tr.X())+math.Abs(tl.Y()-tr.Y()) >= threshold {
				continue
			}
			if reaches(next, b, a) {
				continue
			}
			next[a] = b
			claimed[b] = true
		}
	}

	lines := make([]OCRResult, 0, n)
	for i := range results {
		if claimed[i] {
			continue
		}
		line := results[i]
		if next[i] >= 0 {
			var b strings.Builder
			b.WriteString(line.Text)
			tail := i
			for j := next[i]; j >= 0; j = next[j] {
				b.WriteString(results[j].Text)
				tail = j
			}
			line.Text = b.String()
			line.Box[1] = results[tail].Box[1]
			line.Box[2] = results[tail].Box[2]
		}
		lines = append(lines, line)
	}

	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].Box.TopLeft().Y() < lines[j].Box.TopLeft().Y()
	})
	return lines
}

// reaches reports whether following successors from start arrives at target.
func reaches(next []int, start, target int) bool {
	for j := start; j >= 0; j = next[j] {
		if j == target {
			return true
		}
	}
	return false
}
