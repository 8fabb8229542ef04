// Package patch applies human corrections to parsed articles. Text edits
// are diff-match-patch deltas computed against the text with footnote
// markers restored.
package patch

import (
	"maps"
	"slices"

	"github.com/fwojciec/wenku"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Apply applies patches in order and returns the corrected article. The
// input article is not modified.
func Apply(a *wenku.Article, patches []wenku.Patch) (*wenku.Article, error) {
	out := a.Clone()
	for i, p := range patches {
		var err error
		switch {
		case p.V2 != nil:
			out, err = ApplyV2(out, p.V2)
		case p.V1 != nil:
			out, err = ApplyV1(out, p.V1)
		default:
			err = wenku.Errorf(wenku.EINVALID, "empty patch")
		}
		if err != nil {
			return nil, wenku.Errorf(wenku.ErrorCode(err), "patch %d: %s", i, wenku.ErrorMessage(err))
		}
	}
	return out, nil
}

// ApplyV1 replaces the text of the addressed parts and comments with the
// result of their deltas.
func ApplyV1(a *wenku.Article, p *wenku.PatchV1) (*wenku.Article, error) {
	out := a.Clone()
	for _, idx := range slices.Sorted(maps.Keys(p.Parts)) {
		if idx < 0 || idx >= len(out.Parts) {
			return nil, wenku.Errorf(wenku.EINVALID, "part %d out of range", idx)
		}
		text, err := applyDelta(wenku.RestorePivots(out.Parts[idx].Text, idx, out.CommentPivots), p.Parts[idx])
		if err != nil {
			return nil, err
		}
		pivots, plain := wenku.ExtractPivots(text, idx)
		out.CommentPivots = slices.DeleteFunc(out.CommentPivots, func(x wenku.Pivot) bool { return x.PartIdx == idx })
		out.CommentPivots = append(out.CommentPivots, pivots...)
		out.Parts[idx].Text = plain
	}
	slices.SortStableFunc(out.CommentPivots, func(x, y wenku.Pivot) int { return x.PartIdx - y.PartIdx })
	for _, key := range slices.Sorted(maps.Keys(p.Comments)) {
		if key < 1 || key > len(out.Comments) {
			return nil, wenku.Errorf(wenku.EINVALID, "comment %d out of range", key)
		}
		text, err := applyDelta(out.Comments[key-1], p.Comments[key])
		if err != nil {
			return nil, err
		}
		out.Comments[key-1] = text
	}
	if p.Description != "" {
		text, err := applyDelta(out.Description, p.Description)
		if err != nil {
			return nil, err
		}
		out.Description = text
	}
	return out, nil
}

// ApplyV2 rebuilds the part and comment lists with the structural edits of
// p. Pivots follow their parts to the new indices.
func ApplyV2(a *wenku.Article, p *wenku.PatchV2) (*wenku.Article, error) {
	for idx := range p.Parts {
		if idx < 0 || idx >= len(a.Parts) {
			return nil, wenku.Errorf(wenku.EINVALID, "part %d out of range", idx)
		}
	}
	if len(p.NewComments) == 0 {
		for key := range p.Comments {
			if key < 1 || key > len(a.Comments) {
				return nil, wenku.Errorf(wenku.EINVALID, "comment %d out of range", key)
			}
		}
	}

	out := a.Clone()
	out.Parts = []wenku.ContentPart{}
	out.CommentPivots = []wenku.Pivot{}
	push := func(typ wenku.ContentType, text string) {
		pivots, plain := wenku.ExtractPivots(text, len(out.Parts))
		out.Parts = append(out.Parts, wenku.ContentPart{Type: typ, Text: plain})
		out.CommentPivots = append(out.CommentPivots, pivots...)
	}

	for idx, part := range a.Parts {
		edit, ok := p.Parts[idx]
		if !ok {
			for _, pv := range a.CommentPivots {
				if pv.PartIdx == idx {
					pv.PartIdx = len(out.Parts)
					out.CommentPivots = append(out.CommentPivots, pv)
				}
			}
			out.Parts = append(out.Parts, part)
			continue
		}

		for _, ins := range edit.InsertBefore {
			push(ins.Type, ins.Text)
		}
		if !edit.Delete {
			text := wenku.RestorePivots(part.Text, idx, a.CommentPivots)
			if edit.Diff != "" {
				var err error
				if text, err = applyDelta(text, edit.Diff); err != nil {
					return nil, wenku.Errorf(wenku.EINVALID, "part %d: %s", idx, wenku.ErrorMessage(err))
				}
			}
			typ := part.Type
			if edit.Type != "" {
				typ = edit.Type
			}
			push(typ, text)
		}
		for _, ins := range edit.InsertAfter {
			push(ins.Type, ins.Text)
		}
	}

	if len(p.NewComments) > 0 {
		out.Comments = slices.Clone(p.NewComments)
	} else {
		out.Comments = []string{}
		for i, comment := range a.Comments {
			edit, ok := p.Comments[i+1]
			if !ok {
				out.Comments = append(out.Comments, comment)
				continue
			}
			for _, ins := range edit.InsertBefore {
				out.Comments = append(out.Comments, ins.Text)
			}
			if !edit.Delete {
				if edit.Diff != "" {
					var err error
					if comment, err = applyDelta(comment, edit.Diff); err != nil {
						return nil, wenku.Errorf(wenku.EINVALID, "comment %d: %s", i+1, wenku.ErrorMessage(err))
					}
				}
				out.Comments = append(out.Comments, comment)
			}
			for _, ins := range edit.InsertAfter {
				out.Comments = append(out.Comments, ins.Text)
			}
		}
	}

	switch d := p.Description; {
	case d.Clears():
		out.Description = ""
	case d.Set:
		text, err := applyDelta(a.Description, d.Delta)
		if err != nil {
			return nil, wenku.Errorf(wenku.EINVALID, "description: %s", wenku.ErrorMessage(err))
		}
		out.Description = text
	}
	return out, nil
}

// applyDelta rebuilds the target text of a delta produced against text.
func applyDelta(text, delta string) (string, error) {
	dmp := diffmatchpatch.New()
	diffs, err := dmp.DiffFromDelta(text, delta)
	if err != nil {
		return "", wenku.Errorf(wenku.EINVALID, "apply delta: %s", err)
	}
	return dmp.DiffText2(diffs), nil
}
