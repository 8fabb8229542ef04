package wenku

import (
	"context"
	"encoding/json"
)

// Patch is a human correction of an article. Exactly one of V1 and V2 is set.
type Patch struct {
	V1 *PatchV1
	V2 *PatchV2
}

// UnmarshalJSON decodes a patch, selecting the schema by its version field.
func (p *Patch) UnmarshalJSON(data []byte) error {
	var head struct {
		Version int `json:"version"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return Errorf(EINVALID, "malformed patch: %s", err)
	}
	switch head.Version {
	case 0, 1:
		p.V1, p.V2 = &PatchV1{}, nil
		if err := json.Unmarshal(data, p.V1); err != nil {
			return Errorf(EINVALID, "malformed patch: %s", err)
		}
	case 2:
		p.V1, p.V2 = nil, &PatchV2{}
		if err := json.Unmarshal(data, p.V2); err != nil {
			return Errorf(EINVALID, "malformed patch: %s", err)
		}
	default:
		return Errorf(EINVALID, "unknown patch version %d", head.Version)
	}
	return nil
}

// MarshalJSON encodes whichever version is set.
func (p Patch) MarshalJSON() ([]byte, error) {
	if p.V2 != nil {
		v := struct {
			Version int `json:"version"`
			*PatchV2
		}{2, p.V2}
		return json.Marshal(v)
	}
	return json.Marshal(p.V1)
}

// PatchV1 holds delta-encoded replacements. Part keys are 0-based part
// indices; comment keys are 1-based, so key i edits Comments[i-1].
type PatchV1 struct {
	Parts       map[int]string `json:"parts,omitempty"`
	Comments    map[int]string `json:"comments,omitempty"`
	Description string         `json:"description,omitempty"`
}

// PatchV2 holds structural edits. Part keys are 0-based; comment keys are
// 1-based.
type PatchV2 struct {
	Parts       map[int]PartEdit    `json:"parts,omitempty"`
	Comments    map[int]CommentEdit `json:"comments,omitempty"`
	NewComments []string            `json:"newComments,omitempty"`
	Description DescriptionEdit     `json:"description,omitzero"`
}

// DescriptionEdit is the description change of a v2 patch. The zero value
// (field absent) leaves the description alone. A present null or empty
// string clears it; any other value is a delta against the description.
type DescriptionEdit struct {
	Set   bool
	Delta string
}

// DescriptionDelta returns an edit applying delta. An empty delta clears.
func DescriptionDelta(delta string) DescriptionEdit {
	return DescriptionEdit{Set: true, Delta: delta}
}

// Clears reports whether the edit empties the description.
func (d DescriptionEdit) Clears() bool {
	return d.Set && d.Delta == ""
}

// UnmarshalJSON records that the field was present, whether null or a string.
func (d *DescriptionEdit) UnmarshalJSON(data []byte) error {
	*d = DescriptionEdit{Set: true}
	if string(data) == "null" {
		return nil
	}
	return json.Unmarshal(data, &d.Delta)
}

// MarshalJSON encodes the delta; a clearing edit encodes as "".
func (d DescriptionEdit) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Delta)
}

// PartEdit edits the part at one index.
type PartEdit struct {
	InsertBefore []ContentPart `json:"insertBefore,omitempty"`
	InsertAfter  []ContentPart `json:"insertAfter,omitempty"`
	Delete       bool          `json:"delete,omitempty"`
	Diff         string        `json:"diff,omitempty"`
	Type         ContentType   `json:"type,omitempty"`
}

// CommentEdit edits the comment at one index. Only the text of inserted
// items is used.
type CommentEdit struct {
	InsertBefore []ContentPart `json:"insertBefore,omitempty"`
	InsertAfter  []ContentPart `json:"insertAfter,omitempty"`
	Delete       bool          `json:"delete,omitempty"`
	Diff         string        `json:"diff,omitempty"`
}

// PatchStore loads the corrections recorded for an article.
type PatchStore interface {
	// FindPatches returns the patches for an article of a document in the
	// order they are to be applied.
	// Returns ENOTFOUND if no patch file exists.
	FindPatches(ctx context.Context, articleID, documentID string) ([]Patch, error)
}
