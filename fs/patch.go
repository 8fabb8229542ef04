package fs

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fwojciec/wenku"
)

// Ensure PatchStore implements wenku.PatchStore.
var _ wenku.PatchStore = (*PatchStore)(nil)

// PatchStore reads correction files named [<article_id>][<document_id>].json,
// each holding a JSON list of patches.
type PatchStore struct {
	dir string
}

// NewPatchStore returns a store for the patch files in dir.
func NewPatchStore(dir string) *PatchStore {
	return &PatchStore{dir: dir}
}

// FindPatches returns the patches for an article in file order.
// Returns ENOTFOUND if no patch file exists.
func (s *PatchStore) FindPatches(ctx context.Context, articleID, documentID string) ([]wenku.Patch, error) {
	var patches []wenku.Patch
	if err := readJSON(PatchPath(s.dir, articleID, documentID), &patches); err != nil {
		return nil, err
	}
	return patches, nil
}

// PatchPath returns the location of the patch file of an article.
func PatchPath(dir, articleID, documentID string) string {
	return filepath.Join(dir, fmt.Sprintf("[%s][%s].json", articleID, documentID))
}
