package fs_test

import (
	"context"
	"testing"

	"github.com/fwojciec/wenku"
	"github.com/fwojciec/wenku/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatchStore_FindPatches(t *testing.T) {
	t.Parallel()

	t.Run("decodes each patch by version", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, fs.PatchPath(dir, "abc", "doc"), `[
			{"parts": {"0": "=3"}},
			{"version": 2, "newComments": ["注"]}
		]`)

		patches, err := fs.NewPatchStore(dir).FindPatches(context.Background(), "abc", "doc")

		require.NoError(t, err)
		require.Len(t, patches, 2)
		assert.Equal(t, map[int]string{0: "=3"}, patches[0].V1.Parts)
		assert.Equal(t, []string{"注"}, patches[1].V2.NewComments)
	})

	t.Run("names files by article and document", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "p/[abc][doc].json", fs.PatchPath("p", "abc", "doc"))
	})

	t.Run("returns not found without a file", func(t *testing.T) {
		t.Parallel()

		_, err := fs.NewPatchStore(t.TempDir()).FindPatches(context.Background(), "abc", "doc")

		assert.Equal(t, wenku.ENOTFOUND, wenku.ErrorCode(err))
	})

	t.Run("rejects unknown versions", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, fs.PatchPath(dir, "abc", "doc"), `[{"version": 7}]`)

		_, err := fs.NewPatchStore(dir).FindPatches(context.Background(), "abc", "doc")

		assert.Equal(t, wenku.EINVALID, wenku.ErrorCode(err))
	})
}
