package wenku_test

import (
	"testing"

	"github.com/fwojciec/wenku"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fragment(text string, x1, y1, x2, y2 float64) wenku.OCRResult {
	return wenku.OCRResult{Text: text, Box: wenku.NewBoundingBox(x1, y1, x2, y2)}
}

func texts(results []wenku.OCRResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Text
	}
	return out
}

func TestMergeToLines(t *testing.T) {
	t.Parallel()

	t.Run("returns a single fragment unchanged for any threshold", func(t *testing.T) {
		t.Parallel()

		in := []wenku.OCRResult{fragment("独行", 10, 10, 90, 30)}

		for _, threshold := range []float64{0, 30, 1e9} {
			assert.Equal(t, in, wenku.MergeToLines(in, threshold))
		}
	})

	t.Run("chains fragments whose corners are within the threshold", func(t *testing.T) {
		t.Parallel()

		in := []wenku.OCRResult{
			fragment("第一", 0, 0, 100, 20),
			fragment("行", 105, 2, 200, 22),
		}

		lines := wenku.MergeToLines(in, 30)

		require.Len(t, lines, 1)
		assert.Equal(t, "第一行", lines[0].Text)
		assert.Equal(t, wenku.Point{0, 0}, lines[0].Box.TopLeft())
		assert.Equal(t, wenku.Point{200, 2}, lines[0].Box.TopRight())
		assert.Equal(t, wenku.Point{200, 22}, lines[0].Box.BottomRight())
		assert.Equal(t, wenku.Point{0, 20}, lines[0].Box.BottomLeft())
	})

	t.Run("keeps fragments apart at exactly the threshold", func(t *testing.T) {
		t.Parallel()

		in := []wenku.OCRResult{
			fragment("甲", 0, 0, 100, 20),
			fragment("乙", 130, 0, 200, 20),
		}

		assert.Equal(t, []string{"甲", "乙"}, texts(wenku.MergeToLines(in, 30)))
	})

	t.Run("sorts lines by top edge", func(t *testing.T) {
		t.Parallel()

		in := []wenku.OCRResult{
			fragment("三", 0, 200, 100, 220),
			fragment("一", 0, 0, 100, 20),
			fragment("二", 0, 100, 100, 120),
		}

		assert.Equal(t, []string{"一", "二", "三"}, texts(wenku.MergeToLines(in, 30)))
	})

	t.Run("links the first qualifying fragment in input order", func(t *testing.T) {
		t.Parallel()

		in := []wenku.OCRResult{
			fragment("头", 0, 0, 100, 20),
			fragment("甲", 110, 0, 200, 20),
			fragment("乙", 105, 0, 190, 20),
		}

		assert.Equal(t, []string{"头甲", "乙"}, texts(wenku.MergeToLines(in, 30)))
	})

	t.Run("never claims a fragment twice", func(t *testing.T) {
		t.Parallel()

		in := []wenku.OCRResult{
			fragment("上", 0, 0, 100, 20),
			fragment("下", 0, 5, 100, 25),
			fragment("尾", 110, 0, 200, 20),
		}

		lines := wenku.MergeToLines(in, 30)

		assert.Equal(t, []string{"上尾", "下"}, texts(lines))
	})

	t.Run("does not lose fragments to cycles", func(t *testing.T) {
		t.Parallel()

		a := wenku.OCRResult{Text: "a", Box: wenku.BoundingBox{{0, 0}, {5, 0}, {5, 10}, {0, 10}}}
		b := wenku.OCRResult{Text: "b", Box: wenku.BoundingBox{{6, 0}, {1, 0}, {1, 10}, {6, 10}}}

		lines := wenku.MergeToLines([]wenku.OCRResult{a, b}, 30)

		assert.Equal(t, []string{"ab"}, texts(lines))
	})

	t.Run("is stable when merging its own output again", func(t *testing.T) {
		t.Parallel()

		in := []wenku.OCRResult{
			fragment("第二行", 0, 50, 100, 70),
			fragment("第一", 0, 0, 100, 20),
			fragment("行", 105, 0, 200, 20),
		}

		once := wenku.MergeToLines(in, 30)
		twice := wenku.MergeToLines(once, 30)

		assert.Equal(t, []string{"第一行", "第二行"}, texts(once))
		assert.Equal(t, once, twice)
	})
}
