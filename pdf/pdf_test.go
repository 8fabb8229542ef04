package pdf_test

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/wenku"
	"github.com/fwojciec/wenku/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writePDF writes a single-page Letter PDF whose content stream is content.
// The font is Helvetica with WinAnsi encoding and every glyph 600 units wide.
func writePDF(t *testing.T, content string) string {
	t.Helper()
	widths := strings.TrimSpace(strings.Repeat("600 ", 95))
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 /MediaBox [0 0 612 792] >>",
		"<< /Type /Page /Parent 2 0 R /Resources << /Font << /F1 5 0 R >> >> /Contents 4 0 R >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding /FirstChar 32 /LastChar 126 /Widths [" + widths + "] >>",
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	path := filepath.Join(t.TempDir(), "doc.pdf")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestTextEngine_Recognize(t *testing.T) {
	t.Parallel()

	t.Run("runs become fragments", func(t *testing.T) {
		t.Parallel()
		path := writePDF(t, "BT /F1 12 Tf 72 700 Td (AB CD) Tj ET BT /F1 12 Tf 72 600 Td (EF) Tj ET")

		got, err := pdf.NewTextEngine().Recognize(context.Background(), wenku.PageSource{DocumentID: "d", Path: path, Page: 1, PDF: true}, wenku.OCRParams{})

		require.NoError(t, err)
		assert.Equal(t, wenku.Dimensions{Width: 612, Height: 792}, got.Dimensions)
		require.Len(t, got.Results, 2)

		first := got.Results[0]
		assert.Equal(t, "ABCD", first.Text)
		assert.InDelta(t, 72, first.Box.TopLeft().X(), 0.001)
		assert.InDelta(t, 92, first.Box.TopLeft().Y(), 0.001)
		assert.InDelta(t, 108, first.Box.BottomRight().X(), 0.001)
		assert.InDelta(t, 104, first.Box.BottomRight().Y(), 0.001)

		assert.Equal(t, "EF", got.Results[1].Text)
		assert.InDelta(t, 192, got.Results[1].Box.TopLeft().Y(), 0.001)
	})

	t.Run("whitespace only page", func(t *testing.T) {
		t.Parallel()
		path := writePDF(t, "BT /F1 12 Tf 72 700 Td (   ) Tj ET")

		got, err := pdf.NewTextEngine().Recognize(context.Background(), wenku.PageSource{DocumentID: "d", Path: path, Page: 1, PDF: true}, wenku.OCRParams{})

		require.NoError(t, err)
		assert.Empty(t, got.Results)
	})

	t.Run("missing page", func(t *testing.T) {
		t.Parallel()
		path := writePDF(t, "BT ET")

		_, err := pdf.NewTextEngine().Recognize(context.Background(), wenku.PageSource{DocumentID: "d", Path: path, Page: 2, PDF: true}, wenku.OCRParams{})

		assert.Equal(t, wenku.ENOTFOUND, wenku.ErrorCode(err))
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := pdf.NewTextEngine().Recognize(context.Background(), wenku.PageSource{DocumentID: "d", Path: filepath.Join(t.TempDir(), "none.pdf"), Page: 1, PDF: true}, wenku.OCRParams{})

		assert.Equal(t, wenku.ENOTFOUND, wenku.ErrorCode(err))
	})

	t.Run("image source", func(t *testing.T) {
		t.Parallel()

		_, err := pdf.NewTextEngine().Recognize(context.Background(), wenku.PageSource{DocumentID: "d", Path: "1.jpg", Page: 1}, wenku.OCRParams{})

		assert.Equal(t, wenku.EINVALID, wenku.ErrorCode(err))
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := pdf.NewTextEngine().Recognize(ctx, wenku.PageSource{DocumentID: "d", Path: "x.pdf", Page: 1, PDF: true}, wenku.OCRParams{})

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestPageCount(t *testing.T) {
	t.Parallel()

	n, err := pdf.PageCount(writePDF(t, "BT ET"))

	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
