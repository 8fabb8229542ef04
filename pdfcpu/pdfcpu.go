// Package pdfcpu pulls scanned page images out of PDFs with pdfcpu so an
// image OCR engine can recognise them.
package pdfcpu

import (
	"context"
	"io"
	"os"
	"strconv"
	"sync"

	"github.com/fwojciec/wenku"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var disableConfigDir sync.Once

// Ensure ImageEngine implements wenku.OCREngine.
var _ wenku.OCREngine = (*ImageEngine)(nil)

// ImageEngine recognises a PDF page by extracting its largest embedded
// image to a temporary file and passing that file to Next.
type ImageEngine struct {
	Next wenku.OCREngine
	// TempDir holds extracted images. Empty means the system default.
	TempDir string

	conf *model.Configuration
}

// NewImageEngine returns an engine delegating recognition to next.
func NewImageEngine(next wenku.OCREngine) *ImageEngine {
	disableConfigDir.Do(api.DisableConfigDir)
	return &ImageEngine{Next: next, conf: model.NewDefaultConfiguration()}
}

// Recognize extracts the page image of src and recognises it with Next.
func (e *ImageEngine) Recognize(ctx context.Context, src wenku.PageSource, params wenku.OCRParams) (*wenku.OCRPage, error) {
	if !src.PDF {
		return e.Next.Recognize(ctx, src, params)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := e.extract(src)
	if err != nil {
		return nil, err
	}
	defer os.Remove(path)

	return e.Next.Recognize(ctx, wenku.PageSource{
		DocumentID: src.DocumentID,
		Path:       path,
		Page:       src.Page,
	}, params)
}

// extract writes the largest image on the page to a temporary file and
// returns its path.
func (e *ImageEngine) extract(src wenku.PageSource) (string, error) {
	f, err := os.Open(src.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", wenku.Errorf(wenku.ENOTFOUND, "pdf %s not found", src.Path)
		}
		return "", err
	}
	defer f.Close()

	n, err := api.PageCount(f, e.conf)
	if err != nil {
		return "", wenku.Errorf(wenku.EINVALID, "pdf %s: %s", src.Path, err)
	}
	if src.Page < 1 || src.Page > n {
		return "", wenku.Errorf(wenku.ENOTFOUND, "pdf %s has no page %d", src.Path, src.Page)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	var (
		best     string
		bestArea int
	)
	digest := func(img model.Image, _ bool, _ int) error {
		area := img.Width * img.Height
		if best != "" && area <= bestArea {
			return nil
		}
		path, err := writeImage(e.TempDir, img)
		if err != nil {
			return err
		}
		if best != "" {
			os.Remove(best)
		}
		best, bestArea = path, area
		return nil
	}
	if err := api.ExtractImages(f, []string{strconv.Itoa(src.Page)}, digest, e.conf); err != nil {
		if best != "" {
			os.Remove(best)
		}
		return "", wenku.Errorf(wenku.EINVALID, "pdf %s page %d: %s", src.Path, src.Page, err)
	}
	if best == "" {
		return "", wenku.Errorf(wenku.ENOTFOUND, "pdf %s page %d has no image", src.Path, src.Page)
	}
	return best, nil
}

func writeImage(dir string, img model.Image) (string, error) {
	f, err := os.CreateTemp(dir, "page-*."+img.FileType)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, img); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}
