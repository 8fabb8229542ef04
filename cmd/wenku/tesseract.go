//go:build tesseract

package main

import (
	"github.com/fwojciec/wenku"
	"github.com/fwojciec/wenku/tesseract"
)

func newTesseractEngine() (wenku.OCREngine, error) {
	return tesseract.NewEngine(), nil
}
