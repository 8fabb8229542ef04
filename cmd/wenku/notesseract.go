//go:build !tesseract

package main

import "github.com/fwojciec/wenku"

func newTesseractEngine() (wenku.OCREngine, error) {
	return nil, wenku.Errorf(wenku.EINVALID, "built without tesseract support, rebuild with -tags tesseract")
}
