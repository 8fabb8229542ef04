// Package paddle runs an external PaddleOCR script to recognise page images.
package paddle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"os/exec"
	"strings"

	"github.com/fwojciec/wenku"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// DefaultCommand is the recognition script invocation. The path of a JSON
// parameter file is appended as the last argument.
var DefaultCommand = []string{"python3", "/app/ocr.py"}

// Ensure Engine implements wenku.OCREngine.
var _ wenku.OCREngine = (*Engine)(nil)

// Engine recognises page images by running a script that reads a JSON file
// of parameters plus image_dir and prints [[[box, [text, score]], ...]].
type Engine struct {
	// Command is the program and leading arguments.
	Command []string
	// Dir is the working directory of the script.
	Dir string
}

// NewEngine returns an engine running command, or DefaultCommand if empty.
func NewEngine(command ...string) *Engine {
	if len(command) == 0 {
		command = DefaultCommand
	}
	return &Engine{Command: command}
}

// Recognize runs the script on the image at src.Path. PDF sources must be
// rasterised first.
func (e *Engine) Recognize(ctx context.Context, src wenku.PageSource, params wenku.OCRParams) (*wenku.OCRPage, error) {
	if src.PDF {
		return nil, wenku.Errorf(wenku.EINVALID, "paddle: %s page %d: PDF pages must be extracted to an image first", src.DocumentID, src.Page)
	}
	dim, err := ImageDimensions(src.Path)
	if err != nil {
		return nil, err
	}

	paramsFile, err := writeParams(src.Path, params)
	if err != nil {
		return nil, err
	}
	defer os.Remove(paramsFile)

	args := append(append([]string{}, e.Command[1:]...), paramsFile)
	cmd := exec.CommandContext(ctx, e.Command[0], args...)
	cmd.Dir = e.Dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("paddle: %s: %w: %s", src.Path, err, strings.TrimSpace(stderr.String()))
	}

	results, err := ParseOutput(stdout.Bytes())
	if err != nil {
		return nil, err
	}
	return &wenku.OCRPage{Results: results, Dimensions: dim}, nil
}

// writeParams writes the parameter file the script reads: every set
// parameter, the extra parameters at top level, and image_dir.
func writeParams(imagePath string, params wenku.OCRParams) (string, error) {
	extra := params.Extra
	params.Extra = nil
	data, err := json.Marshal(params)
	if err != nil {
		return "", err
	}
	fields := map[string]any{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return "", err
	}
	for k, v := range extra {
		fields[k] = v
	}
	fields["image_dir"] = imagePath

	f, err := os.CreateTemp("", "paddle-params-*.json")
	if err != nil {
		return "", err
	}
	if err := json.NewEncoder(f).Encode(fields); err != nil {
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

// ParseOutput decodes the script output. Only the first image's lines are
// used; a null entry means nothing was recognised.
func ParseOutput(data []byte) ([]wenku.OCRResult, error) {
	var images []json.RawMessage
	if err := json.Unmarshal(data, &images); err != nil {
		return nil, wenku.Errorf(wenku.EINVALID, "paddle: malformed output: %s", err)
	}
	results := []wenku.OCRResult{}
	if len(images) == 0 {
		return results, nil
	}

	var lines []json.RawMessage
	if err := json.Unmarshal(images[0], &lines); err != nil {
		return nil, wenku.Errorf(wenku.EINVALID, "paddle: malformed output: %s", err)
	}
	for i, raw := range lines {
		var line [2]json.RawMessage
		if err := json.Unmarshal(raw, &line); err != nil {
			return nil, wenku.Errorf(wenku.EINVALID, "paddle: malformed line %d: %s", i, err)
		}
		var r wenku.OCRResult
		if err := json.Unmarshal(line[0], &r.Box); err != nil {
			return nil, wenku.Errorf(wenku.EINVALID, "paddle: malformed box in line %d: %s", i, err)
		}
		var rec []any
		if err := json.Unmarshal(line[1], &rec); err != nil || len(rec) == 0 {
			return nil, wenku.Errorf(wenku.EINVALID, "paddle: malformed text in line %d", i)
		}
		text, ok := rec[0].(string)
		if !ok {
			return nil, wenku.Errorf(wenku.EINVALID, "paddle: malformed text in line %d", i)
		}
		r.Text = text
		results = append(results, r)
	}
	return results, nil
}

// ImageDimensions reads the pixel size of an image from its header.
func ImageDimensions(path string) (wenku.Dimensions, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return wenku.Dimensions{}, wenku.Errorf(wenku.ENOTFOUND, "image %s not found", path)
		}
		return wenku.Dimensions{}, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return wenku.Dimensions{}, wenku.Errorf(wenku.EINVALID, "image %s: %s", path, err)
	}
	return wenku.Dimensions{Width: float64(cfg.Width), Height: float64(cfg.Height)}, nil
}
