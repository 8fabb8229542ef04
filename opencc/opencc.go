// Package opencc converts traditional Chinese text to simplified with the
// OpenCC dictionaries.
package opencc

import (
	"context"
	"fmt"

	"github.com/fwojciec/wenku"
	"github.com/longbridgeapp/opencc"
)

// DefaultConfig converts traditional to simplified characters.
const DefaultConfig = "t2s"

// Ensure Converter implements wenku.TextConverter.
var _ wenku.TextConverter = (*Converter)(nil)

// Converter applies one OpenCC conversion. The dictionaries are loaded once
// by NewConverter.
type Converter struct {
	cc *opencc.OpenCC
}

// NewConverter loads the named OpenCC configuration, or DefaultConfig if
// empty. An unknown configuration is EINVALID.
func NewConverter(config string) (*Converter, error) {
	if config == "" {
		config = DefaultConfig
	}
	cc, err := opencc.New(config)
	if err != nil {
		return nil, wenku.Errorf(wenku.EINVALID, "opencc config %q: %s", config, err)
	}
	return &Converter{cc: cc}, nil
}

// ConvertText returns s converted.
func (c *Converter) ConvertText(ctx context.Context, s string) (string, error) {
	if s == "" {
		return s, nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	out, err := c.cc.Convert(s)
	if err != nil {
		return "", fmt.Errorf("opencc: %w", err)
	}
	return out, nil
}
