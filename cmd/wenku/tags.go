package main

import (
	"fmt"

	"github.com/fwojciec/wenku"
	"github.com/fwojciec/wenku/build"
)

// Run executes the tags command.
func (c *TagsCmd) Run(deps *Dependencies) error {
	n, err := build.RebuildTags(deps.Ctx, deps.Walker, deps.Tagger, deps.TagWriter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wenku.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Rebuilt tags of %d articles\n", n)
	return nil
}
