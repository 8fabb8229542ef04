package main

import (
	"fmt"

	"github.com/fwojciec/wenku"
)

// Run executes the init command.
func (c *InitCmd) Run(deps *Dependencies) error {
	r := &wenku.Resource{
		ID:       deps.NewID(),
		ParserID: c.Parser,
		Path:     c.Path,
		Entity:   map[string]any{},
		Options:  wenku.ParserOptions{Type: wenku.SourceType(c.Type)},
	}
	if err := deps.Resources.CreateResource(deps.Ctx, r); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wenku.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Created resource %s\n", r.ID)
	return nil
}
