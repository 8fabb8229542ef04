package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/wenku/fs"
)

// Run executes the schema command.
func (c *SchemaCmd) Run(deps *Dependencies) error {
	schema, err := fs.ResourceSchema()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(deps.Stdout, string(data))
	return nil
}
