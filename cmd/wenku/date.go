package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/wenku"
)

// Run executes the date command.
func (c *DateCmd) Run(deps *Dependencies) error {
	dates := wenku.ExtractDatesWithOptions(c.Text, wenku.DateOptions{RemoveUnknowns: c.RemoveUnknowns})
	data, err := json.MarshalIndent(dates, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(deps.Stdout, string(data))
	return nil
}
