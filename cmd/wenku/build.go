package main

import (
	"fmt"

	"github.com/fwojciec/wenku"
)

// Run executes the build command.
func (c *BuildCmd) Run(deps *Dependencies) error {
	resources, err := selectResources(deps, c.Documents)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wenku.ErrorMessage(err))
		return err
	}

	result, err := deps.Builder.BuildArticles(deps.Ctx, resources, progressPrinter(deps, "documents"))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wenku.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Built %d articles from %d documents (%d failed)\n", result.Articles, result.Documents, result.Failed)
	if result.TimedOut {
		fmt.Fprintln(deps.Stdout, "Stopped at the deadline; run again to continue.")
	}
	return nil
}
