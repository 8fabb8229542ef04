package main

import (
	"fmt"

	"github.com/fwojciec/wenku"
	"github.com/fwojciec/wenku/build"
)

// Run executes the ocr command.
func (c *OCRCmd) Run(deps *Dependencies) error {
	resources, err := selectResources(deps, c.Documents)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wenku.ErrorMessage(err))
		return err
	}

	result, err := deps.Builder.BuildCache(deps.Ctx, resources, progressPrinter(deps, "pages"))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wenku.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Recognized %d pages (%d failed)\n", result.Pages, result.Failed)
	if result.TimedOut {
		fmt.Fprintln(deps.Stdout, "Stopped at the deadline; run again to continue.")
	}
	return nil
}

// selectResources returns the records named by ids in the given order, or
// every record when ids is empty.
func selectResources(deps *Dependencies, ids []string) ([]*wenku.Resource, error) {
	if len(ids) == 0 {
		return deps.Resources.LoadResources(deps.Ctx)
	}
	resources := make([]*wenku.Resource, 0, len(ids))
	for _, id := range ids {
		r, err := deps.Resources.FindResource(deps.Ctx, id)
		if err != nil {
			return nil, err
		}
		resources = append(resources, r)
	}
	return resources, nil
}

func progressPrinter(deps *Dependencies, unit string) build.ProgressFunc {
	return func(event build.ProgressEvent) {
		switch event.Type {
		case build.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "  Found %d %s\n", event.Total, unit)
		case build.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", event.Item, wenku.ErrorMessage(event.Error))
		}
	}
}
