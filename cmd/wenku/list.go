package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/wenku"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := wenku.ArticleFilter{Offset: c.Offset, Limit: c.Limit}
	if c.Document != "" {
		filter.DocumentID = &c.Document
	}
	if c.Tag != "" {
		filter.Tag = &c.Tag
	}
	if c.Title != "" {
		filter.Title = &c.Title
	}

	records, err := deps.Articles.FindArticles(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wenku.ErrorMessage(err))
		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(deps.Stdout, "No articles found. Use 'wenku build --db' to index some.")
		return nil
	}

	for _, rec := range records {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s\n", rec.ArticleID, rec.DocumentID, formatDates(rec.Article), rec.Article.Title)
	}
	return nil
}

// formatDates joins the dates of a with "," or "~" for ranges.
func formatDates(a *wenku.Article) string {
	s := make([]string, len(a.Dates))
	for i, d := range a.Dates {
		s[i] = d.String()
	}
	sep := ","
	if a.IsRangeDate {
		sep = "~"
	}
	return strings.Join(s, sep)
}
