package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/wenku"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	rec, err := deps.Articles.FindArticleByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wenku.ErrorMessage(err))
		return err
	}

	if c.JSON {
		data, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(deps.Stdout, string(data))
		return nil
	}

	a := rec.Article
	fmt.Fprintln(deps.Stdout, a.Title)
	if len(a.Authors) > 0 {
		fmt.Fprintln(deps.Stdout, strings.Join(a.Authors, "　"))
	}
	fmt.Fprintln(deps.Stdout, formatDates(a))
	for i, p := range a.Parts {
		text := wenku.RestorePivots(p.Text, i, a.CommentPivots)
		if p.Type == wenku.ContentTitle {
			text = "## " + text
		}
		fmt.Fprintf(deps.Stdout, "\n%s\n", text)
	}
	for i, comment := range a.Comments {
		fmt.Fprintf(deps.Stdout, "\n%s%d%s%s\n", wenku.BracketLeft, i+1, wenku.BracketRight, comment)
	}
	if len(rec.Tags) > 0 {
		names := make([]string, len(rec.Tags))
		for i, t := range rec.Tags {
			names[i] = t.Name
		}
		fmt.Fprintf(deps.Stdout, "\nTags: %s\n", strings.Join(names, ", "))
	}
	return nil
}
