package main

import (
	"context"
	"fmt"

	"github.com/alnah/go-blogmd/internal/blog"
)

// statsOutput is the JSON shape of the stats command.
type statsOutput struct {
	Articles         int `json:"articles"`
	Categories       int `json:"categories"`
	TotalReadMinutes int `json:"totalReadMinutes"`
	Drafts           int `json:"drafts"`
}

// runStats prints article, category, read time and draft totals.
func runStats(_ context.Context, args []string, env *Environment) error {
	var common commonFlags
	var asJSON bool
	fs := newFlagSet("stats", env.Stdout, printStatsUsage)
	addCommonFlags(fs, &common)
	fs.BoolVar(&asJSON, "json", false, "print JSON")

	pos, err := parseFlags(fs, args)
	if err != nil {
		return err
	}
	if err := wantArgs(pos, 0, "no arguments"); err != nil {
		return err
	}

	repo, err := openStore(common, env)
	if err != nil {
		return err
	}
	s := blog.ComputeStats(repo.Articles())
	out := statsOutput{
		Articles:         s.TotalArticles,
		Categories:       s.Categories,
		TotalReadMinutes: s.TotalReadMinutes,
		Drafts:           len(repo.Drafts()),
	}

	if asJSON {
		return printJSON(env.Stdout, out)
	}
	fmt.Fprintf(env.Stdout, "Articles:    %d\n", out.Articles)
	fmt.Fprintf(env.Stdout, "Categories:  %d\n", out.Categories)
	fmt.Fprintf(env.Stdout, "Read time:   %d min\n", out.TotalReadMinutes)
	fmt.Fprintf(env.Stdout, "Drafts:      %d\n", out.Drafts)
	return nil
}
