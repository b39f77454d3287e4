package main

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/alnah/go-blogmd/internal/blog"
	"github.com/alnah/go-blogmd/internal/hints"
	"github.com/alnah/go-blogmd/internal/store"
)

func runCategory(ctx context.Context, args []string, env *Environment) error {
	return runSubcommand(ctx, "category", map[string]command{
		"list":   runCategoryList,
		"create": runCategoryCreate,
		"delete": runCategoryDelete,
	}, args, env, printCategoryUsage)
}

func runCategoryList(_ context.Context, args []string, env *Environment) error {
	var common commonFlags
	var asJSON bool
	fs := newFlagSet("category list", env.Stdout, printCategoryUsage)
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
	cats := repo.Categories()
	if asJSON {
		return printJSON(env.Stdout, cats)
	}
	if len(cats) == 0 {
		logf(env, common, "No categories yet; create one with 'blogmd category create NAME'")
		return nil
	}

	usage := make(map[string]int, len(cats))
	for _, a := range repo.Articles() {
		usage[a.Category.ID]++
	}

	tw := tabwriter.NewWriter(env.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tCOLOR\tARTICLES\tID\tDESCRIPTION")
	for _, c := range cats {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", c.Name, c.Color, usage[c.ID], shortID(c.ID), c.Description)
	}
	return tw.Flush()
}

func runCategoryCreate(_ context.Context, args []string, env *Environment) error {
	var common commonFlags
	var description, color string
	fs := newFlagSet("category create", env.Stdout, printCategoryUsage)
	addCommonFlags(fs, &common)
	fs.StringVar(&description, "description", "", "category description")
	fs.StringVar(&color, "color", "", "palette name or #rrggbb (default: Blue)")

	pos, err := parseFlags(fs, args)
	if err != nil {
		return err
	}
	if err := wantArgs(pos, 1, "a category name"); err != nil {
		return err
	}

	hex, err := blog.ResolveColor(color)
	if err != nil {
		return err
	}
	repo, err := openStore(common, env)
	if err != nil {
		return err
	}

	c, err := repo.AddCategory(blog.Category{Name: pos[0], Description: description, Color: hex})
	if err != nil {
		return err
	}
	logf(env, common, "Created category %s (%s)", c.Name, c.Color)
	fmt.Fprintln(env.Stdout, c.ID)
	return nil
}

func runCategoryDelete(_ context.Context, args []string, env *Environment) error {
	var common commonFlags
	fs := newFlagSet("category delete", env.Stdout, printCategoryUsage)
	addCommonFlags(fs, &common)

	pos, err := parseFlags(fs, args)
	if err != nil {
		return err
	}
	if err := wantArgs(pos, 1, "a category name or ID"); err != nil {
		return err
	}

	repo, err := openStore(common, env)
	if err != nil {
		return err
	}
	if err := repo.DeleteCategory(pos[0]); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return withHint(err, hints.ForCategoryNotFound(categoryNames(repo)))
		}
		return err
	}
	logf(env, common, "Deleted category %s", pos[0])
	return nil
}
