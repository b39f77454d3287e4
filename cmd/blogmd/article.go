package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/alnah/go-blogmd/internal/blog"
	"github.com/alnah/go-blogmd/internal/config"
	"github.com/alnah/go-blogmd/internal/dateutil"
	"github.com/alnah/go-blogmd/internal/hints"
	"github.com/alnah/go-blogmd/internal/store"
	"github.com/alnah/go-blogmd/internal/yamlutil"
)

func runArticle(ctx context.Context, args []string, env *Environment) error {
	return runSubcommand(ctx, "article", map[string]command{
		"list":   runArticleList,
		"show":   runArticleShow,
		"create": runArticleCreate,
		"edit":   runArticleEdit,
		"delete": runArticleDelete,
	}, args, env, printArticleUsage)
}

// ---------------------------------------------------------------------------
// list
// ---------------------------------------------------------------------------

func runArticleList(_ context.Context, args []string, env *Environment) error {
	var common commonFlags
	var lf listFlags
	fs := newFlagSet("article list", env.Stdout, printArticleUsage)
	addCommonFlags(fs, &common)
	addListFlags(fs, &lf)

	pos, err := parseFlags(fs, args)
	if err != nil {
		return err
	}
	if err := wantArgs(pos, 0, "no arguments"); err != nil {
		return err
	}

	cfg, err := loadSettings(common, env)
	if err != nil {
		return err
	}
	repo, err := openRepository(cfg, env)
	if err != nil {
		return err
	}

	order := lf.sort
	if order == "" {
		order = cfg.Article.Sort
	}
	opt, err := blog.ParseSortOption(order)
	if err != nil {
		return err
	}

	articles := blog.Filter{Search: lf.search, Category: lf.category}.Apply(repo.Articles())
	articles = blog.Sort(articles, opt)

	if lf.json {
		return printJSON(env.Stdout, articles)
	}
	if len(articles) == 0 {
		logf(env, common, "No articles found")
		return nil
	}
	printArticleTable(env.Stdout, articles)
	return nil
}

func printArticleTable(w io.Writer, articles []blog.Article) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tCATEGORY\tREAD\tTITLE")
	for _, a := range articles {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", shortID(a.ID), a.Date, a.Category.Name, a.ReadTime, a.Title)
	}
	_ = tw.Flush()
}

// printJSON writes v as one line of JSON.
func printJSON(w io.Writer, v any) error {
	data, err := yamlutil.MarshalJSON(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, strings.TrimRight(string(data), "\n"))
	return err
}

// ---------------------------------------------------------------------------
// show
// ---------------------------------------------------------------------------

func runArticleShow(_ context.Context, args []string, env *Environment) error {
	var common commonFlags
	var asJSON bool
	fs := newFlagSet("article show", env.Stdout, printArticleUsage)
	addCommonFlags(fs, &common)
	fs.BoolVar(&asJSON, "json", false, "print JSON")

	pos, err := parseFlags(fs, args)
	if err != nil {
		return err
	}
	if err := wantArgs(pos, 1, "an article ID"); err != nil {
		return err
	}

	repo, err := openStore(common, env)
	if err != nil {
		return err
	}
	a, err := findArticle(repo, pos[0])
	if err != nil {
		return err
	}

	if asJSON {
		return printJSON(env.Stdout, a)
	}
	fmt.Fprintf(env.Stdout, "ID:        %s\n", a.ID)
	fmt.Fprintf(env.Stdout, "Title:     %s\n", a.Title)
	fmt.Fprintf(env.Stdout, "Author:    %s\n", a.Author)
	fmt.Fprintf(env.Stdout, "Date:      %s\n", a.Date)
	fmt.Fprintf(env.Stdout, "Category:  %s\n", a.Category.Name)
	fmt.Fprintf(env.Stdout, "Read time: %s\n", a.ReadTime)
	fmt.Fprintf(env.Stdout, "Excerpt:   %s\n", a.Excerpt)
	if a.UpdatedAt != "" {
		fmt.Fprintf(env.Stdout, "Updated:   %s\n", a.UpdatedAt)
	}
	fmt.Fprintln(env.Stdout)
	fmt.Fprintln(env.Stdout, a.Content)
	return nil
}

// ---------------------------------------------------------------------------
// create / edit
// ---------------------------------------------------------------------------

func runArticleCreate(ctx context.Context, args []string, env *Environment) error {
	var common commonFlags
	var af articleFlags
	fs := newFlagSet("article create", env.Stdout, printArticleUsage)
	addCommonFlags(fs, &common)
	addArticleFlags(fs, &af)

	pos, err := parseFlags(fs, args)
	if err != nil {
		return err
	}
	if err := wantArgs(pos, 0, "no arguments (use flags)"); err != nil {
		return err
	}

	cfg, err := loadSettings(common, env)
	if err != nil {
		return err
	}
	repo, err := openRepository(cfg, env)
	if err != nil {
		return err
	}

	a := blog.Article{
		Title:    af.title,
		Excerpt:  af.excerpt,
		Author:   af.author,
		ReadTime: af.readTime,
	}
	if a.Author == "" {
		a.Author = cfg.Article.DefaultAuthor
	}
	if a.Date, err = dateutil.ResolveDate(af.date, env.Now()); err != nil {
		return err
	}
	if a.Category, err = findCategory(repo, af.category); err != nil {
		return err
	}
	if af.file != "" {
		if a.Content, err = readContent(af.file, env); err != nil {
			return err
		}
	}
	if err := fillDerived(ctx, env, cfg, &a); err != nil {
		return err
	}

	a, err = repo.AddArticle(a)
	if err != nil {
		return err
	}
	logf(env, common, "Created article %s (%s)", shortID(a.ID), a.Title)
	fmt.Fprintln(env.Stdout, a.ID)
	return nil
}

func runArticleEdit(ctx context.Context, args []string, env *Environment) error {
	var common commonFlags
	var af articleFlags
	fs := newFlagSet("article edit", env.Stdout, printArticleUsage)
	addCommonFlags(fs, &common)
	addArticleFlags(fs, &af)

	pos, err := parseFlags(fs, args)
	if err != nil {
		return err
	}
	if err := wantArgs(pos, 1, "an article ID"); err != nil {
		return err
	}

	cfg, err := loadSettings(common, env)
	if err != nil {
		return err
	}
	repo, err := openRepository(cfg, env)
	if err != nil {
		return err
	}
	a, err := findArticle(repo, pos[0])
	if err != nil {
		return err
	}

	// Only flags given on the command line change the article.
	if fs.Changed("title") {
		a.Title = af.title
	}
	if fs.Changed("excerpt") {
		a.Excerpt = af.excerpt
	}
	if fs.Changed("author") {
		a.Author = af.author
	}
	if fs.Changed("read-time") {
		a.ReadTime = af.readTime
	}
	if fs.Changed("date") {
		if a.Date, err = dateutil.ResolveDate(af.date, env.Now()); err != nil {
			return err
		}
	}
	if fs.Changed("category") {
		if a.Category, err = findCategory(repo, af.category); err != nil {
			return err
		}
	}
	if fs.Changed("file") {
		if a.Content, err = readContent(af.file, env); err != nil {
			return err
		}
	}
	if err := fillDerived(ctx, env, cfg, &a); err != nil {
		return err
	}

	a, err = repo.UpdateArticle(a)
	if err != nil {
		return err
	}
	logf(env, common, "Updated article %s (%s)", shortID(a.ID), a.Title)
	return nil
}

// fillDerived estimates an empty read time or excerpt from the content.
func fillDerived(ctx context.Context, env *Environment, cfg *config.Config, a *blog.Article) error {
	if strings.TrimSpace(a.ReadTime) != "" && strings.TrimSpace(a.Excerpt) != "" {
		return nil
	}
	readTime, excerpt, err := estimate(ctx, env, cfg, a.Content)
	if err != nil {
		return err
	}
	if strings.TrimSpace(a.ReadTime) == "" {
		a.ReadTime = readTime
	}
	if strings.TrimSpace(a.Excerpt) == "" {
		a.Excerpt = excerpt
	}
	return nil
}

// ---------------------------------------------------------------------------
// delete
// ---------------------------------------------------------------------------

func runArticleDelete(_ context.Context, args []string, env *Environment) error {
	var common commonFlags
	fs := newFlagSet("article delete", env.Stdout, printArticleUsage)
	addCommonFlags(fs, &common)

	pos, err := parseFlags(fs, args)
	if err != nil {
		return err
	}
	if err := wantArgs(pos, 1, "an article ID"); err != nil {
		return err
	}

	repo, err := openStore(common, env)
	if err != nil {
		return err
	}
	a, err := findArticle(repo, pos[0])
	if err != nil {
		return err
	}
	if err := repo.DeleteArticle(a.ID); err != nil {
		return err
	}
	logf(env, common, "Deleted article %s (%s)", shortID(a.ID), a.Title)
	return nil
}

// ---------------------------------------------------------------------------
// Lookup helpers
// ---------------------------------------------------------------------------

// openStore loads settings and opens the repository for commands that need
// nothing else from the configuration.
func openStore(common commonFlags, env *Environment) (*store.Repository, error) {
	cfg, err := loadSettings(common, env)
	if err != nil {
		return nil, err
	}
	return openRepository(cfg, env)
}

// findArticle resolves a full or abbreviated article ID.
func findArticle(repo *store.Repository, ref string) (blog.Article, error) {
	articles := repo.Articles()
	ids := make([]string, len(articles))
	for i, a := range articles {
		ids[i] = a.ID
	}
	id, err := resolveID("article", ids, ref)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return blog.Article{}, withHint(err, hints.ForArticleNotFound())
		}
		return blog.Article{}, err
	}
	return repo.FindArticle(id)
}

// findCategory resolves a category name or ID to the reference stored on
// articles and drafts.
func findCategory(repo *store.Repository, ref string) (blog.Category, error) {
	if strings.TrimSpace(ref) == "" {
		return blog.Category{}, fmt.Errorf("%w: category", blog.ErrFieldRequired)
	}
	c, err := repo.FindCategory(ref)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return blog.Category{}, withHint(err, hints.ForCategoryNotFound(categoryNames(repo)))
		}
		return blog.Category{}, err
	}
	return c.Ref(), nil
}

func categoryNames(repo *store.Repository) []string {
	cats := repo.Categories()
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = c.Name
	}
	return names
}
