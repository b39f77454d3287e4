package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/alnah/go-blogmd/internal/blog"
	"github.com/alnah/go-blogmd/internal/hints"
	"github.com/alnah/go-blogmd/internal/store"
)

func runDraft(ctx context.Context, args []string, env *Environment) error {
	return runSubcommand(ctx, "draft", map[string]command{
		"list":    runDraftList,
		"save":    runDraftSave,
		"publish": runDraftPublish,
		"delete":  runDraftDelete,
	}, args, env, printDraftUsage)
}

func runDraftList(_ context.Context, args []string, env *Environment) error {
	var common commonFlags
	var asJSON bool
	fs := newFlagSet("draft list", env.Stdout, printDraftUsage)
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
	drafts := repo.Drafts()
	if asJSON {
		return printJSON(env.Stdout, drafts)
	}
	if len(drafts) == 0 {
		logf(env, common, "No drafts")
		return nil
	}

	tw := tabwriter.NewWriter(env.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tUPDATED\tCATEGORY\tTITLE")
	for _, d := range drafts {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", shortID(d.ID), d.UpdatedAt, d.Category.Name, d.Title)
	}
	return tw.Flush()
}

// runDraftSave creates a draft, or updates the one named by --id. On update
// only the flags given change the draft.
func runDraftSave(_ context.Context, args []string, env *Environment) error {
	var common commonFlags
	var af articleFlags
	var id string
	fs := newFlagSet("draft save", env.Stdout, printDraftUsage)
	addCommonFlags(fs, &common)
	addArticleFlags(fs, &af)
	fs.StringVar(&id, "id", "", "draft to update (default: new draft)")

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

	var d blog.Draft
	if id != "" {
		if d, err = findDraft(repo, id); err != nil {
			return err
		}
	} else {
		d.Author = cfg.Article.DefaultAuthor
	}

	if id == "" || fs.Changed("title") {
		d.Title = af.title
	}
	if id == "" || fs.Changed("excerpt") {
		d.Excerpt = af.excerpt
	}
	if fs.Changed("author") {
		d.Author = af.author
	}
	if id == "" || fs.Changed("category") {
		if d.Category, err = findCategory(repo, af.category); err != nil {
			return err
		}
	}
	if af.file != "" {
		if d.Content, err = readContent(af.file, env); err != nil {
			return err
		}
	}

	d, err = repo.SaveDraft(d)
	if err != nil {
		return err
	}
	logf(env, common, "Saved draft %s (%s)", shortID(d.ID), d.Title)
	fmt.Fprintln(env.Stdout, d.ID)
	return nil
}

// runDraftPublish turns a draft into an article. Read time and an empty
// excerpt are derived from the content.
func runDraftPublish(ctx context.Context, args []string, env *Environment) error {
	var common commonFlags
	var readTime string
	fs := newFlagSet("draft publish", env.Stdout, printDraftUsage)
	addCommonFlags(fs, &common)
	fs.StringVar(&readTime, "read-time", "", "read time (\"\" = estimated)")

	pos, err := parseFlags(fs, args)
	if err != nil {
		return err
	}
	if err := wantArgs(pos, 1, "a draft ID"); err != nil {
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
	d, err := findDraft(repo, pos[0])
	if err != nil {
		return err
	}

	estimated, excerpt, err := estimate(ctx, env, cfg, d.Content)
	if err != nil {
		return err
	}
	if strings.TrimSpace(readTime) == "" {
		readTime = estimated
	}
	if strings.TrimSpace(d.Excerpt) == "" && excerpt != "" {
		d.Excerpt = excerpt
		if d, err = repo.SaveDraft(d); err != nil {
			return err
		}
	}

	a, err := repo.PublishDraft(d.ID, readTime)
	if err != nil {
		return err
	}
	logf(env, common, "Published %s as article %s", a.Title, shortID(a.ID))
	fmt.Fprintln(env.Stdout, a.ID)
	return nil
}

func runDraftDelete(_ context.Context, args []string, env *Environment) error {
	var common commonFlags
	fs := newFlagSet("draft delete", env.Stdout, printDraftUsage)
	addCommonFlags(fs, &common)

	pos, err := parseFlags(fs, args)
	if err != nil {
		return err
	}
	if err := wantArgs(pos, 1, "a draft ID"); err != nil {
		return err
	}

	repo, err := openStore(common, env)
	if err != nil {
		return err
	}
	d, err := findDraft(repo, pos[0])
	if err != nil {
		return err
	}
	if err := repo.DeleteDraft(d.ID); err != nil {
		return err
	}
	logf(env, common, "Deleted draft %s (%s)", shortID(d.ID), d.Title)
	return nil
}

// findDraft resolves a full or abbreviated draft ID.
func findDraft(repo *store.Repository, ref string) (blog.Draft, error) {
	drafts := repo.Drafts()
	ids := make([]string, len(drafts))
	for i, d := range drafts {
		ids[i] = d.ID
	}
	id, err := resolveID("draft", ids, ref)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return blog.Draft{}, withHint(err, hints.ForDraftNotFound())
		}
		return blog.Draft{}, err
	}
	return repo.FindDraft(id)
}
