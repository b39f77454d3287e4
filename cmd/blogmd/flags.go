package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	store   string
	quiet   bool
	verbose bool
}

// converterFlags select how articles are rendered.
type converterFlags struct {
	theme     string
	css       string
	engine    string
	highlight string
	assetPath string
	timeout   string
}

// pageFlags holds PDF page layout flags.
type pageFlags struct {
	size        string
	orientation string
	margin      float64
}

// articleFlags holds the article and draft form fields.
type articleFlags struct {
	title    string
	excerpt  string
	author   string
	date     string
	category string
	readTime string
	file     string
}

// listFlags filter and order article lists.
type listFlags struct {
	search   string
	category string
	sort     string
	json     bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVar(&f.store, "store", "", "article store file")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addConverterFlags adds theme and engine flags to a FlagSet.
func addConverterFlags(fs *flag.FlagSet, f *converterFlags) {
	fs.StringVar(&f.theme, "theme", "", "theme name, CSS file path, or \"custom\"")
	fs.StringVar(&f.css, "css", "", "extra CSS file applied after the theme")
	fs.StringVar(&f.engine, "engine", "", "markdown engine: lite, commonmark")
	fs.StringVar(&f.highlight, "highlight", "", "code highlight style (commonmark)")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF generation timeout (e.g., 30s, 2m)")
}

// addPageFlags adds page layout flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.size, "page-size", "p", "", "page size: letter, a4, legal")
	fs.StringVar(&f.orientation, "orientation", "", "page orientation: portrait, landscape")
	fs.Float64Var(&f.margin, "margin", 0, "page margin in inches (0.25-3.0)")
}

// addArticleFlags adds article form fields to a FlagSet.
func addArticleFlags(fs *flag.FlagSet, f *articleFlags) {
	fs.StringVar(&f.title, "title", "", "article title")
	fs.StringVar(&f.excerpt, "excerpt", "", "short summary (\"\" = from content)")
	fs.StringVar(&f.author, "author", "", "author name (default: article.defaultAuthor)")
	fs.StringVar(&f.date, "date", "", "publication date YYYY-MM-DD or \"today\"")
	fs.StringVar(&f.category, "category", "", "category name or ID")
	fs.StringVar(&f.readTime, "read-time", "", "read time, e.g. \"5 min\" (\"\" = estimated)")
	fs.StringVarP(&f.file, "file", "f", "", "markdown content file (- for stdin)")
}

// addListFlags adds filter and sort flags to a FlagSet.
func addListFlags(fs *flag.FlagSet, f *listFlags) {
	fs.StringVarP(&f.search, "search", "s", "", "search titles and excerpts")
	fs.StringVar(&f.category, "category", "", "only this category name")
	fs.StringVar(&f.sort, "sort", "", "date-newest, date-oldest, name-asc, name-desc")
	fs.BoolVar(&f.json, "json", false, "print JSON")
}

// newFlagSet creates a FlagSet whose -h prints usage to w.
func newFlagSet(name string, w io.Writer, usage func(io.Writer)) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() { usage(w) }
	return fs
}

// parseFlags parses args and returns the positional arguments. Parse
// errors wrap ErrUsage; -h/--help prints usage and returns flag.ErrHelp.
func parseFlags(fs *flag.FlagSet, args []string) ([]string, error) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return fs.Args(), nil
}
