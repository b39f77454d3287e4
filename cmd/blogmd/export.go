package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/alnah/go-blogmd"
	"github.com/alnah/go-blogmd/internal/blog"
	"github.com/alnah/go-blogmd/internal/config"
	"github.com/alnah/go-blogmd/internal/fileutil"
	"github.com/alnah/go-blogmd/internal/store"
)

// maxWorkers bounds --workers; each worker may own a browser.
const maxWorkers = 32

// exportFlags holds flags for the export command.
type exportFlags struct {
	common    commonFlags
	converter converterFlags
	page      pageFlags
	output    string
	format    string
	workers   int
}

// exportJob is one article and the paths its outputs go to.
type exportJob struct {
	article  blog.Article
	htmlPath string // empty = skip
	pdfPath  string // empty = skip
}

// exportResult holds the outcome of a single export.
type exportResult struct {
	ID       string
	Title    string
	Outputs  []string
	Err      error
	Duration time.Duration
}

// exportParams holds what every job shares.
type exportParams struct {
	css  string
	page *blogmd.PageSettings
}

// runExport renders stored articles to HTML pages and/or PDFs.
func runExport(ctx context.Context, args []string, env *Environment) error {
	var f exportFlags
	fs := newFlagSet("export", env.Stdout, printExportUsage)
	addCommonFlags(fs, &f.common)
	addConverterFlags(fs, &f.converter)
	addPageFlags(fs, &f.page)
	fs.StringVarP(&f.output, "output", "o", "", "output directory (default: output.defaultDir or .)")
	fs.StringVar(&f.format, "format", "", "html, pdf or both (default: output.format or html)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")

	ids, err := parseFlags(fs, args)
	if err != nil {
		return err
	}
	if f.workers < 0 || f.workers > maxWorkers {
		return fmt.Errorf("%w: %d (want 0-%d)", ErrInvalidWorkerCount, f.workers, maxWorkers)
	}

	cfg, err := loadSettings(f.common, env)
	if err != nil {
		return err
	}
	applyConverterFlags(f.converter, cfg)
	applyPageFlags(f.page, cfg)
	override(&cfg.Output.DefaultDir, f.output)
	override(&cfg.Output.Format, f.format)
	if err := cfg.Validate(); err != nil {
		return err
	}

	repo, err := openRepository(cfg, env)
	if err != nil {
		return err
	}
	articles, err := selectArticles(repo, ids)
	if err != nil {
		return err
	}
	if len(articles) == 0 {
		logf(env, f.common, "No articles to export")
		return nil
	}

	params := &exportParams{}
	if params.css, err = userCSS(cfg); err != nil {
		return err
	}
	format := strings.ToLower(cfg.Output.Format)
	if format == "" {
		format = config.FormatHTML
	}
	if format != config.FormatHTML {
		if params.page, err = pageSettings(cfg); err != nil {
			return err
		}
	}

	dir := config.ExpandHome(cfg.Output.DefaultDir)
	if dir == "" {
		dir = "."
	}
	if err := ensureDir(dir); err != nil {
		return err
	}
	jobs := planExport(articles, dir, format)

	size := resolveWorkers(f.workers)
	verbosef(env, f.common, "Pool size: %d", size)
	pool := env.NewPool(size, converterOptions(cfg)...)
	defer pool.Close()

	results := exportBatch(ctx, pool, jobs, params)
	failed, firstErr := printExportResults(results, f.common, env)
	if failed > 0 {
		return fmt.Errorf("%d export(s) failed: %w", failed, firstErr)
	}
	return nil
}

// resolveWorkers picks the pool size: --workers, then BLOGMD_WORKERS, then
// a CPU-based default.
func resolveWorkers(flagValue int) int {
	if flagValue > 0 {
		return flagValue
	}
	if env := loadEnvConfig(); env.Workers > 0 {
		return min(env.Workers, maxWorkers)
	}
	return blogmd.ResolvePoolSize(0)
}

// selectArticles returns the articles named by refs, or all of them.
func selectArticles(repo *store.Repository, refs []string) ([]blog.Article, error) {
	if len(refs) == 0 {
		return repo.Articles(), nil
	}
	out := make([]blog.Article, 0, len(refs))
	seen := make(map[string]bool, len(refs))
	for _, ref := range refs {
		a, err := findArticle(repo, ref)
		if err != nil {
			return nil, err
		}
		if seen[a.ID] {
			continue
		}
		seen[a.ID] = true
		out = append(out, a)
	}
	return out, nil
}

// planExport assigns output paths. Articles with the same title slug get the
// lowest numeric suffix not taken yet, so no file is written twice even when
// another title already slugs to a suffixed name.
func planExport(articles []blog.Article, dir, format string) []exportJob {
	taken := make(map[string]bool, len(articles))
	jobs := make([]exportJob, len(articles))
	for i, a := range articles {
		stem := uniqueStem(slugify(a.Title), taken)
		base := filepath.Join(dir, stem)

		jobs[i] = exportJob{article: a}
		if format == config.FormatHTML || format == config.FormatBoth {
			jobs[i].htmlPath = base + ".html"
		}
		if format == config.FormatPDF || format == config.FormatBoth {
			jobs[i].pdfPath = base + ".pdf"
		}
	}
	return jobs
}

// uniqueStem returns stem, or stem-N with the smallest N >= 2, that is not in
// taken, and marks the result as taken.
func uniqueStem(stem string, taken map[string]bool) string {
	name := stem
	for n := 2; taken[name]; n++ {
		name = stem + "-" + strconv.Itoa(n)
	}
	taken[name] = true
	return name
}

// exportBatch processes jobs concurrently. Results keep the job order.
func exportBatch(ctx context.Context, pool Pool, jobs []exportJob, params *exportParams) []exportResult {
	if len(jobs) == 0 {
		return nil
	}

	concurrency := min(pool.Size(), len(jobs))
	results := make([]exportResult, len(jobs))
	var wg sync.WaitGroup
	queue := make(chan int, len(jobs))

	for range concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()

			conv, err := pool.Acquire()
			if err != nil {
				// Converter creation failed, fail the jobs this worker takes.
				for idx := range queue {
					results[idx] = failedResult(jobs[idx], err)
				}
				return
			}
			defer pool.Release(conv)

			for idx := range queue {
				if ctx.Err() != nil {
					results[idx] = failedResult(jobs[idx], ctx.Err())
					continue
				}
				results[idx] = exportArticle(ctx, conv, jobs[idx], params)
			}
		}()
	}

	for i := range jobs {
		queue <- i
	}
	close(queue)

	wg.Wait()
	return results
}

func failedResult(job exportJob, err error) exportResult {
	return exportResult{ID: job.article.ID, Title: job.article.Title, Err: err}
}

// exportArticle converts one article and writes its outputs.
func exportArticle(ctx context.Context, conv Converter, job exportJob, params *exportParams) exportResult {
	start := time.Now()
	a := job.article
	result := exportResult{ID: a.ID, Title: a.Title}

	res, err := conv.Convert(ctx, blogmd.Input{
		Markdown: a.Content,
		Article: &blogmd.Article{
			Title:         a.Title,
			Excerpt:       a.Excerpt,
			Author:        a.Author,
			Date:          a.Date,
			Category:      a.Category.Name,
			CategoryColor: a.Category.Color,
			ReadTime:      a.ReadTime,
			UpdatedAt:     a.UpdatedAt,
		},
		CSS:      params.css,
		Page:     params.page,
		HTMLOnly: job.pdfPath == "",
	})
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	for _, out := range []struct {
		path string
		data []byte
	}{
		{job.htmlPath, res.HTML},
		{job.pdfPath, res.PDF},
	} {
		if out.path == "" {
			continue
		}
		if err := fileutil.WriteFileAtomic(out.path, out.data, fileutil.FilePermissions); err != nil {
			result.Err = fmt.Errorf("%w: %v", ErrWriteOutput, err)
			break
		}
		result.Outputs = append(result.Outputs, out.path)
	}

	result.Duration = time.Since(start)
	return result
}

// printExportResults reports each export and returns the failure count and
// the first error.
func printExportResults(results []exportResult, f commonFlags, env *Environment) (int, error) {
	var failed, succeeded int
	var firstErr error

	for _, r := range results {
		if r.Err != nil {
			failed++
			if firstErr == nil {
				firstErr = r.Err
			}
			fmt.Fprintf(env.Stderr, "FAILED %s (%s): %s\n", r.Title, shortID(r.ID), formatError(r.Err))
			continue
		}
		succeeded++

		if f.quiet {
			continue
		}
		for _, out := range r.Outputs {
			if f.verbose {
				fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.Title, out, r.Duration.Round(time.Millisecond))
			} else {
				fmt.Fprintf(env.Stdout, "Created %s\n", out)
			}
		}
	}

	if !f.quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", succeeded, failed)
	}
	return failed, firstErr
}
