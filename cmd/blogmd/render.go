package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-blogmd"
	"github.com/alnah/go-blogmd/internal/config"
	"github.com/alnah/go-blogmd/internal/fileutil"
)

// renderFlags holds flags for the render command.
type renderFlags struct {
	common    commonFlags
	converter converterFlags
	page      pageFlags
	output    string
	fullPage  bool
	pdf       bool
}

// runRender converts one Markdown file (or stdin) to an HTML fragment, a
// themed page, or a PDF.
func runRender(ctx context.Context, args []string, env *Environment) error {
	var f renderFlags
	fs := newFlagSet("render", env.Stdout, printRenderUsage)
	addCommonFlags(fs, &f.common)
	addConverterFlags(fs, &f.converter)
	addPageFlags(fs, &f.page)
	fs.StringVarP(&f.output, "output", "o", "", "output file (default: stdout)")
	fs.BoolVar(&f.fullPage, "page", false, "wrap the fragment in a themed page")
	fs.BoolVar(&f.pdf, "pdf", false, "write a PDF (requires -o)")

	pos, err := parseFlags(fs, args)
	if err != nil {
		return err
	}
	if len(pos) > 1 {
		return fmt.Errorf("%w: render takes at most one input file", ErrUsage)
	}
	if f.pdf && f.output == "" {
		return fmt.Errorf("%w: --pdf requires -o/--output", ErrUsage)
	}

	path := "-"
	if len(pos) == 1 {
		path = pos[0]
	}

	cfg, err := loadSettings(f.common, env)
	if err != nil {
		return err
	}
	applyConverterFlags(f.converter, cfg)
	applyPageFlags(f.page, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	content, err := readContent(path, env)
	if err != nil {
		return err
	}

	start := time.Now()
	var out []byte
	if !f.fullPage && !f.pdf {
		fragment, err := blogmd.RenderFragment(ctx, cfg.Engine.Name, content)
		if err != nil {
			return err
		}
		out = []byte(fragment)
	} else {
		out, err = renderPage(ctx, env, cfg, f.pdf, content, path)
		if err != nil {
			return err
		}
	}
	verbosef(env, f.common, "rendered %s in %v", path, time.Since(start).Round(time.Millisecond))

	return writeOutput(env, f.common, f.output, out)
}

// renderPage builds a standalone page, or its PDF when --pdf is set.
func renderPage(ctx context.Context, env *Environment, cfg *config.Config, pdf bool, content, path string) ([]byte, error) {
	css, err := userCSS(cfg)
	if err != nil {
		return nil, err
	}
	input := blogmd.Input{
		Markdown: content,
		CSS:      css,
		HTMLOnly: !pdf,
	}
	if path != "-" {
		input.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		input.SourceDir = filepath.Dir(path)
	}
	if pdf {
		if input.Page, err = pageSettings(cfg); err != nil {
			return nil, err
		}
	}

	res, err := convertOne(ctx, env, converterOptions(cfg), input)
	if err != nil {
		return nil, err
	}
	if pdf {
		return res.PDF, nil
	}
	return res.HTML, nil
}

// writeOutput writes data to path atomically, or to stdout when path is
// empty.
func writeOutput(env *Environment, f commonFlags, path string, data []byte) error {
	if path == "" {
		_, err := env.Stdout.Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := ensureDir(dir); err != nil {
			return err
		}
	}
	if err := fileutil.WriteFileAtomic(path, data, fileutil.FilePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	logf(env, f, "Created %s", path)
	return nil
}
