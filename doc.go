// Package blogmd renders blog articles from Markdown to themed HTML pages
// and PDF.
//
// # Quick Start
//
// Render a fragment with the blog's own Markdown dialect:
//
//	html := blogmd.Render("# Hello\n\n**World**")
//
// Build a full page and print it:
//
//	conv, err := blogmd.NewConverter(blogmd.WithTheme("dark"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, blogmd.Input{
//	    Markdown: content,
//	    Article:  &blogmd.Article{Title: "Hello", Author: "Jane", Date: "2025-11-05"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("hello.pdf", result.PDF, 0o644)
//
// Set Input.HTMLOnly to skip the browser. The result also carries the word
// count, read time and excerpt derived from the rendered text.
//
// # Engines
//
// The "lite" engine (default) is a fixed sequence of substitution passes:
// fenced and inline code, # headers, ---, emphasis, > quotes, | tables,
// - lists and paragraphs. It has no nesting and escapes only fenced code.
// The "commonmark" engine uses goldmark with GFM, footnotes, ==highlight==
// and chroma code highlighting.
//
// # Themes
//
// Embedded themes set CSS variables consumed by a shared layout stylesheet.
// List them with Themes. The "custom" theme has no stylesheet and requires
// Input.CSS; WithTheme also accepts a CSS file path or CSS content.
//
// # Parallel Processing
//
// For batch export, use ConverterPool to manage multiple browser instances:
//
//	pool := blogmd.NewConverterPool(blogmd.ResolvePoolSize(0), blogmd.WithTheme("sepia"))
//	defer pool.Close()
//
//	conv, err := pool.Acquire()
//	if err != nil {
//	    return err
//	}
//	defer pool.Release(conv)
//
// # Browser Requirements
//
// PDF generation requires Chrome/Chromium. go-rod downloads a managed
// Chromium on first run (~/.cache/rod/browser/). In containers and CI set
// ROD_NO_SANDBOX=1; use ROD_BROWSER_BIN to pick a Chrome binary.
package blogmd
