package main

import (
	"context"
	"errors"
	"os"

	"github.com/alnah/go-blogmd"
	"github.com/alnah/go-blogmd/internal/blog"
	"github.com/alnah/go-blogmd/internal/hints"
	"github.com/alnah/go-blogmd/internal/pipeline"
	"github.com/alnah/go-blogmd/internal/store"
)

// hintedError carries a hint chosen where the error occurred, when the
// hint depends on context such as the store path or category names.
type hintedError struct {
	err  error
	hint string
}

func (e *hintedError) Error() string {
	return e.err.Error() + e.hint
}

func (e *hintedError) Unwrap() error {
	return e.err
}

// withHint attaches hint to err. Nil errors and empty hints pass through.
func withHint(err error, hint string) error {
	if err == nil || hint == "" {
		return err
	}
	return &hintedError{err: err, hint: hint}
}

// errorHint returns the hint for errors that need no call-site context.
func errorHint(err error) string {
	switch {
	case errors.Is(err, blogmd.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, blogmd.ErrPageLoad):
		return hints.ForTimeout()
	case errors.Is(err, blogmd.ErrThemeNotFound):
		return hints.ForThemeNotFound(blogmd.Themes())
	case errors.Is(err, blogmd.ErrCustomThemeCSS):
		return hints.ForCustomTheme()
	case errors.Is(err, pipeline.ErrUnknownEngine):
		return hints.ForUnknownEngine(blogmd.Engines())
	case errors.Is(err, pipeline.ErrUnknownStyle):
		return hints.ForHighlightStyle()
	case errors.Is(err, blog.ErrInvalidColor):
		return hints.ForInvalidColor(paletteNames())
	case errors.Is(err, store.ErrCategoryInUse):
		return hints.ForCategoryInUse()
	case errors.Is(err, os.ErrPermission):
		return hints.ForStoreWrite()
	}
	return ""
}

// formatError renders err with its hint, if any.
func formatError(err error) string {
	var h *hintedError
	if errors.As(err, &h) {
		return err.Error()
	}
	return err.Error() + errorHint(err)
}

func paletteNames() []string {
	names := make([]string, len(blog.Palette))
	for i, c := range blog.Palette {
		names[i] = c.Name
	}
	return names
}
