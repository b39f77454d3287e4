package main

import (
	"context"
	"errors"
	"os"

	"github.com/alnah/go-blogmd"
	"github.com/alnah/go-blogmd/internal/blog"
	"github.com/alnah/go-blogmd/internal/config"
	"github.com/alnah/go-blogmd/internal/dateutil"
	"github.com/alnah/go-blogmd/internal/pipeline"
	"github.com/alnah/go-blogmd/internal/store"
)

// Exit codes for the blogmd CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Command succeeded
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File or store not readable/writable
	ExitBrowser = 4 // Browser/Chrome errors
)

// usageErrors are caller mistakes: bad flags, config, IDs or field values.
var usageErrors = []error{
	ErrUsage,
	ErrUnknownCommand,
	ErrInvalidWorkerCount,
	ErrAmbiguousID,
	config.ErrConfigNotFound,
	config.ErrConfigParse,
	config.ErrFieldTooLong,
	config.ErrInvalidValue,
	config.ErrEmptyConfigName,
	blogmd.ErrEmptyMarkdown,
	blogmd.ErrInvalidPageSize,
	blogmd.ErrInvalidOrientation,
	blogmd.ErrInvalidMargin,
	blogmd.ErrThemeNotFound,
	blogmd.ErrTemplateNotFound,
	blogmd.ErrCustomThemeCSS,
	blogmd.ErrInvalidAssetPath,
	blogmd.ErrInvalidWordsPerMinute,
	pipeline.ErrUnknownEngine,
	pipeline.ErrUnknownStyle,
	dateutil.ErrInvalidDateFormat,
	dateutil.ErrInvalidDate,
	blog.ErrFieldRequired,
	blog.ErrNameTooShort,
	blog.ErrInvalidColor,
	blog.ErrInvalidSort,
	store.ErrNotFound,
	store.ErrDuplicateCategory,
	store.ErrCategoryInUse,
}

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, blogmd.ErrBrowserConnect) ||
		errors.Is(err, blogmd.ErrPageCreate) ||
		errors.Is(err, blogmd.ErrPageLoad) ||
		errors.Is(err, blogmd.ErrPDFGeneration) ||
		errors.Is(err, context.DeadlineExceeded) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrReadCSS) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, store.ErrCorruptStore) ||
		errors.Is(err, store.ErrCorruptValue) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	for _, target := range usageErrors {
		if errors.Is(err, target) {
			return ExitUsage
		}
	}

	return ExitGeneral
}
