package blogmd

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown  = errors.New("markdown content cannot be empty")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")

	// Page settings validation errors.
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")

	// Theme and asset errors.
	ErrThemeNotFound    = errors.New("theme not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrCustomThemeCSS   = errors.New(`theme "custom" requires CSS`)
	ErrInvalidAssetPath = errors.New("invalid asset path")

	// ErrPoolClosed is returned by Acquire after Close.
	ErrPoolClosed = errors.New("converter pool closed")

	// Option errors.
	ErrInvalidWordsPerMinute = errors.New("invalid words per minute")
)
