package blogmd

import (
	"errors"

	"github.com/alnah/go-blogmd/internal/assets"
	"github.com/alnah/go-blogmd/internal/pipeline"
)

// Theme names with special meaning.
const (
	// DefaultTheme is used when no theme is configured.
	DefaultTheme = assets.DefaultStyleName

	// ThemeCustom has no stylesheet of its own; the page is styled by the
	// layout and the CSS passed in Input.CSS.
	ThemeCustom = "custom"
)

// Engine names accepted by WithEngine.
const (
	EngineLite       = pipeline.EngineLite
	EngineCommonMark = pipeline.EngineCommonMark
)

// AssetLoader loads CSS styles and the article page template by name.
// Implement it to serve assets from somewhere other than a directory.
type AssetLoader interface {
	// LoadStyle loads a stylesheet by name (without .css). The "layout"
	// stylesheet is always loaded; the others are themes.
	LoadStyle(name string) (string, error)

	// LoadTemplate loads a page template by name (without .html).
	LoadTemplate(name string) (string, error)
}

// NewAssetLoader creates an AssetLoader for the given base path.
// If basePath is empty, returns a loader using only embedded assets.
// If basePath is set, custom assets take precedence with fallback to embedded.
//
// The basePath directory may contain styles/{name}.css and
// templates/article.html.
//
// Returns ErrInvalidAssetPath if basePath is set but not a readable directory.
func NewAssetLoader(basePath string) (AssetLoader, error) {
	resolver, err := assets.NewAssetResolver(basePath)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return &assetLoaderAdapter{resolver: resolver}, nil
}

// WithAssetLoader serves styles and templates from l instead of the
// embedded assets. It takes precedence over WithAssetPath.
func WithAssetLoader(l AssetLoader) Option {
	return func(c *Converter) {
		c.assetLoader = l
	}
}

// Themes lists the embedded theme names, sorted, followed by ThemeCustom.
func Themes() []string {
	return append(assets.ListStyles(), ThemeCustom)
}

// Engines lists the Markdown engine names.
func Engines() []string {
	return pipeline.Engines()
}

// HighlightStyles lists the code highlighting styles of the commonmark engine.
func HighlightStyles() []string {
	return pipeline.HighlightStyles()
}

// HighlightCSS returns the stylesheet of a code highlighting style.
func HighlightCSS(style string) (string, error) {
	return pipeline.HighlightCSS(style)
}

// assetLoaderAdapter wraps the internal resolver to return public errors.
type assetLoaderAdapter struct {
	resolver *assets.AssetResolver
}

func (a *assetLoaderAdapter) LoadStyle(name string) (string, error) {
	content, err := a.resolver.LoadStyle(name)
	if err != nil {
		return "", convertAssetError(err)
	}
	return content, nil
}

func (a *assetLoaderAdapter) LoadTemplate(name string) (string, error) {
	content, err := a.resolver.LoadTemplate(name)
	if err != nil {
		return "", convertAssetError(err)
	}
	return content, nil
}

// convertAssetError maps internal asset errors to public errors.
func convertAssetError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, assets.ErrStyleNotFound), errors.Is(err, assets.ErrInvalidAssetName):
		return wrapError(ErrThemeNotFound, err)
	case errors.Is(err, assets.ErrTemplateNotFound):
		return wrapError(ErrTemplateNotFound, err)
	case errors.Is(err, assets.ErrInvalidBasePath), errors.Is(err, assets.ErrPathTraversal):
		return wrapError(ErrInvalidAssetPath, err)
	default:
		return err
	}
}

// wrapError keeps the original message while matching the public sentinel
// with errors.Is.
func wrapError(sentinel, original error) error {
	return &wrappedAssetError{sentinel: sentinel, original: original}
}

type wrappedAssetError struct {
	sentinel error
	original error
}

func (e *wrappedAssetError) Error() string {
	return e.original.Error()
}

// Unwrap returns the public sentinel only; internal errors stay hidden.
func (e *wrappedAssetError) Unwrap() error {
	return e.sentinel
}
