package assets

// Names of the built-in assets.
const (
	// LayoutStyleName is the shared layout stylesheet, not a theme.
	LayoutStyleName = "layout"

	// DefaultStyleName is the theme used when none is configured.
	DefaultStyleName = "light"

	// ArticleTemplateName is the page template for a single article.
	ArticleTemplateName = "article"
)

// AssetLoader loads CSS styles and HTML templates by name.
type AssetLoader interface {
	// LoadStyle loads a stylesheet by name, without the .css extension.
	// Returns ErrStyleNotFound or ErrInvalidAssetName.
	LoadStyle(name string) (string, error)

	// LoadTemplate loads an HTML template by name, without the .html extension.
	// Returns ErrTemplateNotFound or ErrInvalidAssetName.
	LoadTemplate(name string) (string, error)
}
