package blogmd

import (
	"fmt"
	"strings"
	"time"
)

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 0.5
)

// PageSettings configures PDF page dimensions.
type PageSettings struct {
	Size        string  // "letter", "a4", "legal"
	Orientation string  // "portrait", "landscape"
	Margin      float64 // inches, applied to all sides
}

// DefaultPageSettings returns page settings with default values.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeLetter,
		Orientation: OrientationPortrait,
		Margin:      DefaultMargin,
	}
}

// Validate checks that page settings are valid.
// Returns nil if p is nil (nil means use defaults).
// Does not mutate - uses case-insensitive comparison.
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}

	if !isValidPageSize(p.Size) {
		return fmt.Errorf("%w: %q (must be letter, a4, or legal)", ErrInvalidPageSize, p.Size)
	}

	if !isValidOrientation(p.Orientation) {
		return fmt.Errorf("%w: %q (must be portrait or landscape)", ErrInvalidOrientation, p.Orientation)
	}

	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}

	return nil
}

// dimensions returns the paper width and height in inches, swapped for
// landscape.
func (p *PageSettings) dimensions() (width, height float64) {
	switch strings.ToLower(p.Size) {
	case PageSizeA4:
		width, height = 8.27, 11.69
	case PageSizeLegal:
		width, height = 8.5, 14
	default:
		width, height = 8.5, 11
	}
	if strings.EqualFold(p.Orientation, OrientationLandscape) {
		width, height = height, width
	}
	return width, height
}

// isValidPageSize checks if size is a known page size (case-insensitive).
func isValidPageSize(size string) bool {
	switch strings.ToLower(size) {
	case PageSizeLetter, PageSizeA4, PageSizeLegal:
		return true
	}
	return false
}

// isValidOrientation checks if orientation is valid (case-insensitive).
func isValidOrientation(orientation string) bool {
	switch strings.ToLower(orientation) {
	case OrientationPortrait, OrientationLandscape:
		return true
	}
	return false
}

// Article carries the metadata shown in the page header. Date is stored
// as YYYY-MM-DD and UpdatedAt as RFC 3339; both are formatted with the
// converter's date format.
type Article struct {
	Title         string
	Excerpt       string // empty = derived from the content
	Author        string
	Date          string
	Category      string
	CategoryColor string // #rrggbb
	ReadTime      string // empty = estimated from the content
	UpdatedAt     string
}

// Input contains conversion parameters.
type Input struct {
	Markdown  string        // Markdown content (required)
	Article   *Article      // Page header (optional, nil = content only)
	Name      string        // Page title when Article is nil (e.g. file name)
	SourceDir string        // Resolves relative image paths (optional)
	CSS       string        // Extra CSS appended after the theme (optional)
	Page      *PageSettings // Page settings (optional, nil = defaults)
	HTMLOnly  bool          // Skip PDF generation
}

// ConvertResult holds the outputs of a conversion.
type ConvertResult struct {
	HTML     []byte // Complete HTML page
	PDF      []byte // nil when Input.HTMLOnly is set
	Fragment string // Engine output before page assembly
	Words    int    // Word count of the visible text
	ReadTime string // Article.ReadTime, or the estimate
	Excerpt  string // Article.Excerpt, or the first words of the text
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout        time.Duration
	theme          string
	assetPath      string
	engine         string
	highlightStyle string
	wordsPerMinute int
	excerptLength  int
	dateFormat     string
	lang           string
}

// Defaults applied by NewConverter.
const (
	defaultTimeout       = 30 * time.Second
	DefaultExcerptLength = 160
)

// WithTimeout sets the PDF generation timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("blogmd: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithTheme selects the page theme: an embedded theme name, "custom",
// a path to a CSS file, or CSS content.
func WithTheme(theme string) Option {
	return func(c *Converter) {
		c.cfg.theme = theme
	}
}

// WithAssetPath loads styles and templates from dir, falling back to the
// embedded assets for anything it lacks.
func WithAssetPath(dir string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = dir
	}
}

// WithEngine selects the Markdown engine ("lite" or "commonmark").
func WithEngine(engine string) Option {
	return func(c *Converter) {
		c.cfg.engine = engine
	}
}

// WithHighlightStyle selects the chroma style for commonmark code blocks.
func WithHighlightStyle(style string) Option {
	return func(c *Converter) {
		c.cfg.highlightStyle = style
	}
}

// WithWordsPerMinute sets the reading speed behind read time estimates.
func WithWordsPerMinute(wpm int) Option {
	return func(c *Converter) {
		c.cfg.wordsPerMinute = wpm
	}
}

// WithExcerptLength sets the rune limit of derived excerpts. Zero keeps the
// whole first line.
func WithExcerptLength(n int) Option {
	return func(c *Converter) {
		c.cfg.excerptLength = n
	}
}

// WithDateFormat sets the display format of article dates: a preset name
// (iso, european, us, long, short, full) or tokens like "D MMMM YYYY".
func WithDateFormat(format string) Option {
	return func(c *Converter) {
		c.cfg.dateFormat = format
	}
}

// WithLang sets the page language attribute.
func WithLang(lang string) Option {
	return func(c *Converter) {
		c.cfg.lang = lang
	}
}
