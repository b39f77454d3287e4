package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/alnah/go-blogmd/internal/markdown"
)

// Engine names accepted by NewHTMLConverter.
const (
	EngineLite       = "lite"
	EngineCommonMark = "commonmark"
)

// DefaultEngine renders articles the way the blog front end does.
const DefaultEngine = EngineLite

// DefaultHighlightStyle is the chroma style used for commonmark code blocks.
const DefaultHighlightStyle = "github"

// Sentinel errors for HTML conversion.
var (
	ErrHTMLConversion = errors.New("HTML conversion failed")
	ErrUnknownEngine  = errors.New("unknown markdown engine")
	ErrUnknownStyle   = errors.New("unknown highlight style")
)

// HTMLConverter turns Markdown into an HTML fragment.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// Engines lists the accepted engine names.
func Engines() []string {
	return []string{EngineLite, EngineCommonMark}
}

// NewHTMLConverter returns the converter for engine. An empty name selects
// DefaultEngine.
func NewHTMLConverter(engine string) (HTMLConverter, error) {
	switch strings.ToLower(strings.TrimSpace(engine)) {
	case "", EngineLite:
		return &LiteConverter{}, nil
	case EngineCommonMark:
		return NewGoldmarkConverter(), nil
	default:
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownEngine, engine, strings.Join(Engines(), ", "))
	}
}

// UsesHighlights reports whether engine understands ==highlight== marks.
func UsesHighlights(engine string) bool {
	return strings.EqualFold(strings.TrimSpace(engine), EngineCommonMark)
}

// LiteConverter renders with the blog's own Markdown dialect.
type LiteConverter struct{}

// ToHTML renders content with markdown.Render. It never fails except on a
// cancelled context.
func (c *LiteConverter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return markdown.Render(content), nil
}

// GoldmarkConverter renders CommonMark with GFM extensions and
// class-based chroma highlighting.
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// NewGoldmarkConverter creates a GoldmarkConverter.
func NewGoldmarkConverter() *GoldmarkConverter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true), // paired with HighlightCSS
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
			// Raw HTML in articles stays escaped; WithUnsafe is not set.
		),
	)
	return &GoldmarkConverter{md: md}
}

// ToHTML converts content to an HTML fragment. Goldmark has no context
// support, so conversion runs in a goroutine raced against ctx.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}
	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: ConvertMarkPlaceholders(buf.String())}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

// HighlightStyles lists the chroma style names accepted by HighlightCSS.
func HighlightStyles() []string {
	names := styles.Names()
	slices.Sort(names)
	return names
}

// HighlightCSS returns the stylesheet for code blocks produced by
// GoldmarkConverter, using the named chroma style.
func HighlightCSS(style string) (string, error) {
	if style == "" {
		style = DefaultHighlightStyle
	}
	s, ok := styles.Registry[style]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStyle, style)
	}
	return writeStyleCSS(s)
}

func writeStyleCSS(s *chroma.Style) (string, error) {
	var buf bytes.Buffer
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&buf, s); err != nil {
		return "", fmt.Errorf("writing highlight css: %w", err)
	}
	return buf.String(), nil
}
