package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"regexp"
	"strings"
)

// ErrPageRender indicates the article template failed to execute.
var ErrPageRender = errors.New("page template rendering failed")

// DefaultLang is the page language when none is given.
const DefaultLang = "en"

var safeColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// PageData is the article metadata shown around the rendered content.
type PageData struct {
	Title         string
	Excerpt       string
	Author        string
	Date          string // already formatted for display
	Category      string
	CategoryColor string // #rrggbb; anything else is dropped
	ReadTime      string
	UpdatedAt     string
	Theme         string
	Lang          string

	// DocumentTitle names the page when Title is empty. The article header
	// is only rendered with a Title.
	DocumentTitle string
}

// pageView is what the template sees. Content is trusted HTML produced by
// one of the engines.
type pageView struct {
	PageData
	CategoryColor template.CSS
	Content       template.HTML
}

// PageRenderer wraps an HTML fragment in the article page template.
type PageRenderer struct {
	tmpl *template.Template
}

// NewPageRenderer parses the article template.
func NewPageRenderer(tmplContent string) (*PageRenderer, error) {
	tmpl, err := template.New("article").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("parsing article template: %w", err)
	}
	return &PageRenderer{tmpl: tmpl}, nil
}

// RenderPage executes the template with data around fragment.
func (p *PageRenderer) RenderPage(ctx context.Context, fragment string, data PageData) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	view := pageView{PageData: data, Content: template.HTML(fragment)} // #nosec G203 -- engine output
	if view.Lang == "" {
		view.Lang = DefaultLang
	}
	if safeColor.MatchString(data.CategoryColor) {
		view.CategoryColor = template.CSS(data.CategoryColor) // #nosec G203 -- validated hex
	}

	var buf bytes.Buffer
	if err := p.tmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("%w: %v", ErrPageRender, err)
	}
	return buf.String(), nil
}

// CSSInjector inserts CSS into an HTML document.
type CSSInjector interface {
	InjectCSS(ctx context.Context, htmlContent, cssContent string) string
}

// CSSInjection injects CSS as a <style> block.
type CSSInjection struct{}

// InjectCSS inserts a <style> block before </head>, else right after the
// opening <body> tag, else at the start of the document. Sequences that
// could close the style element early are escaped.
func (s *CSSInjection) InjectCSS(ctx context.Context, htmlContent, cssContent string) string {
	if cssContent == "" || ctx.Err() != nil {
		return htmlContent
	}

	styleBlock := "<style>" + sanitizeCSS(cssContent) + "</style>"
	lower := strings.ToLower(htmlContent)

	if idx := strings.Index(lower, "</head>"); idx != -1 {
		return htmlContent[:idx] + styleBlock + htmlContent[idx:]
	}
	if idx := strings.Index(lower, "<body"); idx != -1 {
		if end := strings.Index(htmlContent[idx:], ">"); end != -1 {
			pos := idx + end + 1
			return htmlContent[:pos] + styleBlock + htmlContent[pos:]
		}
	}
	return styleBlock + htmlContent
}

func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
