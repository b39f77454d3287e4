package blogmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alnah/go-blogmd/internal/assets"
	"github.com/alnah/go-blogmd/internal/dateutil"
	"github.com/alnah/go-blogmd/internal/fileutil"
	"github.com/alnah/go-blogmd/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.Preprocessor)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.LiteConverter)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.CSSInjector          = (*pipeline.CSSInjection)(nil)
)

// Converter orchestrates the article pipeline: Markdown, HTML fragment,
// themed page, PDF. Create with NewConverter, call Convert, and Close when
// done. A Converter owns at most one browser and is not safe for concurrent
// use; use a ConverterPool for parallel work.
type Converter struct {
	cfg           converterConfig
	assetLoader   assets.AssetLoader
	preprocessor  pipeline.MarkdownPreprocessor
	htmlConverter pipeline.HTMLConverter
	pageRenderer  *pipeline.PageRenderer
	cssInjector   pipeline.CSSInjector
	pdfConverter  pdfConverter

	themeName    string // data-theme attribute
	stylesheet   string // layout + theme + code highlighting
	needsUserCSS bool   // "custom" given without a stylesheet
}

// NewConverter creates a Converter. Theme, template, engine and date format
// problems are reported here rather than on the first Convert.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			timeout:       defaultTimeout,
			excerptLength: DefaultExcerptLength,
		},
		cssInjector: &pipeline.CSSInjection{},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.cfg.wordsPerMinute < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWordsPerMinute, c.cfg.wordsPerMinute)
	}
	if c.cfg.excerptLength < 0 {
		c.cfg.excerptLength = 0
	}
	if _, err := dateutil.Layout(c.cfg.dateFormat); err != nil {
		return nil, err
	}

	if c.assetLoader == nil {
		resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		c.assetLoader = resolver
	}

	htmlConverter, err := pipeline.NewHTMLConverter(c.cfg.engine)
	if err != nil {
		return nil, err
	}
	c.htmlConverter = htmlConverter
	c.preprocessor = &pipeline.Preprocessor{Highlights: pipeline.UsesHighlights(c.cfg.engine)}

	tmpl, err := c.assetLoader.LoadTemplate(assets.ArticleTemplateName)
	if err != nil {
		return nil, fmt.Errorf("loading article template: %w", err)
	}
	c.pageRenderer, err = pipeline.NewPageRenderer(tmpl)
	if err != nil {
		return nil, err
	}

	if err := c.buildStylesheet(); err != nil {
		return nil, err
	}

	if c.pdfConverter == nil {
		c.pdfConverter = newRodConverter(c.cfg.timeout)
	}

	return c, nil
}

// Theme returns the resolved theme name: an embedded theme or "custom".
func (c *Converter) Theme() string {
	return c.themeName
}

// Convert runs the pipeline and returns the page, the PDF unless
// input.HTMLOnly is set, and the derived read time and excerpt.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := c.validateInput(input); err != nil {
		return nil, err
	}

	mdContent := c.preprocessor.PreprocessMarkdown(ctx, input.Markdown)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fragment, err := c.htmlConverter.ToHTML(ctx, mdContent)
	if err != nil {
		return nil, fmt.Errorf("converting to HTML: %w", err)
	}

	text, err := pipeline.PlainText(fragment)
	if err != nil {
		return nil, fmt.Errorf("extracting text: %w", err)
	}
	words := pipeline.WordCount(text)
	lead, err := pipeline.FirstParagraph(fragment)
	if err != nil {
		return nil, fmt.Errorf("extracting text: %w", err)
	}
	if lead == "" {
		lead = text
	}

	res := &ConvertResult{
		Fragment: fragment,
		Words:    words,
		ReadTime: pipeline.EstimateReadTime(words, c.cfg.wordsPerMinute),
		Excerpt:  pipeline.Excerpt(lead, c.cfg.excerptLength),
	}
	data := c.pageData(input, text, res)

	pageFragment := fragment
	if input.SourceDir != "" {
		pageFragment, err = pipeline.ResolveLocalPaths(fragment, input.SourceDir)
		if err != nil {
			return nil, fmt.Errorf("resolving local paths: %w", err)
		}
	}

	page, err := c.pageRenderer.RenderPage(ctx, pageFragment, data)
	if err != nil {
		return nil, err
	}

	// User CSS comes last so it can override the theme.
	css := c.stylesheet
	if input.CSS != "" {
		css += "\n" + input.CSS
	}
	page = c.cssInjector.InjectCSS(ctx, page, css)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res.HTML = []byte(page)
	if input.HTMLOnly {
		return res, nil
	}

	pdfBytes, err := c.pdfConverter.ToPDF(ctx, page, input.Page)
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}
	res.PDF = pdfBytes
	return res, nil
}

// Close releases resources (headless Chrome browser).
func (c *Converter) Close() error {
	if c.pdfConverter != nil {
		return c.pdfConverter.Close()
	}
	return nil
}

// validateInput is the trust boundary for library users building Input by
// hand; CLI values were already checked by config validation.
func (c *Converter) validateInput(input Input) error {
	if strings.TrimSpace(input.Markdown) == "" {
		return ErrEmptyMarkdown
	}
	if err := input.Page.Validate(); err != nil {
		return err
	}
	if c.needsUserCSS && strings.TrimSpace(input.CSS) == "" {
		return ErrCustomThemeCSS
	}
	return nil
}

// pageData fills the template data. Explicit article values win over the
// derived read time and excerpt, and are reflected in res.
func (c *Converter) pageData(input Input, text string, res *ConvertResult) pipeline.PageData {
	data := pipeline.PageData{
		Theme:         c.themeName,
		Lang:          c.cfg.lang,
		DocumentTitle: input.Name,
	}
	if data.DocumentTitle == "" {
		data.DocumentTitle, _, _ = strings.Cut(text, "\n")
	}

	a := input.Article
	if a == nil {
		return data
	}
	if a.ReadTime != "" {
		res.ReadTime = a.ReadTime
	}
	if a.Excerpt != "" {
		res.Excerpt = a.Excerpt
	}

	data.Title = a.Title
	data.Excerpt = res.Excerpt
	data.Author = a.Author
	data.Date = c.formatDate(a.Date)
	data.Category = a.Category
	data.CategoryColor = a.CategoryColor
	data.ReadTime = res.ReadTime
	data.UpdatedAt = c.formatDate(a.UpdatedAt)
	return data
}

// formatDate formats a stored date for display, keeping values it cannot
// parse as they are.
func (c *Converter) formatDate(value string) string {
	if value == "" {
		return ""
	}
	formatted, err := dateutil.FormatArticleDate(value, c.cfg.dateFormat)
	if err != nil {
		return value
	}
	return formatted
}

// buildStylesheet concatenates the layout, the theme and, for the
// commonmark engine, the code highlighting CSS.
func (c *Converter) buildStylesheet() error {
	layout, err := c.assetLoader.LoadStyle(assets.LayoutStyleName)
	if err != nil {
		return fmt.Errorf("loading layout style: %w", err)
	}

	themeCSS, err := c.resolveTheme()
	if err != nil {
		return err
	}

	parts := []string{layout}
	if themeCSS != "" {
		parts = append(parts, themeCSS)
	}
	if pipeline.UsesHighlights(c.cfg.engine) {
		highlight, err := pipeline.HighlightCSS(c.cfg.highlightStyle)
		if err != nil {
			return err
		}
		parts = append(parts, highlight)
	}
	c.stylesheet = strings.Join(parts, "\n")
	return nil
}

// resolveTheme turns the theme option (name, "custom", path, or CSS
// content) into CSS and sets themeName.
func (c *Converter) resolveTheme() (string, error) {
	input := strings.TrimSpace(c.cfg.theme)

	switch {
	case input == "":
		input = DefaultTheme
	case strings.EqualFold(input, ThemeCustom):
		c.themeName = ThemeCustom
		c.needsUserCSS = true
		return "", nil
	case fileutil.IsFilePath(input):
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return "", fmt.Errorf("loading theme file %q: %w", input, err)
		}
		c.themeName = ThemeCustom
		return string(content), nil
	case fileutil.IsCSS(input):
		c.themeName = ThemeCustom
		return input, nil
	}

	name := strings.ToLower(input)
	if name == assets.LayoutStyleName {
		return "", fmt.Errorf("%w: %q", ErrThemeNotFound, input)
	}
	css, err := c.assetLoader.LoadStyle(name)
	if err != nil {
		if errors.Is(err, assets.ErrStyleNotFound) || errors.Is(err, assets.ErrInvalidAssetName) ||
			errors.Is(err, ErrThemeNotFound) {
			return "", fmt.Errorf("%w: %q", ErrThemeNotFound, input)
		}
		return "", fmt.Errorf("loading theme %q: %w", input, err)
	}
	c.themeName = name
	return css, nil
}
