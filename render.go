package blogmd

import (
	"context"

	"github.com/alnah/go-blogmd/internal/markdown"
	"github.com/alnah/go-blogmd/internal/pipeline"
)

// Render converts Markdown to an HTML fragment with the lite dialect, the
// way the blog displays articles. It never fails. The output is not
// sanitised: only fenced code is escaped.
func Render(src string) string {
	return markdown.Render(src)
}

// RenderFragment preprocesses src (line endings, byte order mark, and
// ==highlight== for commonmark) and renders it with the named engine.
// An empty engine selects the lite dialect.
func RenderFragment(ctx context.Context, engine, src string) (string, error) {
	conv, err := pipeline.NewHTMLConverter(engine)
	if err != nil {
		return "", err
	}
	pre := &pipeline.Preprocessor{Highlights: pipeline.UsesHighlights(engine)}
	return conv.ToHTML(ctx, pre.PreprocessMarkdown(ctx, src))
}
