package markdown

// Pass is a single substitution step of the conversion pipeline.
type Pass func(string) string

// passes is the fixed conversion order. Paragraph wrapping must run after
// every block construct has been tagged.
var passes = []Pass{
	FencedCodeBlocks,
	InlineCode,
	Headers,
	HorizontalRules,
	Emphasis,
	Blockquotes,
	Tables,
	Lists,
	Paragraphs,
	Cleanup,
}

// Passes returns the conversion pipeline in execution order.
// The returned slice is a copy; modifying it does not affect Render.
func Passes() []Pass {
	out := make([]Pass, len(passes))
	copy(out, passes)
	return out
}

// Render converts Markdown source to an HTML fragment.
// It never fails: unsupported or malformed syntax degrades to literal text.
// Render is safe for concurrent use.
func Render(src string) string {
	html := src
	for _, pass := range passes {
		html = pass(html)
	}
	return html
}
