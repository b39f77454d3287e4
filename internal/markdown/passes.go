package markdown

import (
	"regexp"
	"strings"
)

// Precompiled patterns, one per regex-driven pass.
var (
	fencedCodePattern = regexp.MustCompile("```(\\w+)?\\n([\\s\\S]*?)```")
	inlineCodePattern = regexp.MustCompile("`([^`]+)`")

	h3Pattern = regexp.MustCompile(`(?m)^### (.*)$`)
	h2Pattern = regexp.MustCompile(`(?m)^## (.*)$`)
	h1Pattern = regexp.MustCompile(`(?m)^# (.*)$`)

	hrPattern = regexp.MustCompile(`(?m)^---$`)

	strongEmPattern = regexp.MustCompile(`\*\*\*(.*?)\*\*\*`)
	strongPattern   = regexp.MustCompile(`\*\*(.*?)\*\*`)
	emPattern       = regexp.MustCompile(`\*(.*?)\*`)

	blockquotePattern = regexp.MustCompile(`(?m)^> (.*)$`)

	openBeforeBlockPattern = regexp.MustCompile(`<p>(<[hul])`)
	closeAfterBlockPattern = regexp.MustCompile(`(</[hul]>)</p>`)
)

// blockPrefixes are the line starts the paragraph pass leaves alone.
var blockPrefixes = []string{
	"<h1", "<h2", "<h3", "<hr", "<ul", "<li",
	"```", "---", "|",
}

// FencedCodeBlocks converts ```lang\ncode``` blocks to <pre><code>.
// The content is trimmed and escaped; the language tag is dropped.
func FencedCodeBlocks(s string) string {
	return fencedCodePattern.ReplaceAllStringFunc(s, func(block string) string {
		m := fencedCodePattern.FindStringSubmatch(block)
		code := EscapeCode(strings.TrimSpace(m[2]))
		return "<pre><code>" + code + "</code></pre>"
	})
}

// InlineCode converts `code` spans to <code>. Content is not escaped.
func InlineCode(s string) string {
	return inlineCodePattern.ReplaceAllString(s, "<code>${1}</code>")
}

// Headers converts "### ", "## " and "# " line prefixes to h3, h2 and h1.
func Headers(s string) string {
	s = h3Pattern.ReplaceAllString(s, "<h3>${1}</h3>")
	s = h2Pattern.ReplaceAllString(s, "<h2>${1}</h2>")
	return h1Pattern.ReplaceAllString(s, "<h1>${1}</h1>")
}

// HorizontalRules converts lines consisting of exactly "---" to <hr>.
func HorizontalRules(s string) string {
	return hrPattern.ReplaceAllString(s, "<hr>")
}

// Emphasis converts ***, ** and * delimited spans, strongest first so a
// triple delimiter is never read as two nested ones.
func Emphasis(s string) string {
	s = strongEmPattern.ReplaceAllString(s, "<strong><em>${1}</em></strong>")
	s = strongPattern.ReplaceAllString(s, "<strong>${1}</strong>")
	return emPattern.ReplaceAllString(s, "<em>${1}</em>")
}

// Blockquotes wraps each "> " line in its own blockquote.
// Consecutive quote lines are not merged.
func Blockquotes(s string) string {
	return blockquotePattern.ReplaceAllString(s, "<blockquote><p>${1}</p></blockquote>")
}

// Tables converts runs of |cell|cell| lines into a table. The first row of a
// run becomes the header, separator rows (containing "---") are dropped and
// every row of a run is emitted on a single output line.
func Tables(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))

	var table strings.Builder
	inTable := false

	closeTable := func() {
		if !inTable {
			return
		}
		table.WriteString("</tbody></table>")
		out = append(out, table.String())
		table.Reset()
		inTable = false
	}

	for _, line := range lines {
		cells, ok := tableRow(line)
		if !ok {
			closeTable()
			out = append(out, line)
			continue
		}

		if strings.Contains(line, "---") {
			continue
		}

		if !inTable {
			table.WriteString("<table><thead><tr>")
			writeCells(&table, "th", cells)
			table.WriteString("</tr></thead><tbody>")
			inTable = true
			continue
		}

		table.WriteString("<tr>")
		writeCells(&table, "td", cells)
		table.WriteString("</tr>")
	}
	closeTable()

	return strings.Join(out, "\n")
}

// tableRow reports whether line is a table row and returns its trimmed cells.
// A row starts and ends with a pipe and has at least one character between.
func tableRow(line string) ([]string, bool) {
	if len(line) < 3 || line[0] != '|' || line[len(line)-1] != '|' {
		return nil, false
	}
	cells := strings.Split(line[1:len(line)-1], "|")
	for i, c := range cells {
		cells[i] = strings.TrimSpace(c)
	}
	return cells, true
}

func writeCells(b *strings.Builder, tag string, cells []string) {
	for _, c := range cells {
		b.WriteString("<" + tag + ">" + c + "</" + tag + ">")
	}
}

// Lists converts "- " lines to <li> items. The first contiguous run of items
// is wrapped in a single <ul> on one line; later runs are left unwrapped.
func Lists(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))

	var run []string
	wrapped := false

	flush := func() {
		if len(run) == 0 {
			return
		}
		if wrapped {
			out = append(out, run...)
		} else {
			out = append(out, "<ul>"+strings.Join(run, "")+"</ul>")
			wrapped = true
		}
		run = run[:0]
	}

	for _, line := range lines {
		if item, ok := strings.CutPrefix(line, "- "); ok {
			run = append(run, "<li>"+item+"</li>")
			continue
		}
		flush()
		out = append(out, line)
	}
	flush()

	return strings.Join(out, "\n")
}

// Paragraphs wraps every non-empty line that does not already start with a
// recognised block tag or raw block syntax in <p>.
func Paragraphs(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line == "" || hasBlockPrefix(line) {
			continue
		}
		lines[i] = "<p>" + line + "</p>"
	}
	return strings.Join(lines, "\n")
}

func hasBlockPrefix(line string) bool {
	for _, p := range blockPrefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}

// Cleanup removes empty paragraphs and any <p> directly before a tag opening
// with <h, <u or <l (headings, ul and li). A </p> is only dropped after the
// single-letter closers </h>, </u> and </l>, so a paragraph ending in </ul>
// or </h1> keeps its closing tag.
func Cleanup(s string) string {
	s = strings.ReplaceAll(s, "<p></p>", "")
	s = openBeforeBlockPattern.ReplaceAllString(s, "${1}")
	return closeAfterBlockPattern.ReplaceAllString(s, "${1}")
}
