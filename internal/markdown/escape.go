package markdown

import "strings"

// codeEscaper escapes the four characters significant inside <pre><code>.
// strings.Replacer scans once, so "&" is never re-escaped in produced entities.
var codeEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

var codeUnescaper = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&amp;", "&",
)

// EscapeCode escapes &, <, > and " for fenced code content.
// Single quotes are left unchanged.
func EscapeCode(s string) string {
	return codeEscaper.Replace(s)
}

// UnescapeCode reverses EscapeCode for text that contained no entity
// sequences before escaping.
func UnescapeCode(s string) string {
	return codeUnescaper.Replace(s)
}
