// Package markdown implements the "lite" Markdown dialect used for article bodies.
//
// Render converts Markdown to an HTML fragment through a fixed sequence of
// substitution passes. Each pass is a pure string-to-string function and
// later passes rely on the HTML produced by earlier ones:
//
//  1. fenced code blocks (content trimmed and entity-escaped)
//  2. inline code
//  3. headers (###, ##, #)
//  4. horizontal rules (---)
//  5. emphasis (***, **, *)
//  6. blockquotes, one wrapper per line
//  7. tables
//  8. lists (only the first run of items is wrapped in <ul>)
//  9. paragraphs
//  10. cleanup of paragraph artifacts around block tags
//
// # Limitations
//
// The dialect is deliberately small. Nested lists and blockquotes are not
// supported, and consecutive quote lines are not merged. Passes after the
// first also run over the content of fenced code blocks.
//
// Each contiguous run of table rows becomes its own table, headed by its
// first row. Documents with several tables rely on this extension; there is
// no other table grammar.
//
// Only fenced code content is HTML-escaped. Prose, inline code, table cells
// and every other construct are emitted as-is, so the output must be
// sanitized by the caller before it is mounted into a live document when the
// Markdown comes from an untrusted source.
package markdown
