// Package pipeline turns article Markdown into a themed HTML page.
//
// Stages, in the order the converter runs them:
//   - Markdown preprocessing (line endings, byte order mark, ==highlight==)
//   - Markdown to HTML fragment, with one of two engines:
//     "lite" (internal/markdown, the blog's own dialect) or
//     "commonmark" (goldmark with GFM and chroma highlighting)
//   - Text extraction from the fragment for read time and excerpts
//   - Local image and link resolution for PDF output
//   - Page assembly from the article template
//   - CSS injection
//
// PDF printing is handled by the root blogmd package with headless Chrome
// (go-rod). This package only produces HTML.
package pipeline
