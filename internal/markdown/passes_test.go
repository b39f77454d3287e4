package markdown

import "testing"

type passCase struct {
	name     string
	input    string
	expected string
}

func runPassCases(t *testing.T, fnName string, pass Pass, tests []passCase) {
	t.Helper()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := pass(tt.input)
			if got != tt.expected {
				t.Errorf("%s(%q) = %q, want %q", fnName, tt.input, got, tt.expected)
			}
		})
	}
}

func TestFencedCodeBlocks(t *testing.T) {
	t.Parallel()

	runPassCases(t, "FencedCodeBlocks", FencedCodeBlocks, []passCase{
		{
			name:     "content trimmed and escaped",
			input:    "```\n  x < y  \n```",
			expected: "<pre><code>x &lt; y</code></pre>",
		},
		{
			name:     "surrounding text kept",
			input:    "before\n```js\na\n```\nafter",
			expected: "before\n<pre><code>a</code></pre>\nafter",
		},
		{
			name:     "two blocks matched non-greedily",
			input:    "```\na\n```\n```\nb\n```",
			expected: "<pre><code>a</code></pre>\n<pre><code>b</code></pre>",
		},
		{
			name:     "unterminated fence unchanged",
			input:    "```\nopen",
			expected: "```\nopen",
		},
		{
			name:     "multi-line content keeps newlines",
			input:    "```\nline1\nline2\n```",
			expected: "<pre><code>line1\nline2</code></pre>",
		},
	})
}

func TestInlineCode(t *testing.T) {
	t.Parallel()

	runPassCases(t, "InlineCode", InlineCode, []passCase{
		{
			name:     "two spans",
			input:    "`a` and `b`",
			expected: "<code>a</code> and <code>b</code>",
		},
		{
			name:     "empty span unchanged",
			input:    "``",
			expected: "``",
		},
		{
			name:     "single backtick unchanged",
			input:    "it`s",
			expected: "it`s",
		},
	})
}

func TestHeaders(t *testing.T) {
	t.Parallel()

	runPassCases(t, "Headers", Headers, []passCase{
		{
			name:     "all levels",
			input:    "# A\n## B\n### C",
			expected: "<h1>A</h1>\n<h2>B</h2>\n<h3>C</h3>",
		},
		{
			name:     "hash mid-line ignored",
			input:    "text # not",
			expected: "text # not",
		},
		{
			name:     "extra space kept in content",
			input:    "#  two spaces",
			expected: "<h1> two spaces</h1>",
		},
		{
			name:     "trailing hashes kept",
			input:    "## Title ##",
			expected: "<h2>Title ##</h2>",
		},
	})
}

func TestHorizontalRules(t *testing.T) {
	t.Parallel()

	runPassCases(t, "HorizontalRules", HorizontalRules, []passCase{
		{name: "exact rule", input: "---", expected: "<hr>"},
		{name: "four dashes unchanged", input: "----", expected: "----"},
		{name: "indented unchanged", input: " ---", expected: " ---"},
		{name: "rule between lines", input: "a\n---\nb", expected: "a\n<hr>\nb"},
	})
}

func TestEmphasis(t *testing.T) {
	t.Parallel()

	runPassCases(t, "Emphasis", Emphasis, []passCase{
		{
			name:     "all three forms",
			input:    "*a* **b** ***c***",
			expected: "<em>a</em> <strong>b</strong> <strong><em>c</em></strong>",
		},
		{
			name:     "unmatched delimiter unchanged",
			input:    "*a",
			expected: "*a",
		},
		{
			name:     "delimiters do not span lines",
			input:    "*a\nb*",
			expected: "*a\nb*",
		},
	})
}

func TestBlockquotes(t *testing.T) {
	t.Parallel()

	runPassCases(t, "Blockquotes", Blockquotes, []passCase{
		{
			name:     "one wrapper per line",
			input:    "> a\n> b",
			expected: "<blockquote><p>a</p></blockquote>\n<blockquote><p>b</p></blockquote>",
		},
		{
			name:     "missing space unchanged",
			input:    ">no space",
			expected: ">no space",
		},
	})
}

func TestTables(t *testing.T) {
	t.Parallel()

	runPassCases(t, "Tables", Tables, []passCase{
		{
			name:     "header separator body",
			input:    "|A|B|\n|---|---|\n|1|2|",
			expected: "<table><thead><tr><th>A</th><th>B</th></tr></thead><tbody><tr><td>1</td><td>2</td></tr></tbody></table>",
		},
		{
			name:     "cells trimmed",
			input:    "| a | b |\n| 1 | 2 |",
			expected: "<table><thead><tr><th>a</th><th>b</th></tr></thead><tbody><tr><td>1</td><td>2</td></tr></tbody></table>",
		},
		{
			name:     "table closed before following text",
			input:    "|A|\n|1|\nafter",
			expected: "<table><thead><tr><th>A</th></tr></thead><tbody><tr><td>1</td></tr></tbody></table>\nafter",
		},
		{
			name:     "separated tables each get a header",
			input:    "|A|\n|---|\n|1|\ntext\n|B|\n|2|",
			expected: "<table><thead><tr><th>A</th></tr></thead><tbody><tr><td>1</td></tr></tbody></table>\ntext\n<table><thead><tr><th>B</th></tr></thead><tbody><tr><td>2</td></tr></tbody></table>",
		},
		{
			name:     "lone separator emits nothing",
			input:    "|---|",
			expected: "",
		},
		{
			name:     "double pipe is not a row",
			input:    "||",
			expected: "||",
		},
		{
			name:     "pipe only at start is not a row",
			input:    "|a b",
			expected: "|a b",
		},
	})
}

func TestLists(t *testing.T) {
	t.Parallel()

	runPassCases(t, "Lists", Lists, []passCase{
		{
			name:     "single run wrapped",
			input:    "- one\n- two",
			expected: "<ul><li>one</li><li>two</li></ul>",
		},
		{
			name:     "text around run kept",
			input:    "intro\n- a\noutro",
			expected: "intro\n<ul><li>a</li></ul>\noutro",
		},
		{
			name:     "only first run wrapped",
			input:    "- a\ntext\n- b\n- c",
			expected: "<ul><li>a</li></ul>\ntext\n<li>b</li>\n<li>c</li>",
		},
		{
			name:     "empty item stays empty",
			input:    "- \n- b",
			expected: "<ul><li></li><li>b</li></ul>",
		},
		{
			name:     "dash without space unchanged",
			input:    "-a",
			expected: "-a",
		},
	})
}

func TestParagraphs(t *testing.T) {
	t.Parallel()

	runPassCases(t, "Paragraphs", Paragraphs, []passCase{
		{
			name:     "block starts left alone",
			input:    "a\n\n<h1>x</h1>\n<li>y</li>\n|z|\n---\n```\n<hr>\n<ul><li>q</li></ul>",
			expected: "<p>a</p>\n\n<h1>x</h1>\n<li>y</li>\n|z|\n---\n```\n<hr>\n<ul><li>q</li></ul>",
		},
		{
			name:     "unrecognised tags wrapped",
			input:    "<table></table>\n<blockquote>x</blockquote>",
			expected: "<p><table></table></p>\n<p><blockquote>x</blockquote></p>",
		},
		{
			name:     "whitespace-only line wrapped",
			input:    "  ",
			expected: "<p>  </p>",
		},
	})
}

func TestCleanup(t *testing.T) {
	t.Parallel()

	runPassCases(t, "Cleanup", Cleanup, []passCase{
		{name: "empty paragraph removed", input: "<p></p>", expected: ""},
		{name: "open paragraph before heading removed", input: "<p><h2>x</h2></p>", expected: "<h2>x</h2></p>"},
		{name: "open paragraph before list removed", input: "<p><ul><li>a</li></ul></p>", expected: "<ul><li>a</li></ul></p>"},
		{name: "prose ending in list keeps close", input: "<p>see <ul><li>a</li></ul></p>", expected: "<p>see <ul><li>a</li></ul></p>"},
		{name: "prose ending in heading keeps close", input: "<p>x <h1>y</h1></p>", expected: "<p>x <h1>y</h1></p>"},
		{name: "close after single-letter tag removed", input: "<p>a</h></p>", expected: "<p>a</h>"},
		{name: "inline tags untouched", input: "<p><em>x</em></p>", expected: "<p><em>x</em></p>"},
		{
			name:     "underline inside quote",
			input:    "<p><blockquote><p><u>x</u></p></blockquote></p>",
			expected: "<p><blockquote><u>x</u></blockquote></p>",
		},
	})
}
