package main

// Notes:
// - Commands run end to end against a temp store. Converters render real
//   HTML; PDFs are faked, so no test launches Chrome.
// - Tests that read BLOGMD_* variables use t.Setenv and cannot be parallel.

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-blogmd/internal/store"
)

// ---------------------------------------------------------------------------
// Dispatch
// ---------------------------------------------------------------------------

func TestRun_Dispatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{"no command", nil, ExitUsage, "", "Usage: blogmd"},
		{"unknown command", []string{"publish"}, ExitUsage, "", "unknown command"},
		{"version", []string{"version"}, ExitSuccess, "blogmd dev", ""},
		{"help", []string{"help"}, ExitSuccess, "Commands:", ""},
		{"help command", []string{"help", "export"}, ExitSuccess, "Usage: blogmd export", ""},
		{"help unknown", []string{"help", "nope"}, ExitUsage, "", "unknown command"},
		{"group without subcommand", []string{"article"}, ExitUsage, "", "needs a subcommand"},
		{"unknown subcommand", []string{"draft", "archive"}, ExitUsage, "", "unknown command"},
		{"subcommand help", []string{"category", "--help"}, ExitSuccess, "Usage: blogmd category", ""},
		{"flag help", []string{"render", "-h"}, ExitSuccess, "Usage: blogmd render", ""},
		{"bad flag", []string{"stats", "--nope"}, ExitUsage, "", "invalid usage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := newTestCLI(t)
			if code := c.run(tt.args...); code != tt.wantCode {
				t.Errorf("exit code = %d, want %d (stderr: %s)", code, tt.wantCode, c.stderr)
			}
			if !strings.Contains(c.stdout.String(), tt.wantStdout) {
				t.Errorf("stdout = %q, want it to contain %q", c.stdout, tt.wantStdout)
			}
			if !strings.Contains(c.stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want it to contain %q", c.stderr, tt.wantStderr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// render
// ---------------------------------------------------------------------------

func TestRender_FragmentFromStdin(t *testing.T) {
	t.Parallel()

	c := newTestCLI(t)
	c.env.Stdin = strings.NewReader("# Hi\n\n- one\n- two")

	if code := c.run("render"); code != ExitSuccess {
		t.Fatalf("exit %d: %s", code, c.stderr)
	}
	out := c.stdout.String()
	for _, want := range []string{"<h1>Hi</h1>", "<ul><li>one</li><li>two</li></ul>"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "<html") {
		t.Error("fragment should not be a full page")
	}
}

func TestRender_PageToFile(t *testing.T) {
	t.Parallel()

	c := newTestCLI(t)
	input := writeFile(t, "welcome-post.md", "# Welcome\n\nFirst post.")
	output := filepath.Join(t.TempDir(), "out", "welcome.html")

	if code := c.run("render", input, "--page", "--theme", "dark", "-o", output); code != ExitSuccess {
		t.Fatalf("exit %d: %s", code, c.stderr)
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	html := string(data)
	for _, want := range []string{`data-theme="dark"`, "<h1>Welcome</h1>", "welcome-post"} {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if !strings.Contains(c.stderr.String(), "Created "+output) {
		t.Errorf("stderr = %q, want Created message", c.stderr)
	}

	in := c.lastPool().inputs()
	if len(in) != 1 || in[0].SourceDir != filepath.Dir(input) || !in[0].HTMLOnly {
		t.Errorf("converter input = %+v", in)
	}
}

func TestRender_PDF(t *testing.T) {
	t.Parallel()

	c := newTestCLI(t)
	input := writeFile(t, "post.md", "Body")
	output := filepath.Join(t.TempDir(), "post.pdf")

	if code := c.run("render", input, "--pdf", "-p", "a4", "-o", output); code != ExitSuccess {
		t.Fatalf("exit %d: %s", code, c.stderr)
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != string(fakePDF) {
		t.Errorf("output = %q, want the PDF bytes", data)
	}
	if page := c.lastPool().inputs()[0].Page; page == nil || page.Size != "a4" {
		t.Errorf("page settings = %+v, want a4", page)
	}
}

func TestRender_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStderr string
	}{
		{"pdf without output", []string{"render", "--pdf"}, ExitUsage, "--pdf requires"},
		{"two inputs", []string{"render", "a.md", "b.md"}, ExitUsage, "at most one"},
		{"missing file", []string{"render", "/nonexistent/post.md"}, ExitIO, "failed to read markdown"},
		{"unknown engine", []string{"render", "--engine", "pandoc"}, ExitUsage, "engines: lite, commonmark"},
		{"unknown theme", []string{"render", "--page", "--theme", "neon"}, ExitUsage, "hint:"},
		{"bad page size", []string{"render", "--pdf", "-o", "x.pdf", "-p", "a5"}, ExitUsage, "page size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := newTestCLI(t)
			c.env.Stdin = strings.NewReader("text")
			if code := c.run(tt.args...); code != tt.wantCode {
				t.Errorf("exit code = %d, want %d (stderr: %s)", code, tt.wantCode, c.stderr)
			}
			if !strings.Contains(c.stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want it to contain %q", c.stderr, tt.wantStderr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// category
// ---------------------------------------------------------------------------

func TestCategory_Lifecycle(t *testing.T) {
	t.Parallel()

	c := newTestCLI(t)
	id := c.mustRun("category", "create", "Backend", "--description", "Servers and APIs", "--color", "#10B981")
	if id == "" {
		t.Fatal("create should print the new ID")
	}

	out := c.mustRun("category", "list")
	for _, want := range []string{"NAME", "Backend", "#10b981", "Servers and APIs", shortID(id)} {
		if !strings.Contains(out, want) {
			t.Errorf("list missing %q:\n%s", want, out)
		}
	}

	if code := c.runStore("category", "create", "backend"); code != ExitUsage {
		t.Errorf("duplicate create exit = %d, want %d", code, ExitUsage)
	}

	c.mustRun("category", "delete", "BACKEND")
	if out := c.mustRun("category", "list", "--json"); strings.Contains(out, "Backend") {
		t.Errorf("category still listed after delete: %s", out)
	}
}

func TestCategory_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStderr string
	}{
		{"name too short", []string{"category", "create", "A"}, ExitUsage, "name too short"},
		{"bad color", []string{"category", "create", "Ops", "--color", "mauve"}, ExitUsage, "one of: Blue"},
		{"missing name", []string{"category", "create"}, ExitUsage, "category name"},
		{"delete unknown", []string{"category", "delete", "Ghost"}, ExitUsage, "blogmd category create"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := newTestCLI(t)
			if code := c.runStore(tt.args...); code != tt.wantCode {
				t.Errorf("exit code = %d, want %d (stderr: %s)", code, tt.wantCode, c.stderr)
			}
			if !strings.Contains(c.stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want it to contain %q", c.stderr, tt.wantStderr)
			}
		})
	}
}

func TestCategory_DeleteInUse(t *testing.T) {
	t.Parallel()

	c := newTestCLI(t)
	seedBlog(t, c)

	if code := c.runStore("category", "delete", "Frontend"); code != ExitUsage {
		t.Errorf("exit code = %d, want %d", code, ExitUsage)
	}
	if !strings.Contains(c.stderr.String(), "edit or delete its articles first") {
		t.Errorf("stderr = %q, want the in-use hint", c.stderr)
	}
}

// ---------------------------------------------------------------------------
// article
// ---------------------------------------------------------------------------

func TestArticle_CreateDerivesReadTimeAndExcerpt(t *testing.T) {
	t.Parallel()

	c := newTestCLI(t)
	id := seedBlog(t, c)

	out := c.mustRun("article", "show", id[:8])
	for _, want := range []string{
		"Title:     React Hooks",
		"Author:    Sarah Johnson",
		"Date:      2025-11-01",
		"Category:  Frontend",
		"Read time: 1 min",
		"Excerpt:   Hooks let function components hold state.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("show missing %q:\n%s", want, out)
		}
	}

	in := c.lastPool().inputs()
	if len(in) != 1 || !in[0].HTMLOnly {
		t.Errorf("estimate should convert once without a PDF: %+v", in)
	}
}

func TestArticle_CreateDefaults(t *testing.T) {
	c := newTestCLI(t)
	t.Setenv("BLOGMD_AUTHOR", "Env Author")

	c.mustRun("category", "create", "Notes")
	c.env.Stdin = strings.NewReader("A short note.")
	id := c.mustRun("article", "create", "--title", "Note", "--category", "Notes",
		"--excerpt", "Custom", "--read-time", "3 min", "-f", "-")

	out := c.mustRun("article", "show", id, "--json")
	for _, want := range []string{"Env Author", "2025-11-05", "Custom", "3 min", "A short note."} {
		if !strings.Contains(out, want) {
			t.Errorf("json missing %q:\n%s", want, out)
		}
	}
	if len(c.pools) != 0 {
		t.Error("nothing to estimate: no converter should be created")
	}
}

func TestArticle_CreateErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStderr string
	}{
		{"missing fields", []string{"--title", "T", "--category", "Frontend"}, ExitUsage, "author"},
		{"unknown category", []string{"--title", "T", "--category", "Ghost"}, ExitUsage, "available: Frontend"},
		{"no category", []string{"--title", "T"}, ExitUsage, "category"},
		{
			"missing content",
			[]string{"--title", "T", "--category", "Frontend", "--author", "A", "--excerpt", "E", "--read-time", "1 min"},
			ExitUsage, "content",
		},
		{"bad date", []string{"--title", "T", "--category", "Frontend", "--date", "5/11/2025"}, ExitUsage, "invalid date"},
		{"missing file", []string{"--title", "T", "--category", "Frontend", "-f", "/nonexistent.md"}, ExitIO, "failed to read markdown"},
		{"positional", []string{"extra"}, ExitUsage, "no arguments"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := newTestCLI(t)
			c.mustRun("category", "create", "Frontend")
			args := append([]string{"article", "create"}, tt.args...)
			if code := c.runStore(args...); code != tt.wantCode {
				t.Errorf("exit code = %d, want %d (stderr: %s)", code, tt.wantCode, c.stderr)
			}
			if !strings.Contains(c.stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want it to contain %q", c.stderr, tt.wantStderr)
			}
		})
	}
}

func TestArticle_ListFiltersAndSorts(t *testing.T) {
	t.Parallel()

	c := newTestCLI(t)
	c.mustRun("category", "create", "Frontend")
	c.mustRun("category", "create", "Backend")
	body := writeFile(t, "body.md", "Some body text.")
	for _, a := range []struct{ title, cat, date string }{
		{"Beta", "Frontend", "2025-01-02"},
		{"Alpha", "Backend", "2025-03-01"},
		{"Gamma", "Frontend", "2024-12-31"},
	} {
		c.mustRun("article", "create", "--title", a.title, "--category", a.cat, "--date", a.date,
			"--author", "A", "--excerpt", a.title+" excerpt", "--read-time", "2 min", "--file", body)
	}

	tests := []struct {
		name  string
		args  []string
		order []string
	}{
		{"default newest first", nil, []string{"Alpha", "Beta", "Gamma"}},
		{"oldest first", []string{"--sort", "date-oldest"}, []string{"Gamma", "Beta", "Alpha"}},
		{"name desc", []string{"--sort", "name-desc"}, []string{"Gamma", "Beta", "Alpha"}},
		{"category", []string{"--category", "Frontend", "--sort", "name-asc"}, []string{"Beta", "Gamma"}},
		{"search", []string{"-s", "alp"}, []string{"Alpha"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := c.mustRun(append([]string{"article", "list"}, tt.args...)...)
			last := -1
			for _, title := range tt.order {
				i := strings.Index(out, title)
				if i < 0 {
					t.Fatalf("list missing %q:\n%s", title, out)
				}
				if i < last {
					t.Errorf("%q out of order:\n%s", title, out)
				}
				last = i
			}
			if got := strings.Count(out, "\n"); got != len(tt.order) {
				t.Errorf("list has %d rows, want %d:\n%s", got, len(tt.order), out)
			}
		})
	}

	if code := c.runStore("article", "list", "--sort", "random"); code != ExitUsage {
		t.Errorf("invalid sort exit = %d, want %d", code, ExitUsage)
	}
}

func TestArticle_EditAndDelete(t *testing.T) {
	t.Parallel()

	c := newTestCLI(t)
	id := seedBlog(t, c)
	c.mustRun("category", "create", "Backend", "--color", "red")

	c.mustRun("article", "edit", id, "--title", "Hooks in Depth", "--category", "backend")
	out := c.mustRun("article", "show", id)
	for _, want := range []string{
		"Title:     Hooks in Depth",
		"Category:  Backend",
		"Author:    Sarah Johnson",
		"Date:      2025-11-01",
		"Updated:   2025-11-05T10:00:00Z",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("show missing %q:\n%s", want, out)
		}
	}

	c.mustRun("article", "delete", id[:6])
	if code := c.runStore("article", "show", id); code != ExitUsage {
		t.Errorf("show after delete exit = %d, want %d", code, ExitUsage)
	}
	if !strings.Contains(c.stderr.String(), "blogmd article list") {
		t.Errorf("stderr = %q, want the not-found hint", c.stderr)
	}
}

func TestArticle_IDPrefix(t *testing.T) {
	t.Parallel()

	c := newTestCLI(t)
	id := seedBlog(t, c)

	if code := c.runStore("article", "show", id[:3]); code != ExitUsage {
		t.Errorf("3-character prefix exit = %d, want %d", code, ExitUsage)
	}
	if code := c.runStore("article", "show", id[:4]); code != ExitSuccess {
		t.Errorf("4-character prefix exit = %d, want %d: %s", code, ExitSuccess, c.stderr)
	}
}

// ---------------------------------------------------------------------------
// draft
// ---------------------------------------------------------------------------

func TestDraft_SaveAndPublish(t *testing.T) {
	t.Parallel()

	c := newTestCLI(t)
	c.mustRun("category", "create", "Frontend")
	id := c.mustRun("draft", "save", "--title", "WIP", "--category", "Frontend", "--author", "Sam")

	content := writeFile(t, "wip.md", "Signals replace most effects.")
	if got := c.mustRun("draft", "save", "--id", id[:8], "--file", content); got != id {
		t.Errorf("update printed %q, want %q", got, id)
	}

	out := c.mustRun("draft", "list")
	if !strings.Contains(out, "WIP") || !strings.Contains(out, shortID(id)) {
		t.Errorf("list = %q", out)
	}

	articleID := c.mustRun("draft", "publish", id)
	show := c.mustRun("article", "show", articleID)
	for _, want := range []string{
		"Title:     WIP",
		"Author:    Sam",
		"Date:      2025-11-05",
		"Read time: 1 min",
		"Excerpt:   Signals replace most effects.",
	} {
		if !strings.Contains(show, want) {
			t.Errorf("published article missing %q:\n%s", want, show)
		}
	}
	if out := c.mustRun("draft", "list", "--json"); strings.Contains(out, "WIP") {
		t.Errorf("draft should be removed after publish: %s", out)
	}
}

func TestDraft_PublishIncompleteKeepsDraft(t *testing.T) {
	t.Parallel()

	c := newTestCLI(t)
	c.mustRun("category", "create", "Frontend")
	id := c.mustRun("draft", "save", "--title", "Empty", "--category", "Frontend")

	if code := c.runStore("draft", "publish", id); code != ExitUsage {
		t.Errorf("exit code = %d, want %d (stderr: %s)", code, ExitUsage, c.stderr)
	}
	if out := c.mustRun("draft", "list"); !strings.Contains(out, "Empty") {
		t.Errorf("draft should be kept: %s", out)
	}
}

func TestDraft_Delete(t *testing.T) {
	t.Parallel()

	c := newTestCLI(t)
	c.mustRun("category", "create", "Frontend")
	id := c.mustRun("draft", "save", "--title", "Gone", "--category", "Frontend")

	c.mustRun("draft", "delete", id)
	if code := c.runStore("draft", "delete", id); code != ExitUsage {
		t.Errorf("second delete exit = %d, want %d", code, ExitUsage)
	}
	if !strings.Contains(c.stderr.String(), "blogmd draft list") {
		t.Errorf("stderr = %q, want the not-found hint", c.stderr)
	}
}

// ---------------------------------------------------------------------------
// stats
// ---------------------------------------------------------------------------

func TestStats(t *testing.T) {
	t.Parallel()

	c := newTestCLI(t)
	seedBlog(t, c)
	c.mustRun("draft", "save", "--title", "Next", "--category", "Frontend")

	out := c.mustRun("stats")
	for _, want := range []string{"Articles:    1", "Categories:  1", "Read time:   1 min", "Drafts:      1"} {
		if !strings.Contains(out, want) {
			t.Errorf("stats missing %q:\n%s", want, out)
		}
	}

	out = c.mustRun("stats", "--json")
	if !strings.Contains(out, "totalReadMinutes") {
		t.Errorf("json stats = %s", out)
	}
}

// ---------------------------------------------------------------------------
// Store and config errors
// ---------------------------------------------------------------------------

func TestCorruptStore(t *testing.T) {
	t.Parallel()

	c := newTestCLI(t)
	if err := os.WriteFile(c.store, []byte("articles: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}

	if code := c.runStore("stats"); code != ExitIO {
		t.Errorf("exit code = %d, want %d (stderr: %s)", code, ExitIO, c.stderr)
	}
	if !strings.Contains(c.stderr.String(), c.store) {
		t.Errorf("stderr = %q, want the store path in the hint", c.stderr)
	}
}

func TestConfigFile(t *testing.T) {
	t.Parallel()

	c := newTestCLI(t)
	cfg := writeFile(t, "blog.yaml", "article:\n  defaultAuthor: Config Author\n  sort: name-asc\n")
	c.mustRun("category", "create", "Frontend")
	id := c.mustRun("article", "create", "-c", cfg, "--title", "T", "--category", "Frontend",
		"--excerpt", "E", "--read-time", "1 min", "--file", writeFile(t, "t.md", "Body."))

	if out := c.mustRun("article", "show", id); !strings.Contains(out, "Config Author") {
		t.Errorf("author from config missing:\n%s", out)
	}

	if code := c.runStore("stats", "-c", "does-not-exist"); code != ExitUsage {
		t.Errorf("missing config exit = %d, want %d", code, ExitUsage)
	}
	if !strings.Contains(c.stderr.String(), "does-not-exist.yaml") {
		t.Errorf("stderr = %q, want searched paths", c.stderr)
	}
}

func TestStoreEnvVar(t *testing.T) {
	c := newTestCLI(t)
	t.Setenv("BLOGMD_STORE", c.store)

	if code := c.run("category", "create", "Frontend"); code != ExitSuccess {
		t.Fatalf("exit %d: %s", code, c.stderr)
	}
	s, err := store.Open(c.store)
	if err != nil {
		t.Fatal(err)
	}
	if len(store.NewRepository(s).Categories()) != 1 {
		t.Error("category should be written to BLOGMD_STORE")
	}
}
