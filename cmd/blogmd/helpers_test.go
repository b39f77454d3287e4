package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alnah/go-blogmd"
)

// fakePDF is what fakeConverter returns in place of a printed PDF.
var fakePDF = []byte("%PDF-1.7 fake")

// testNow is the clock of every test environment.
var testNow = time.Date(2025, 11, 5, 10, 0, 0, 0, time.UTC)

// fakeConverter renders HTML with a real converter and fakes the PDF, so
// no browser is needed.
type fakeConverter struct {
	conv *blogmd.Converter
	err  error

	mu     sync.Mutex
	inputs []blogmd.Input
}

func (f *fakeConverter) Convert(ctx context.Context, input blogmd.Input) (*blogmd.ConvertResult, error) {
	f.mu.Lock()
	f.inputs = append(f.inputs, input)
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	wantPDF := !input.HTMLOnly
	input.HTMLOnly = true
	res, err := f.conv.Convert(ctx, input)
	if err != nil {
		return nil, err
	}
	if wantPDF {
		res.PDF = fakePDF
	}
	return res, nil
}

// fakePool hands out fakeConverters built with the pool options.
type fakePool struct {
	size       int
	opts       []blogmd.Option
	acquireErr error
	convertErr error

	mu       sync.Mutex
	convs    []*fakeConverter
	acquired int
	released int
	closed   bool
}

func (p *fakePool) Acquire() (Converter, error) {
	if p.acquireErr != nil {
		return nil, p.acquireErr
	}
	conv, err := blogmd.NewConverter(p.opts...)
	if err != nil {
		return nil, err
	}
	fc := &fakeConverter{conv: conv, err: p.convertErr}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.convs = append(p.convs, fc)
	p.acquired++
	return fc, nil
}

func (p *fakePool) Release(Converter) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.released++
}

func (p *fakePool) Size() int { return p.size }

func (p *fakePool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	var errs []error
	for _, fc := range p.convs {
		errs = append(errs, fc.conv.Close())
	}
	return errors.Join(errs...)
}

// inputs returns every input converted through the pool.
func (p *fakePool) inputs() []blogmd.Input {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []blogmd.Input
	for _, fc := range p.convs {
		fc.mu.Lock()
		out = append(out, fc.inputs...)
		fc.mu.Unlock()
	}
	return out
}

// testCLI runs commands against a temp store with fake converters.
type testCLI struct {
	t      *testing.T
	env    *Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	store  string

	mu    sync.Mutex
	pools []*fakePool

	// Applied to each new pool.
	acquireErr error
	convertErr error
}

func newTestCLI(t *testing.T) *testCLI {
	t.Helper()
	c := &testCLI{
		t:      t,
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		store:  filepath.Join(t.TempDir(), "store.yaml"),
	}
	c.env = &Environment{
		Now:    func() time.Time { return testNow },
		Stdin:  strings.NewReader(""),
		Stdout: c.stdout,
		Stderr: c.stderr,
		NewPool: func(size int, opts ...blogmd.Option) Pool {
			p := &fakePool{size: size, opts: opts, acquireErr: c.acquireErr, convertErr: c.convertErr}
			c.mu.Lock()
			c.pools = append(c.pools, p)
			c.mu.Unlock()
			return p
		},
	}
	return c
}

// run executes a command and returns its exit code. Output buffers are
// reset first.
func (c *testCLI) run(args ...string) int {
	c.t.Helper()
	c.stdout.Reset()
	c.stderr.Reset()
	return run(context.Background(), args, c.env)
}

// runStore is run with --store pointing at the temp store.
func (c *testCLI) runStore(args ...string) int {
	c.t.Helper()
	return c.run(append(args, "--store", c.store)...)
}

// mustRun fails the test unless the command succeeds, and returns stdout
// with the trailing newline removed.
func (c *testCLI) mustRun(args ...string) string {
	c.t.Helper()
	if code := c.runStore(args...); code != ExitSuccess {
		c.t.Fatalf("%v: exit %d, stderr:\n%s", args, code, c.stderr.String())
	}
	return strings.TrimSpace(c.stdout.String())
}

// lastPool returns the most recently created pool.
func (c *testCLI) lastPool() *fakePool {
	c.t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.pools) == 0 {
		c.t.Fatal("no converter pool was created")
	}
	return c.pools[len(c.pools)-1]
}

// writeFile writes content to a temp file and returns its path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

// seedBlog creates a category and one article, returning the article ID.
func seedBlog(t *testing.T, c *testCLI) string {
	t.Helper()
	c.mustRun("category", "create", "Frontend", "--color", "green")
	content := writeFile(t, "hooks.md", "Hooks let function components hold state.")
	return c.mustRun("article", "create",
		"--title", "React Hooks",
		"--author", "Sarah Johnson",
		"--category", "frontend",
		"--date", "2025-11-01",
		"--file", content,
	)
}
