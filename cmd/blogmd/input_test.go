package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-blogmd/internal/store"
)

func TestResolveID(t *testing.T) {
	t.Parallel()

	ids := []string{
		"3f2a9c1e-0000-4000-8000-000000000001",
		"3f2a9c1e-0000-4000-8000-000000000002",
		"7b1d0e44-0000-4000-8000-000000000003",
		"ab",
	}

	tests := []struct {
		name    string
		ref     string
		want    string
		wantErr error
	}{
		{"exact", ids[2], ids[2], nil},
		{"unique prefix", "7b1d", ids[2], nil},
		{"prefix with spaces", "  7b1d0e ", ids[2], nil},
		{"short exact id", "ab", "ab", nil},
		{"too short prefix", "7b1", "", store.ErrNotFound},
		{"ambiguous", "3f2a9c1e", "", ErrAmbiguousID},
		{"no match", "ffff", "", store.ErrNotFound},
		{"empty", "", "", store.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := resolveID("article", ids, tt.ref)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolveID() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("resolveID() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestShortID(t *testing.T) {
	t.Parallel()

	if got := shortID("3f2a9c1e-0000-4000"); got != "3f2a9c1e" {
		t.Errorf("shortID() = %q", got)
	}
	if got := shortID("abc"); got != "abc" {
		t.Errorf("shortID(abc) = %q", got)
	}
}

func TestSlugify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		title string
		want  string
	}{
		{"React Hooks", "react-hooks"},
		{"  Go 1.25: What's New?  ", "go-1-25-what-s-new"},
		{"Élan vital", "élan-vital"},
		{"---", "article"},
		{"", "article"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			t.Parallel()
			if got := slugify(tt.title); got != tt.want {
				t.Errorf("slugify(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestReadContent(t *testing.T) {
	t.Parallel()

	t.Run("file", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "a.md", "# A")
		got, err := readContent(path, &Environment{})
		if err != nil || got != "# A" {
			t.Errorf("readContent() = %q, %v", got, err)
		}
	})

	t.Run("stdin", func(t *testing.T) {
		t.Parallel()

		got, err := readContent("-", &Environment{Stdin: strings.NewReader("from stdin")})
		if err != nil || got != "from stdin" {
			t.Errorf("readContent(-) = %q, %v", got, err)
		}
	})

	t.Run("too large", func(t *testing.T) {
		t.Parallel()

		big := strings.NewReader(strings.Repeat("x", maxContentSize+1))
		_, err := readContent("-", &Environment{Stdin: big})
		if !errors.Is(err, ErrReadMarkdown) {
			t.Errorf("error = %v, want ErrReadMarkdown", err)
		}
	})

	t.Run("missing", func(t *testing.T) {
		t.Parallel()

		_, err := readContent("/nonexistent/a.md", &Environment{})
		if !errors.Is(err, ErrReadMarkdown) {
			t.Errorf("error = %v, want ErrReadMarkdown", err)
		}
	})
}
