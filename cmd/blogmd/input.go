package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/alnah/go-blogmd/internal/store"
)

// maxContentSize bounds Markdown read from a file or stdin (10MB).
const maxContentSize = 10 << 20

// minIDPrefix is the shortest ID prefix accepted in place of a full ID.
const minIDPrefix = 4

// shortIDLength is how much of an ID the list views show.
const shortIDLength = 8

// readContent reads Markdown from path, or from stdin when path is "-".
func readContent(path string, env *Environment) (string, error) {
	var r io.Reader
	if path == "-" {
		r = env.Stdin
	} else {
		f, err := os.Open(path) // #nosec G304 -- user-provided path
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrReadMarkdown, err)
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(io.LimitReader(r, maxContentSize+1))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadMarkdown, err)
	}
	if len(data) > maxContentSize {
		return "", fmt.Errorf("%w: %s exceeds %d bytes", ErrReadMarkdown, path, maxContentSize)
	}
	return string(data), nil
}

// resolveID maps ref to one of ids: an exact match, or a unique prefix of
// at least minIDPrefix characters.
func resolveID(kind string, ids []string, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	var matches []string
	for _, id := range ids {
		if id == ref {
			return id, nil
		}
		if len(ref) >= minIDPrefix && strings.HasPrefix(id, ref) {
			matches = append(matches, id)
		}
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", fmt.Errorf("%s %q: %w", kind, ref, store.ErrNotFound)
	default:
		return "", fmt.Errorf("%w: %s %q matches %d records", ErrAmbiguousID, kind, ref, len(matches))
	}
}

func shortID(id string) string {
	if len(id) > shortIDLength {
		return id[:shortIDLength]
	}
	return id
}

// slugify turns a title into a file name stem: lowercase letters and
// digits separated by single hyphens.
func slugify(title string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	if b.Len() == 0 {
		return "article"
	}
	return b.String()
}
