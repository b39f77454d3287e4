// Package dateutil parses and formats article dates.
//
// Articles store their publication date as YYYY-MM-DD and their edit stamp
// as RFC 3339. Pages show either one through a user-friendly token format
// ("MMMM D, YYYY") or a named preset ("long").
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Sentinel errors.
var (
	ErrInvalidDateFormat = errors.New("invalid date format")
	ErrInvalidDate       = errors.New("invalid date")
)

// MaxDateFormatLength limits format string length.
const MaxDateFormatLength = 50

// StorageLayout is the Go layout of a stored article date.
const StorageLayout = "2006-01-02"

// DefaultDisplayFormat matches the blog's "November 5, 2025" display.
const DefaultDisplayFormat = "long"

// dateTokens maps tokens to Go layout components, longest first so that
// "MMMM" wins over "MM".
var dateTokens = []struct {
	token  string
	layout string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"dddd", "Monday"},
	{"ddd", "Mon"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"M", "1"},
	{"D", "2"},
}

// DatePresets are named shortcuts accepted wherever a format is.
var DatePresets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
	"short":    "MMM D, YYYY",
	"full":     "dddd, MMMM D, YYYY",
}

// ParseDateFormat converts a token format to a Go time layout.
// Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D, dddd, ddd.
// Text in brackets is copied literally: "[Published] MMM D" keeps
// "Published". Other characters pass through unchanged.
func ParseDateFormat(format string) (string, error) {
	if format == "" {
		return "", fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	}
	if len(format) > MaxDateFormatLength {
		return "", fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}

	var b strings.Builder
	b.Grow(len(format) + 8)

	for rest := format; rest != ""; {
		if rest[0] == '[' {
			literal, after, ok := strings.Cut(rest[1:], "]")
			if !ok {
				pos := len(format) - len(rest)
				return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, pos)
			}
			b.WriteString(literal)
			rest = after
			continue
		}
		rest = writeToken(&b, rest)
	}

	return b.String(), nil
}

// writeToken writes the layout of the token at the start of s, or its first
// byte when no token matches, and returns the unconsumed remainder.
func writeToken(b *strings.Builder, s string) string {
	for _, t := range dateTokens {
		if strings.HasPrefix(s, t.token) {
			b.WriteString(t.layout)
			return s[len(t.token):]
		}
	}
	b.WriteByte(s[0])
	return s[1:]
}

// Layout resolves a preset name (case-insensitive) or token format to a Go
// layout. An empty value selects DefaultDisplayFormat.
func Layout(formatOrPreset string) (string, error) {
	if formatOrPreset == "" {
		formatOrPreset = DefaultDisplayFormat
	}
	if preset, ok := DatePresets[strings.ToLower(formatOrPreset)]; ok {
		formatOrPreset = preset
	}
	return ParseDateFormat(formatOrPreset)
}

// ParseArticleDate parses a stored date: YYYY-MM-DD or RFC 3339.
func ParseArticleDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(StorageLayout, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %q (want YYYY-MM-DD)", ErrInvalidDate, value)
}

// FormatArticleDate formats a stored date for display.
func FormatArticleDate(value, formatOrPreset string) (string, error) {
	t, err := ParseArticleDate(value)
	if err != nil {
		return "", err
	}
	layout, err := Layout(formatOrPreset)
	if err != nil {
		return "", err
	}
	return t.Format(layout), nil
}

// ResolveDate returns the stored form of a publication date given on the
// command line. "", "today" and "auto" mean now; a YYYY-MM-DD or RFC 3339
// value is normalised to YYYY-MM-DD; anything else is ErrInvalidDate.
func ResolveDate(value string, now time.Time) (string, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "today", "auto":
		return now.Format(StorageLayout), nil
	}
	t, err := ParseArticleDate(value)
	if err != nil {
		return "", err
	}
	return t.Format(StorageLayout), nil
}
