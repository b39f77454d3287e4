package blog

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode"
)

// AllCategories is the category filter value that matches every article.
const AllCategories = "All"

// Filter selects articles by free-text search and category name.
type Filter struct {
	Search   string // case-insensitive, matched against title and excerpt
	Category string // category name; "" or AllCategories matches everything
}

// Match reports whether the article passes the filter.
func (f Filter) Match(a Article) bool {
	if f.Category != "" && f.Category != AllCategories && a.Category.Name != f.Category {
		return false
	}
	term := strings.ToLower(f.Search)
	return strings.Contains(strings.ToLower(a.Title), term) ||
		strings.Contains(strings.ToLower(a.Excerpt), term)
}

// Apply returns the matching articles in their original order.
func (f Filter) Apply(articles []Article) []Article {
	out := make([]Article, 0, len(articles))
	for _, a := range articles {
		if f.Match(a) {
			out = append(out, a)
		}
	}
	return out
}

// SortOption names an article ordering.
type SortOption string

// Sort options offered by the article list.
const (
	SortDateNewest SortOption = "date-newest"
	SortDateOldest SortOption = "date-oldest"
	SortNameAsc    SortOption = "name-asc"
	SortNameDesc   SortOption = "name-desc"
)

// DefaultSort is used when no option is given.
const DefaultSort = SortDateNewest

// SortOptions lists valid options in display order.
func SortOptions() []SortOption {
	return []SortOption{SortDateNewest, SortDateOldest, SortNameAsc, SortNameDesc}
}

// ParseSortOption validates s. An empty string yields DefaultSort.
func ParseSortOption(s string) (SortOption, error) {
	if s == "" {
		return DefaultSort, nil
	}
	opt := SortOption(strings.ToLower(s))
	if !slices.Contains(SortOptions(), opt) {
		return "", fmt.Errorf("%w: %q", ErrInvalidSort, s)
	}
	return opt, nil
}

// Sort returns a sorted copy of articles. Dates compare as YYYY-MM-DD
// strings, names case-insensitively. Ties keep their input order.
func Sort(articles []Article, opt SortOption) []Article {
	out := slices.Clone(articles)

	var cmp func(a, b Article) int
	switch opt {
	case SortDateOldest:
		cmp = func(a, b Article) int { return strings.Compare(a.Date, b.Date) }
	case SortNameAsc:
		cmp = func(a, b Article) int { return compareFold(a.Title, b.Title) }
	case SortNameDesc:
		cmp = func(a, b Article) int { return compareFold(b.Title, a.Title) }
	default:
		cmp = func(a, b Article) int { return strings.Compare(b.Date, a.Date) }
	}

	slices.SortStableFunc(out, cmp)
	return out
}

func compareFold(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

// CategoryNames returns AllCategories followed by the distinct category
// names of articles in first-seen order.
func CategoryNames(articles []Article) []string {
	names := []string{AllCategories}
	seen := make(map[string]bool, len(articles))
	for _, a := range articles {
		if seen[a.Category.Name] {
			continue
		}
		seen[a.Category.Name] = true
		names = append(names, a.Category.Name)
	}
	return names
}

// Stats summarises a set of articles.
type Stats struct {
	TotalArticles    int
	Categories       int // distinct category names
	TotalReadMinutes int
}

// ComputeStats counts articles, distinct categories and total read time.
func ComputeStats(articles []Article) Stats {
	names := make(map[string]struct{}, len(articles))
	s := Stats{TotalArticles: len(articles)}
	for _, a := range articles {
		names[a.Category.Name] = struct{}{}
		s.TotalReadMinutes += ReadMinutes(a.ReadTime)
	}
	s.Categories = len(names)
	return s
}

// ReadMinutes parses the leading integer of a read time such as "5 min read".
// Leading spaces are skipped; anything without a leading number counts as 0.
func ReadMinutes(readTime string) int {
	s := strings.TrimLeftFunc(readTime, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
