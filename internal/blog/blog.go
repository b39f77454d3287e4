// Package blog defines articles, categories and drafts, with the validation,
// filtering, sorting and statistics used by the article list views.
package blog

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Sentinel errors for model validation.
var (
	ErrFieldRequired = errors.New("required field missing")
	ErrNameTooShort  = errors.New("name too short")
	ErrInvalidColor  = errors.New("invalid color")
	ErrInvalidSort   = errors.New("invalid sort option")
)

// DateLayout is the layout of Article.Date.
const DateLayout = "2006-01-02"

// MinCategoryNameLength is the shortest accepted category name.
const MinCategoryNameLength = 2

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// NamedColor is one entry of the category colour palette.
type NamedColor struct {
	Name  string
	Value string
}

// Palette lists the colours offered when creating a category. The first
// entry is the default.
var Palette = []NamedColor{
	{"Blue", "#3b82f6"},
	{"Green", "#10b981"},
	{"Orange", "#f59e0b"},
	{"Red", "#ef4444"},
	{"Purple", "#8b5cf6"},
	{"Pink", "#ec4899"},
	{"Indigo", "#6366f1"},
	{"Teal", "#14b8a6"},
	{"Cyan", "#06b6d4"},
	{"Emerald", "#059669"},
	{"Lime", "#84cc16"},
	{"Yellow", "#eab308"},
	{"Amber", "#f59e42"},
	{"Rose", "#f43f5e"},
	{"Fuchsia", "#d946ef"},
	{"Violet", "#7c3aed"},
}

// ResolveColor maps a palette name (any case) or a #rrggbb value to a hex
// colour. An empty string yields the first palette colour.
func ResolveColor(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Palette[0].Value, nil
	}
	if hexColor.MatchString(s) {
		return strings.ToLower(s), nil
	}
	for _, c := range Palette {
		if strings.EqualFold(c.Name, s) {
			return c.Value, nil
		}
	}
	return "", fmt.Errorf("%w: %q (want a palette name or #rrggbb)", ErrInvalidColor, s)
}

// Category groups articles under a display name and colour.
type Category struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Color       string `yaml:"color,omitempty" json:"color,omitempty"`
}

// Article is a published blog article. Content is Markdown.
type Article struct {
	ID           string   `yaml:"id" json:"id"`
	Title        string   `yaml:"title" json:"title"`
	Excerpt      string   `yaml:"excerpt" json:"excerpt"`
	Author       string   `yaml:"author" json:"author"`
	Date         string   `yaml:"date" json:"date"` // YYYY-MM-DD
	Category     Category `yaml:"category" json:"category"`
	ReadTime     string   `yaml:"readTime" json:"readTime"` // e.g. "5 min"
	Content      string   `yaml:"content,omitempty" json:"content,omitempty"`
	CreationDate string   `yaml:"creationDate,omitempty" json:"creationDate,omitempty"`
	UpdatedAt    string   `yaml:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// Draft is an unpublished article.
type Draft struct {
	ID        string   `yaml:"id" json:"id"`
	Title     string   `yaml:"title" json:"title"`
	Excerpt   string   `yaml:"excerpt" json:"excerpt"`
	Author    string   `yaml:"author" json:"author"`
	Category  Category `yaml:"category" json:"category"`
	Content   string   `yaml:"content,omitempty" json:"content,omitempty"`
	CreatedAt string   `yaml:"createdAt" json:"createdAt"`
	UpdatedAt string   `yaml:"updatedAt" json:"updatedAt"`
}

// NewID returns a random (version 4) UUID string.
func NewID() string {
	return uuid.NewString()
}

// Validate checks that every field required by the article form is present.
// All missing fields are reported in a single error wrapping ErrFieldRequired.
func (a *Article) Validate() error {
	var missing []string
	check := func(field, value string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, field)
		}
	}

	check("title", a.Title)
	check("excerpt", a.Excerpt)
	check("author", a.Author)
	check("category", a.Category.ID)
	check("readTime", a.ReadTime)
	check("content", a.Content)

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrFieldRequired, strings.Join(missing, ", "))
	}
	return nil
}

// Normalize trims user-entered text fields in place.
func (a *Article) Normalize() {
	a.Title = strings.TrimSpace(a.Title)
	a.Excerpt = strings.TrimSpace(a.Excerpt)
	a.Author = strings.TrimSpace(a.Author)
	a.ReadTime = strings.TrimSpace(a.ReadTime)
	a.Content = strings.TrimSpace(a.Content)
}

// Validate checks the category name and optional colour.
func (c *Category) Validate() error {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return fmt.Errorf("%w: name", ErrFieldRequired)
	}
	if len([]rune(name)) < MinCategoryNameLength {
		return fmt.Errorf("%w: %q (min %d characters)", ErrNameTooShort, name, MinCategoryNameLength)
	}
	if c.Color != "" && !hexColor.MatchString(c.Color) {
		return fmt.Errorf("%w: %q (want #rrggbb)", ErrInvalidColor, c.Color)
	}
	return nil
}

// Ref returns the category as embedded in an article: ID, name and colour.
func (c Category) Ref() Category {
	return Category{ID: c.ID, Name: c.Name, Color: c.Color}
}

// Validate checks the fields a draft needs before it can be saved: a title
// and a category.
func (d *Draft) Validate() error {
	var missing []string
	if strings.TrimSpace(d.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(d.Category.ID) == "" {
		missing = append(missing, "category")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrFieldRequired, strings.Join(missing, ", "))
	}
	return nil
}

// Promote converts the draft into an article dated now. The read time is
// left empty for the caller to fill.
func (d *Draft) Promote(now time.Time, id string) Article {
	return Article{
		ID:           id,
		Title:        strings.TrimSpace(d.Title),
		Excerpt:      strings.TrimSpace(d.Excerpt),
		Author:       strings.TrimSpace(d.Author),
		Date:         now.Format(DateLayout),
		Category:     d.Category.Ref(),
		Content:      strings.TrimSpace(d.Content),
		CreationDate: d.CreatedAt,
	}
}
