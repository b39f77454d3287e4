package store

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/alnah/go-blogmd/internal/blog"
)

// Keys holding the blog collections.
const (
	KeyArticles   = "blog-articles"
	KeyCategories = "blog-categories"
	KeyDrafts     = "blog-drafts"
)

// Sentinel errors for repository operations.
var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateCategory = errors.New("category already exists")
	ErrCategoryInUse     = errors.New("category is used by articles")
)

// Repository exposes the typed blog collections held in a Store.
type Repository struct {
	store *Store
	warn  io.Writer
	now   func() time.Time
	newID func() string
}

// Option configures a Repository.
type Option func(*Repository)

// WithWarnings sets where unreadable keys are reported. Defaults to io.Discard.
func WithWarnings(w io.Writer) Option {
	return func(r *Repository) {
		if w != nil {
			r.warn = w
		}
	}
}

// WithClock sets the time source for dates and timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		if now != nil {
			r.now = now
		}
	}
}

// WithIDGenerator sets the ID source for new records.
func WithIDGenerator(gen func() string) Option {
	return func(r *Repository) {
		if gen != nil {
			r.newID = gen
		}
	}
}

// NewRepository wraps s.
func NewRepository(s *Store, opts ...Option) *Repository {
	r := &Repository{
		store: s,
		warn:  io.Discard,
		now:   time.Now,
		newID: blog.NewID,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Store returns the underlying store.
func (r *Repository) Store() *Store {
	return r.store
}

// load decodes key into dst. Missing keys leave dst untouched; corrupt keys
// are reported and also leave dst untouched, so callers see their zero value.
func load[T any](r *Repository, key string, dst *[]T) {
	var v []T
	err := r.store.Get(key, &v)
	switch {
	case err == nil:
		*dst = v
	case errors.Is(err, ErrKeyNotFound):
	default:
		fmt.Fprintf(r.warn, "Warning: ignoring unreadable %q: %v\n", key, err)
	}
}

func (r *Repository) timestamp() string {
	return r.now().UTC().Format(time.RFC3339)
}

// ---------------------------------------------------------------------------
// Articles
// ---------------------------------------------------------------------------

// Articles returns every stored article, newest insert first.
func (r *Repository) Articles() []blog.Article {
	var out []blog.Article
	load(r, KeyArticles, &out)
	return out
}

// SaveArticles replaces the article collection.
func (r *Repository) SaveArticles(articles []blog.Article) error {
	if articles == nil {
		articles = []blog.Article{}
	}
	return r.store.Set(KeyArticles, articles)
}

// FindArticle returns the article with the given ID.
func (r *Repository) FindArticle(id string) (blog.Article, error) {
	for _, a := range r.Articles() {
		if a.ID == id {
			return a, nil
		}
	}
	return blog.Article{}, fmt.Errorf("article %q: %w", id, ErrNotFound)
}

// AddArticle validates a, resolves its category by ID and stores it at the
// front of the collection. ID and Date are filled when empty.
func (r *Repository) AddArticle(a blog.Article) (blog.Article, error) {
	a.Normalize()
	if err := a.Validate(); err != nil {
		return blog.Article{}, err
	}
	cat, err := r.FindCategory(a.Category.ID)
	if err != nil {
		return blog.Article{}, err
	}
	a.Category = cat.Ref()

	if a.ID == "" {
		a.ID = r.newID()
	}
	if a.Date == "" {
		a.Date = r.now().Format(blog.DateLayout)
	}
	if a.CreationDate == "" {
		a.CreationDate = r.timestamp()
	}

	articles := r.Articles()
	if slices.ContainsFunc(articles, func(x blog.Article) bool { return x.ID == a.ID }) {
		return blog.Article{}, fmt.Errorf("article %q already exists", a.ID)
	}
	if err := r.SaveArticles(append([]blog.Article{a}, articles...)); err != nil {
		return blog.Article{}, err
	}
	return a, nil
}

// UpdateArticle replaces the stored article with the same ID and stamps
// UpdatedAt. Date and CreationDate are kept from the stored copy when a
// leaves them empty.
func (r *Repository) UpdateArticle(a blog.Article) (blog.Article, error) {
	articles := r.Articles()
	i := slices.IndexFunc(articles, func(x blog.Article) bool { return x.ID == a.ID })
	if i < 0 {
		return blog.Article{}, fmt.Errorf("article %q: %w", a.ID, ErrNotFound)
	}

	a.Normalize()
	if err := a.Validate(); err != nil {
		return blog.Article{}, err
	}
	cat, err := r.FindCategory(a.Category.ID)
	if err != nil {
		return blog.Article{}, err
	}
	a.Category = cat.Ref()

	if a.Date == "" {
		a.Date = articles[i].Date
	}
	if a.CreationDate == "" {
		a.CreationDate = articles[i].CreationDate
	}
	a.UpdatedAt = r.timestamp()

	articles[i] = a
	if err := r.SaveArticles(articles); err != nil {
		return blog.Article{}, err
	}
	return a, nil
}

// DeleteArticle removes the article with the given ID.
func (r *Repository) DeleteArticle(id string) error {
	articles := r.Articles()
	i := slices.IndexFunc(articles, func(x blog.Article) bool { return x.ID == id })
	if i < 0 {
		return fmt.Errorf("article %q: %w", id, ErrNotFound)
	}
	return r.SaveArticles(slices.Delete(articles, i, i+1))
}

// ---------------------------------------------------------------------------
// Categories
// ---------------------------------------------------------------------------

// Categories returns every stored category in creation order.
func (r *Repository) Categories() []blog.Category {
	var out []blog.Category
	load(r, KeyCategories, &out)
	return out
}

// FindCategory looks a category up by ID, then by name (case-insensitive).
func (r *Repository) FindCategory(ref string) (blog.Category, error) {
	cats := r.Categories()
	for _, c := range cats {
		if c.ID == ref {
			return c, nil
		}
	}
	for _, c := range cats {
		if strings.EqualFold(c.Name, strings.TrimSpace(ref)) {
			return c, nil
		}
	}
	return blog.Category{}, fmt.Errorf("category %q: %w", ref, ErrNotFound)
}

// AddCategory validates c and appends it. Names are unique regardless of case.
func (r *Repository) AddCategory(c blog.Category) (blog.Category, error) {
	c.Name = strings.TrimSpace(c.Name)
	c.Description = strings.TrimSpace(c.Description)
	if err := c.Validate(); err != nil {
		return blog.Category{}, err
	}

	cats := r.Categories()
	for _, existing := range cats {
		if strings.EqualFold(existing.Name, c.Name) {
			return blog.Category{}, fmt.Errorf("%w: %q", ErrDuplicateCategory, c.Name)
		}
	}
	if c.ID == "" {
		c.ID = r.newID()
	}

	if err := r.store.Set(KeyCategories, append(cats, c)); err != nil {
		return blog.Category{}, err
	}
	return c, nil
}

// DeleteCategory removes a category that no article references.
func (r *Repository) DeleteCategory(ref string) error {
	target, err := r.FindCategory(ref)
	if err != nil {
		return err
	}

	used := 0
	for _, a := range r.Articles() {
		if a.Category.ID == target.ID {
			used++
		}
	}
	if used > 0 {
		return fmt.Errorf("%w: %q (%d articles)", ErrCategoryInUse, target.Name, used)
	}

	cats := slices.DeleteFunc(r.Categories(), func(c blog.Category) bool { return c.ID == target.ID })
	return r.store.Set(KeyCategories, cats)
}

// ---------------------------------------------------------------------------
// Drafts
// ---------------------------------------------------------------------------

// Drafts returns every stored draft.
func (r *Repository) Drafts() []blog.Draft {
	var out []blog.Draft
	load(r, KeyDrafts, &out)
	return out
}

// FindDraft returns the draft with the given ID.
func (r *Repository) FindDraft(id string) (blog.Draft, error) {
	for _, d := range r.Drafts() {
		if d.ID == id {
			return d, nil
		}
	}
	return blog.Draft{}, fmt.Errorf("draft %q: %w", id, ErrNotFound)
}

// SaveDraft inserts d, or replaces the draft with the same ID. CreatedAt is
// preserved across updates and UpdatedAt is always stamped.
func (r *Repository) SaveDraft(d blog.Draft) (blog.Draft, error) {
	if err := d.Validate(); err != nil {
		return blog.Draft{}, err
	}
	cat, err := r.FindCategory(d.Category.ID)
	if err != nil {
		return blog.Draft{}, err
	}
	d.Category = cat.Ref()

	now := r.timestamp()
	d.UpdatedAt = now

	drafts := r.Drafts()
	i := -1
	if d.ID != "" {
		i = slices.IndexFunc(drafts, func(x blog.Draft) bool { return x.ID == d.ID })
	}
	if i >= 0 {
		d.CreatedAt = drafts[i].CreatedAt
		drafts[i] = d
	} else {
		if d.ID == "" {
			d.ID = r.newID()
		}
		if d.CreatedAt == "" {
			d.CreatedAt = now
		}
		drafts = append([]blog.Draft{d}, drafts...)
	}

	if err := r.store.Set(KeyDrafts, drafts); err != nil {
		return blog.Draft{}, err
	}
	return d, nil
}

// DeleteDraft removes the draft with the given ID.
func (r *Repository) DeleteDraft(id string) error {
	drafts := r.Drafts()
	i := slices.IndexFunc(drafts, func(x blog.Draft) bool { return x.ID == id })
	if i < 0 {
		return fmt.Errorf("draft %q: %w", id, ErrNotFound)
	}
	return r.store.Set(KeyDrafts, slices.Delete(drafts, i, i+1))
}

// PublishDraft promotes a draft to an article with the given read time,
// stores the article and removes the draft. The draft is kept when the
// article fails validation.
func (r *Repository) PublishDraft(id, readTime string) (blog.Article, error) {
	d, err := r.FindDraft(id)
	if err != nil {
		return blog.Article{}, err
	}

	a := d.Promote(r.now(), r.newID())
	a.ReadTime = readTime
	a, err = r.AddArticle(a)
	if err != nil {
		return blog.Article{}, fmt.Errorf("publishing draft %q: %w", id, err)
	}
	if err := r.DeleteDraft(id); err != nil {
		return a, err
	}
	return a, nil
}
