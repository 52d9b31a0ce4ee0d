// Package catalog provides the public queries over events, stories, blog posts and resources.
//
// Hidden items (inactive, or unpublished blog posts) are never returned by
// any function in this package, list and detail alike.
package catalog

import (
	"errors"
	"math"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/gywan/gywan-site/internal/db/models"
)

// PageSize is the number of items on a list page.
const PageSize = 10

var (
	// ErrNotFound is returned when an item does not exist or is hidden.
	ErrNotFound = errors.New("item not found")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
	// ErrUnknownKind is returned for an unsupported content kind.
	ErrUnknownKind = errors.New("unknown content kind")
	// ErrInvalidCategory is returned when creating a resource with an unknown category.
	ErrInvalidCategory = errors.New("invalid resource category")
)

// Kind identifies a content type of the catalog.
type Kind string

const (
	KindEvent    Kind = "events"
	KindStory    Kind = "stories"
	KindBlogPost Kind = "blog"
	KindResource Kind = "resources"
)

// Query holds the list parameters taken from the request.
type Query struct {
	// Text is matched case-insensitively against the kind's search fields.
	Text string
	// Category filters resources by exact category.
	Category string
	// Page is 1-based and clamped into the valid range.
	Page int
	// IncludePast lists events before Now as well.
	IncludePast bool
	// Now is the reference time for upcoming events. Zero means time.Now().
	Now time.Time
}

func (q Query) now() time.Time {
	if q.Now.IsZero() {
		return time.Now().UTC()
	}

	return q.Now.UTC()
}

// Page is one page of a list query.
type Page[T any] struct {
	Items      []T
	Number     int
	TotalPages int
	Total      int64
}

// HasPrev reports whether a previous page exists.
func (p Page[T]) HasPrev() bool { return p.Number > 1 }

// HasNext reports whether a next page exists.
func (p Page[T]) HasNext() bool { return p.Number < p.TotalPages }

// PrevPage returns the previous page number.
func (p Page[T]) PrevPage() int { return p.Number - 1 }

// NextPage returns the next page number.
func (p Page[T]) NextPage() int { return p.Number + 1 }

// Pages returns all page numbers for rendering a pager.
func (p Page[T]) Pages() []int {
	out := make([]int, p.TotalPages)
	for i := range out {
		out[i] = i + 1
	}

	return out
}

// escapeLike escapes LIKE wildcards using '!' as escape character.
func escapeLike(s string) string {
	return strings.NewReplacer("!", "!!", "%", "!%", "_", "!_").Replace(s)
}

// search matches the folded query against the folded search document of each row.
// The document holds the kind's searchable fields, see models.FoldSearch.
func search(text string) func(*gorm.DB) *gorm.DB {
	text = strings.TrimSpace(text)

	return func(tx *gorm.DB) *gorm.DB {
		if text == "" {
			return tx
		}

		pattern := "%" + escapeLike(models.FoldSearch(text)) + "%"

		return tx.Where("search_text LIKE ? ESCAPE '!'", pattern)
	}
}

func active(tx *gorm.DB) *gorm.DB { return tx.Where("is_active = ?", true) }

func visiblePosts(tx *gorm.DB) *gorm.DB {
	return tx.Where("is_active = ? AND published = ?", true, true)
}

// paginate counts the filtered rows, clamps the requested page and loads it.
// build is called once per statement since a gorm chain must not be reused.
func paginate[T any](build func() *gorm.DB, page int, order string) (Page[T], error) {
	var out Page[T]

	if err := build().Count(&out.Total).Error; err != nil {
		return out, err
	}

	out.TotalPages = max(1, int(math.Ceil(float64(out.Total)/float64(PageSize))))
	out.Number = min(max(page, 1), out.TotalPages)

	err := build().Order(order).
		Offset((out.Number - 1) * PageSize).
		Limit(PageSize).
		Find(&out.Items).Error

	return out, err
}

// ListEvents returns upcoming events in chronological order.
func ListEvents(db *gorm.DB, q Query) (Page[models.Event], error) {
	if db == nil {
		return Page[models.Event]{}, ErrDBNil
	}

	build := func() *gorm.DB {
		tx := db.Model(&models.Event{}).Scopes(active, search(q.Text))
		if !q.IncludePast {
			tx = tx.Where("date >= ?", q.now())
		}

		return tx
	}

	return paginate[models.Event](build, q.Page, "date ASC, id ASC")
}

// ListStories returns stories, newest first.
func ListStories(db *gorm.DB, q Query) (Page[models.Story], error) {
	if db == nil {
		return Page[models.Story]{}, ErrDBNil
	}

	build := func() *gorm.DB {
		return db.Model(&models.Story{}).Scopes(active, search(q.Text))
	}

	return paginate[models.Story](build, q.Page, "created_at DESC, id DESC")
}

// ListBlogPosts returns published posts, newest first.
func ListBlogPosts(db *gorm.DB, q Query) (Page[models.BlogPost], error) {
	if db == nil {
		return Page[models.BlogPost]{}, ErrDBNil
	}

	build := func() *gorm.DB {
		return db.Model(&models.BlogPost{}).Scopes(visiblePosts, search(q.Text))
	}

	return paginate[models.BlogPost](build, q.Page, "created_at DESC, id DESC")
}

// ListResources returns resources, newest first, optionally filtered by category.
func ListResources(db *gorm.DB, q Query) (Page[models.Resource], error) {
	if db == nil {
		return Page[models.Resource]{}, ErrDBNil
	}

	build := func() *gorm.DB {
		tx := db.Model(&models.Resource{}).Scopes(active, search(q.Text))
		if q.Category != "" {
			tx = tx.Where("category = ?", q.Category)
		}

		return tx
	}

	return paginate[models.Resource](build, q.Page, "created_at DESC, id DESC")
}
