package catalog

import (
	"time"

	"gorm.io/gorm"

	"github.com/gywan/gywan-site/internal/db/models"
)

// UpcomingEvents returns up to limit events dated at or after now, soonest first.
func UpcomingEvents(db *gorm.DB, now time.Time, limit int) ([]models.Event, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var events []models.Event
	err := db.Scopes(active).
		Where("date >= ?", now.UTC()).
		Order("date ASC, id ASC").
		Limit(limit).
		Find(&events).Error

	return events, err
}

// RecentStories returns up to limit stories, newest first.
func RecentStories(db *gorm.DB, limit int) ([]models.Story, error) {
	return recent[models.Story](db, active, limit)
}

// RecentResources returns up to limit resources, newest first.
func RecentResources(db *gorm.DB, limit int) ([]models.Resource, error) {
	return recent[models.Resource](db, active, limit)
}

// RecentBlogPosts returns up to limit published posts, newest first.
func RecentBlogPosts(db *gorm.DB, limit int) ([]models.BlogPost, error) {
	return recent[models.BlogPost](db, visiblePosts, limit)
}

func recent[T any](db *gorm.DB, scope func(*gorm.DB) *gorm.DB, limit int) ([]T, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var items []T
	err := db.Scopes(scope).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&items).Error

	return items, err
}
