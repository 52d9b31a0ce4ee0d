// Package display loads the supporting content shown around the catalog:
// team, supporters, testimonials, announcements, impact figures and the
// pledge form choices.
package display

import (
	"errors"

	"gorm.io/gorm"

	"github.com/gywan/gywan-site/internal/db/models"
)

// ErrDBNil is returned when the database connection is nil.
var ErrDBNil = errors.New("database connection is nil")

func activeByCreation[T any](db *gorm.DB, limit int, order string) ([]T, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var items []T

	tx := db.Where("is_active = ?", true).Order(order)
	if limit > 0 {
		tx = tx.Limit(limit)
	}

	err := tx.Find(&items).Error

	return items, err
}

// TeamMembers returns active team members, oldest first.
func TeamMembers(db *gorm.DB) ([]models.TeamMember, error) {
	return activeByCreation[models.TeamMember](db, 0, "created_at ASC, id ASC")
}

// Supporters returns active supporters, oldest first.
func Supporters(db *gorm.DB) ([]models.Supporter, error) {
	return activeByCreation[models.Supporter](db, 0, "created_at ASC, id ASC")
}

// Testimonials returns active testimonials, oldest first.
func Testimonials(db *gorm.DB) ([]models.Testimonial, error) {
	return activeByCreation[models.Testimonial](db, 0, "created_at ASC, id ASC")
}

// Announcements returns up to limit active announcements, newest first.
func Announcements(db *gorm.DB, limit int) ([]models.Announcement, error) {
	return activeByCreation[models.Announcement](db, limit, "created_at DESC, id DESC")
}

// ImpactStats returns active impact stats in creation order.
func ImpactStats(db *gorm.DB) ([]models.ImpactStat, error) {
	return activeByCreation[models.ImpactStat](db, 0, "created_at ASC, id ASC")
}

// ImpactStories returns up to limit active impact stories, newest first.
func ImpactStories(db *gorm.DB, limit int) ([]models.ImpactStory, error) {
	return activeByCreation[models.ImpactStory](db, limit, "created_at DESC, id DESC")
}

// MobileProviders returns the active providers by name.
func MobileProviders(db *gorm.DB) ([]models.MobileProvider, error) {
	return activeByCreation[models.MobileProvider](db, 0, "name ASC")
}

// Banks returns the active banks by name.
func Banks(db *gorm.DB) ([]models.Bank, error) {
	return activeByCreation[models.Bank](db, 0, "name ASC")
}
