package catalog

import (
	"errors"

	"gorm.io/gorm"

	"github.com/gywan/gywan-site/internal/db/models"
)

func first[T any](db *gorm.DB, scope func(*gorm.DB) *gorm.DB, id uint64) (*T, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var item T

	result := db.Scopes(scope).First(&item, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, result.Error
	}

	return &item, nil
}

// GetEvent returns a visible event by id.
func GetEvent(db *gorm.DB, id uint64) (*models.Event, error) {
	return first[models.Event](db, active, id)
}

// GetStory returns a visible story by id.
func GetStory(db *gorm.DB, id uint64) (*models.Story, error) {
	return first[models.Story](db, active, id)
}

// GetBlogPost returns a published and active post by id.
func GetBlogPost(db *gorm.DB, id uint64) (*models.BlogPost, error) {
	return first[models.BlogPost](db, visiblePosts, id)
}

// GetResource returns a visible resource by id.
func GetResource(db *gorm.DB, id uint64) (*models.Resource, error) {
	return first[models.Resource](db, active, id)
}

// Exists reports whether a visible item of kind with id exists.
func Exists(db *gorm.DB, kind Kind, id uint64) (bool, error) {
	var err error

	switch kind {
	case KindEvent:
		_, err = GetEvent(db, id)
	case KindStory:
		_, err = GetStory(db, id)
	case KindBlogPost:
		_, err = GetBlogPost(db, id)
	case KindResource:
		_, err = GetResource(db, id)
	default:
		return false, ErrUnknownKind
	}

	if errors.Is(err, ErrNotFound) {
		return false, nil
	}

	return err == nil, err
}

// IncrementDownloads atomically adds one to the download counter of an
// active resource and returns the new value.
func IncrementDownloads(db *gorm.DB, id uint64) (int64, error) {
	if db == nil {
		return 0, ErrDBNil
	}

	result := db.Model(&models.Resource{}).
		Where("id = ? AND is_active = ?", id, true).
		UpdateColumn("download_count", gorm.Expr("download_count + ?", 1))
	if result.Error != nil {
		return 0, result.Error
	}

	if result.RowsAffected == 0 {
		return 0, ErrNotFound
	}

	var count int64
	if err := db.Model(&models.Resource{}).Where("id = ?", id).Pluck("download_count", &count).Error; err != nil {
		return 0, err
	}

	return count, nil
}
