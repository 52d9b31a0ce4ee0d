package catalog

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/gywan/gywan-site/internal/db/models"
)

func modelOf(kind Kind) (any, error) {
	switch kind {
	case KindEvent:
		return &models.Event{}, nil
	case KindStory:
		return &models.Story{}, nil
	case KindBlogPost:
		return &models.BlogPost{}, nil
	case KindResource:
		return &models.Resource{}, nil
	default:
		return nil, ErrUnknownKind
	}
}

// ToggleActive flips the is_active flag of any item, hidden or not, and
// returns the new state.
func ToggleActive(db *gorm.DB, kind Kind, id uint64) (bool, error) {
	if db == nil {
		return false, ErrDBNil
	}

	model, err := modelOf(kind)
	if err != nil {
		return false, err
	}

	var state bool

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(model).Where("id = ?", id).Pluck("is_active", &state).Error; err != nil {
			return err
		}

		result := tx.Model(model).Where("id = ?", id).UpdateColumn("is_active", !state)
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			return ErrNotFound
		}

		state = !state

		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrNotFound
		}

		return false, err
	}

	return state, nil
}

// Counts holds the total number of rows per kind, hidden included.
type Counts map[Kind]int64

// CountAll returns the number of rows for every catalog kind.
func CountAll(db *gorm.DB) (Counts, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	kinds := []Kind{KindEvent, KindStory, KindBlogPost, KindResource}
	out := make(Counts, len(kinds))

	for _, kind := range kinds {
		model, _ := modelOf(kind)

		var n int64
		if err := db.Model(model).Count(&n).Error; err != nil {
			return nil, err
		}

		out[kind] = n
	}

	return out, nil
}

// CreateResource stores a new resource record.
func CreateResource(db *gorm.DB, res *models.Resource) error {
	if db == nil {
		return ErrDBNil
	}

	if !res.Category.Valid() {
		return ErrInvalidCategory
	}

	return db.Create(res).Error
}

// Row is the admin view of a catalog item.
type Row struct {
	ID        uint64
	Title     string
	IsActive  bool
	CreatedAt time.Time
}

// Latest returns the newest items of kind, hidden included.
func Latest(db *gorm.DB, kind Kind, limit int) ([]Row, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	model, err := modelOf(kind)
	if err != nil {
		return nil, err
	}

	var rows []Row

	err = db.Model(model).
		Select("id", "title", "is_active", "created_at").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Scan(&rows).Error

	return rows, err
}
