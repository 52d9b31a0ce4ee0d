// Package comment stores comments on catalog items and list pages.
package comment

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/gywan/gywan-site/internal/db/controller/catalog"
	"github.com/gywan/gywan-site/internal/db/models"
	"github.com/gywan/gywan-site/internal/validation"
)

// RecentLimit caps the number of comments shown on a page.
const RecentLimit = 10

var (
	// ErrTargetNotFound is returned when the item a comment refers to does not exist or is hidden.
	ErrTargetNotFound = errors.New("comment target not found")
	// ErrInvalidTarget is returned for a nil target, an unknown section type or a
	// submission that does not fit the target.
	ErrInvalidTarget = errors.New("invalid comment target")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// AnonymousSubmission is a list page comment.
type AnonymousSubmission struct {
	Text string `form:"comment" validate:"required,max=2000"`
}

// AttributedSubmission is a detail page comment.
type AttributedSubmission struct {
	Text  string `form:"comment" validate:"required,max=2000"`
	Name  string `form:"name"    validate:"required,max=100"`
	Email string `form:"email"   validate:"required,email,max=254"`
}

// Attach validates and stores a comment. Section targets take an
// AnonymousSubmission, item targets an AttributedSubmission; any other
// pairing is rejected with ErrInvalidTarget.
func Attach(db *gorm.DB, target Target, sub any) (*models.Comment, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if target == nil {
		return nil, ErrInvalidTarget
	}

	_, isSection := target.(SectionTarget)

	switch sub.(type) {
	case AnonymousSubmission:
		if !isSection {
			return nil, ErrInvalidTarget
		}
	case AttributedSubmission:
		if isSection {
			return nil, ErrInvalidTarget
		}
	default:
		return nil, ErrInvalidTarget
	}

	c, err := resolve(db, target)
	if err != nil {
		return nil, err
	}

	switch s := sub.(type) {
	case AnonymousSubmission:
		s.Text = strings.TrimSpace(s.Text)
		if verrs := validation.Validator.Check(s); verrs != nil {
			return nil, verrs
		}

		c.Text = s.Text
	case AttributedSubmission:
		s.Text = strings.TrimSpace(s.Text)
		s.Name = strings.TrimSpace(s.Name)
		s.Email = strings.TrimSpace(s.Email)

		if verrs := validation.Validator.Check(s); verrs != nil {
			return nil, verrs
		}

		c.Text, c.Name, c.Email = s.Text, s.Name, s.Email
	default:
		return nil, ErrInvalidTarget
	}

	if err := db.Create(c).Error; err != nil {
		return nil, err
	}

	return c, nil
}

// resolve checks that target refers to something that exists and returns
// the comment skeleton for it.
func resolve(db *gorm.DB, target Target) (*models.Comment, error) {
	tt, id := target.target()

	kind, ok := kindOf(tt)
	if !ok {
		return nil, ErrInvalidTarget
	}

	switch target.(type) {
	case SectionTarget:
		// list pages always exist
	case EventTarget, StoryTarget, BlogPostTarget, ResourceTarget:
		found, err := catalog.Exists(db, kind, id)
		if err != nil {
			return nil, err
		}

		if !found {
			return nil, ErrTargetNotFound
		}
	}

	return &models.Comment{TargetType: tt, TargetID: id}, nil
}

// Recent returns the newest comments of target. A nil target returns the
// newest comments across the whole site.
func Recent(db *gorm.DB, target Target, limit int) ([]models.Comment, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if limit <= 0 || limit > RecentLimit {
		limit = RecentLimit
	}

	tx := db.Model(&models.Comment{})

	if target != nil {
		tt, id := target.target()
		tx = tx.Where("target_type = ? AND target_id = ?", tt, id)
	}

	var comments []models.Comment
	err := tx.Order("created_at DESC, id DESC").Limit(limit).Find(&comments).Error

	return comments, err
}
