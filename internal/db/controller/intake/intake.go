// Package intake stores contact messages and newsletter subscribers.
package intake

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/gywan/gywan-site/internal/db/models"
	"github.com/gywan/gywan-site/internal/uniuri"
	"github.com/gywan/gywan-site/internal/validation"
)

// DuplicateEmailMessage is the field error reported for an already subscribed address.
const DuplicateEmailMessage = "Subscriber with this Email already exists."

// tokenAttempts bounds the inserts tried when a new cancel token is already taken.
const tokenAttempts = 3

var newCancelToken = uniuri.Token //nolint:gochecknoglobals

var (
	// ErrDuplicateEmail is returned when the address is already subscribed.
	ErrDuplicateEmail = errors.New("subscriber already exists")
	// ErrSubscriberNotFound is returned for an unknown cancel token.
	ErrSubscriberNotFound = errors.New("subscriber not found")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// ContactForm is the contact page submission.
type ContactForm struct {
	Name    string `form:"name"    validate:"required,max=100"`
	Email   string `form:"email"   validate:"required,email,max=254"`
	Subject string `form:"subject" validate:"required,max=200"`
	Message string `form:"message" validate:"required,max=5000"`
}

// NewsletterForm is the newsletter signup submission.
type NewsletterForm struct {
	Email string `form:"email" json:"email" validate:"required,email,max=254"`
	Name  string `form:"name"  json:"name"  validate:"max=100"`
}

// SubmitContact validates and stores a contact message.
func SubmitContact(db *gorm.DB, form ContactForm) (*models.ContactMessage, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	form.Name = strings.TrimSpace(form.Name)
	form.Email = strings.TrimSpace(form.Email)
	form.Subject = strings.TrimSpace(form.Subject)
	form.Message = strings.TrimSpace(form.Message)

	if verrs := validation.Validator.Check(form); verrs != nil {
		return nil, verrs
	}

	msg := &models.ContactMessage{
		Name:    form.Name,
		Email:   form.Email,
		Subject: form.Subject,
		Message: form.Message,
	}

	if err := db.Create(msg).Error; err != nil {
		return nil, err
	}

	return msg, nil
}

// Subscribe validates and stores a newsletter subscriber. Emails are
// compared case-insensitively; a duplicate yields a validation.Errors that
// also matches ErrDuplicateEmail.
func Subscribe(db *gorm.DB, form NewsletterForm) (*models.Subscriber, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	form.Email = strings.ToLower(strings.TrimSpace(form.Email))
	form.Name = strings.TrimSpace(form.Name)

	if verrs := validation.Validator.Check(form); verrs != nil {
		return nil, verrs
	}

	taken, err := emailTaken(db, form.Email)
	if err != nil {
		return nil, err
	}

	if taken {
		return nil, duplicate()
	}

	for attempt := 1; ; attempt++ {
		sub := &models.Subscriber{
			Email:       form.Email,
			Name:        form.Name,
			CancelToken: newCancelToken(),
		}

		err := db.Create(sub).Error
		if err == nil {
			return sub, nil
		}

		if !errors.Is(err, gorm.ErrDuplicatedKey) && !isUniqueViolation(err) {
			return nil, err
		}

		// either a concurrent signup took the email or the cancel token collided
		taken, cerr := emailTaken(db, form.Email)
		if cerr != nil {
			return nil, cerr
		}

		if taken {
			return nil, duplicate()
		}

		if attempt == tokenAttempts {
			return nil, fmt.Errorf("store subscriber: %w", err)
		}
	}
}

func emailTaken(db *gorm.DB, email string) (bool, error) {
	var count int64
	err := db.Model(&models.Subscriber{}).Where("LOWER(email) = ?", email).Count(&count).Error

	return count > 0, err
}

// Unsubscribe deletes the subscriber owning token.
func Unsubscribe(db *gorm.DB, token string) (*models.Subscriber, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if token == "" {
		return nil, ErrSubscriberNotFound
	}

	var sub models.Subscriber
	if err := db.Where("cancel_token = ?", token).First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriberNotFound
		}

		return nil, err
	}

	if err := db.Delete(&sub).Error; err != nil {
		return nil, err
	}

	return &sub, nil
}

// DuplicateError is a validation error for an already subscribed address.
type DuplicateError struct {
	validation.Errors
}

// Is matches ErrDuplicateEmail.
func (DuplicateError) Is(target error) bool {
	return target == ErrDuplicateEmail
}

// Unwrap exposes the field errors to errors.As.
func (d DuplicateError) Unwrap() error {
	return d.Errors
}

func duplicate() error {
	return DuplicateError{Errors: validation.Errors{"email": {DuplicateEmailMessage}}}
}

func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())

	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}

// RecentMessages returns the newest contact messages.
func RecentMessages(db *gorm.DB, limit int) ([]models.ContactMessage, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var msgs []models.ContactMessage
	err := db.Order("created_at DESC, id DESC").Limit(limit).Find(&msgs).Error

	return msgs, err
}

// CountSubscribers returns the number of newsletter subscribers.
func CountSubscribers(db *gorm.DB) (int64, error) {
	if db == nil {
		return 0, ErrDBNil
	}

	var n int64
	err := db.Model(&models.Subscriber{}).Count(&n).Error

	return n, err
}
