// Package donation persists donation records.
package donation

import (
	"errors"

	"gorm.io/gorm"

	"github.com/gywan/gywan-site/internal/db/models"
)

var (
	// ErrDonationNotFound is returned when no donation matches.
	ErrDonationNotFound = errors.New("donation not found")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
	// ErrUnknownProvider is returned when a pledge refers to an inactive or missing provider or bank.
	ErrUnknownProvider = errors.New("unknown mobile provider or bank")
)

// Create stores a donation record.
func Create(db *gorm.DB, d *models.Donation) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Create(d).Error
}

// GetByPaymentIntent returns the donation created for a provider payment intent.
func GetByPaymentIntent(db *gorm.DB, intentID string) (*models.Donation, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if intentID == "" {
		return nil, ErrDonationNotFound
	}

	var d models.Donation
	if err := db.Where("payment_intent_id = ?", intentID).First(&d).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDonationNotFound
		}

		return nil, err
	}

	return &d, nil
}

// Recent returns the newest donations with their provider and bank.
func Recent(db *gorm.DB, limit int) ([]models.Donation, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var out []models.Donation
	err := db.Preload("MobileProvider").Preload("Bank").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&out).Error

	return out, err
}

// Count returns the number of donation records.
func Count(db *gorm.DB) (int64, error) {
	if db == nil {
		return 0, ErrDBNil
	}

	var n int64
	err := db.Model(&models.Donation{}).Count(&n).Error

	return n, err
}

// ActiveMobileProvider returns an active provider by id.
func ActiveMobileProvider(db *gorm.DB, id uint64) (*models.MobileProvider, error) {
	return activeChoice[models.MobileProvider](db, id)
}

// ActiveBank returns an active bank by id.
func ActiveBank(db *gorm.DB, id uint64) (*models.Bank, error) {
	return activeChoice[models.Bank](db, id)
}

func activeChoice[T any](db *gorm.DB, id uint64) (*T, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var item T
	if err := db.Where("is_active = ?", true).First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownProvider
		}

		return nil, err
	}

	return &item, nil
}
