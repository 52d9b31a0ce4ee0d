package daemon

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gywan/gywan-site/internal/auth"
	"github.com/gywan/gywan-site/internal/config"
	"github.com/gywan/gywan-site/internal/db/models"
)

// DefaultMobileProviders are offered for mobile money pledges on a fresh database.
var DefaultMobileProviders = []string{"Orange Money", "Africell Money", "QMoney"}

// DefaultBanks are offered for bank transfer pledges on a fresh database.
var DefaultBanks = []string{
	"Ecobank Sierra Leone",
	"Rokel Commercial Bank",
	"Zenith Bank",
	"United Bank for Africa (UBA)",
	"Guaranty Trust Bank (GTBank)",
	"Standard Chartered Bank",
	"Access Bank",
	"Sierra Leone Commercial Bank",
	"Union Trust Bank",
	"First International Bank",
}

// Seed creates the bootstrap admin and the default payment choices.
// Existing rows are never changed.
func Seed(cfg *config.Config, db *gorm.DB) error {
	if err := seedAdmin(cfg, db); err != nil {
		return err
	}

	var providers int64
	if err := db.Model(&models.MobileProvider{}).Count(&providers).Error; err != nil {
		return err
	}

	if providers == 0 {
		rows := make([]models.MobileProvider, 0, len(DefaultMobileProviders))
		for _, name := range DefaultMobileProviders {
			rows = append(rows, models.MobileProvider{Name: name, IsActive: true})
		}

		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error; err != nil {
			return fmt.Errorf("seed mobile providers: %w", err)
		}
	}

	var banks int64
	if err := db.Model(&models.Bank{}).Count(&banks).Error; err != nil {
		return err
	}

	if banks == 0 {
		rows := make([]models.Bank, 0, len(DefaultBanks))
		for _, name := range DefaultBanks {
			rows = append(rows, models.Bank{Name: name, IsActive: true})
		}

		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error; err != nil {
			return fmt.Errorf("seed banks: %w", err)
		}
	}

	return nil
}

func seedAdmin(cfg *config.Config, db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 || cfg.Admin.Username == "" {
		return nil
	}

	if cfg.Admin.InitialPassword == "" {
		log.Warn().Msg("no admin account exists and admin.initialpassword is empty, use 'user create'")
		return nil
	}

	_, err := auth.NewLocalProvider(db).CreateUser(cfg.Admin.Username, "", cfg.Admin.InitialPassword)
	if err != nil && !errors.Is(err, auth.ErrUserNameExists) {
		return fmt.Errorf("seed admin: %w", err)
	}

	log.Warn().Str("username", cfg.Admin.Username).Msg("created initial admin account, change its password")

	return nil
}
