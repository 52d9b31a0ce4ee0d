// Package db opens and migrates the site database.
package db

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/gywan/gywan-site/internal/config"
	"github.com/gywan/gywan-site/internal/db/dsn"
	"github.com/gywan/gywan-site/internal/db/models"
)

// NowFunc is used by gorm for CreatedAt/UpdatedAt. All timestamps are UTC.
func NowFunc() time.Time {
	return time.Now().UTC()
}

// Dialector returns the gorm dialector for the configured engine.
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DB.GormEngine {
	case config.EngineMySQL:
		return gormmysql.Open(dsn.MySQL(cfg)), nil
	case config.EnginePostgres:
		return gormpostgres.Open(dsn.Postgres(cfg)), nil
	case config.EngineSQLite, "":
		if dir := filepath.Dir(cfg.DB.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("create database directory: %w", err)
			}
		}

		return sqlite.Open(cfg.DB.Path), nil
	default:
		return nil, config.ErrUnknownGormEngine
	}
}

// Open connects to the configured database.
func Open(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	level := gormlogger.Silent
	if cfg.DevMode {
		level = gormlogger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		NowFunc: NowFunc,
		Logger:  gormlogger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.DB.GormEngine, err)
	}

	log.Info().Str("engine", cfg.DB.GormEngine).Msg("database connected")

	return db, nil
}

// Migrate creates or updates all tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	for table, fill := range map[string]func(*gorm.DB) error{
		"events":     backfillSearch[models.Event, *models.Event],
		"stories":    backfillSearch[models.Story, *models.Story],
		"blog_posts": backfillSearch[models.BlogPost, *models.BlogPost],
		"resources":  backfillSearch[models.Resource, *models.Resource],
	} {
		if err := fill(db); err != nil {
			return fmt.Errorf("index %s for search: %w", table, err)
		}
	}

	return nil
}

// backfillSearch writes the search document of rows stored before it existed.
func backfillSearch[T any, PT interface {
	*T
	SearchDocument() string
}](db *gorm.DB) error {
	var rows []T

	return db.Where("search_text IS NULL OR search_text = ?", "").
		FindInBatches(&rows, 100, func(_ *gorm.DB, _ int) error { //nolint:mnd
			for i := range rows {
				row := PT(&rows[i])
				if err := db.Model(row).UpdateColumn("search_text", row.SearchDocument()).Error; err != nil {
					return err
				}
			}

			return nil
		}).Error
}
