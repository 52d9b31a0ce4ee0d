package handler

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/gywan/gywan-site/internal/config"
)

// Service is a page handler that only needs the app, the config and the database.
// Handlers with further collaborators (mailer, payment pipeline, file store)
// take them as extra Init arguments and are registered one by one.
type Service interface {
	Init(app *fiber.App, cfg *config.Config, db *gorm.DB)
}

// InitAll registers the routes of every service in order.
func InitAll(app *fiber.App, cfg *config.Config, db *gorm.DB, services ...Service) {
	for _, s := range services {
		s.Init(app, cfg, db)
	}
}
