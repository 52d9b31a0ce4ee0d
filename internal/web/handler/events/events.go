// Package events serves the event listing and event pages.
package events

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/gywan/gywan-site/internal/config"
	"github.com/gywan/gywan-site/internal/db/controller/catalog"
	"github.com/gywan/gywan-site/internal/db/models"
	"github.com/gywan/gywan-site/internal/web/handler"
	"github.com/gywan/gywan-site/internal/web/handler/content"
)

// Handler serves /events.
var Handler = content.Section[models.Event]{
	Kind:      catalog.KindEvent,
	Title:     "Events",
	ItemTitle: func(e *models.Event) string { return e.Title },
	List:      catalog.ListEvents,
	Get:       catalog.GetEvent,
}

// Init registers the event routes.
func Init(app *fiber.App, cfg *config.Config, db *gorm.DB) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	Handler.Register(app, db)
}
