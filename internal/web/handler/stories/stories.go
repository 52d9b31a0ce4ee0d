// Package stories serves success stories.
package stories

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/gywan/gywan-site/internal/config"
	"github.com/gywan/gywan-site/internal/db/controller/catalog"
	"github.com/gywan/gywan-site/internal/db/controller/display"
	"github.com/gywan/gywan-site/internal/db/models"
	"github.com/gywan/gywan-site/internal/web/handler"
	"github.com/gywan/gywan-site/internal/web/handler/content"
)

// Handler serves /stories.
var Handler = content.Section[models.Story]{
	Kind:       catalog.KindStory,
	Title:      "Success Stories",
	ItemTitle:  func(s *models.Story) string { return s.Title },
	List:       catalog.ListStories,
	Get:        catalog.GetStory,
	ListExtras: testimonials,
}

// testimonials are shown next to the story list.
func testimonials(_ *fiber.Ctx, db *gorm.DB, _ *models.Story, data fiber.Map) error {
	list, err := display.Testimonials(db)
	if err != nil {
		log.Error().Err(err).Msg("failed to load testimonials")
		return fiber.ErrInternalServerError
	}

	data["Testimonials"] = list

	return nil
}

// Init registers the story routes.
func Init(app *fiber.App, cfg *config.Config, db *gorm.DB) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	Handler.Register(app, db)
}
