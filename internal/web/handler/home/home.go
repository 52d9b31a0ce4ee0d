// Package home renders the homepage.
package home

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/gywan/gywan-site/internal/config"
	"github.com/gywan/gywan-site/internal/web/handler"
	"github.com/gywan/gywan-site/internal/web/navigation"
)

// TemplateName is the homepage template.
const TemplateName = "index"

// Service is the homepage handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
	now func() time.Time
}

// Handler is the homepage handler.
var Handler = Service{}

// Init initializes the homepage handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.db = db

	if s.now == nil {
		s.now = time.Now
	}

	app.Get(handler.RootPath, s.Get)
}

// Get handles the homepage rendering.
func (s *Service) Get(c *fiber.Ctx) error {
	nav := navigation.NewContext(s.cfg.Title, "home", "home").
		AddBreadcrumb("Home", handler.RootPath, true)

	home, err := Compose(s.db, s.now())
	if err != nil {
		log.Error().Err(err).Msg("failed to compose homepage")
		return fiber.ErrInternalServerError
	}

	return handler.Render(c, TemplateName, nav, fiber.Map{
		"Home": home,
	})
}
