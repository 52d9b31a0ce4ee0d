// Package pages serves the mostly static About and Team pages.
package pages

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/gywan/gywan-site/internal/config"
	"github.com/gywan/gywan-site/internal/db/controller/display"
	"github.com/gywan/gywan-site/internal/web/handler"
	"github.com/gywan/gywan-site/internal/web/navigation"
)

const (
	// AboutPath is the about page.
	AboutPath = handler.RootPath + "about"
	// TeamPath is the team page.
	TeamPath = handler.RootPath + "team"

	// AboutTemplate is the about page template.
	AboutTemplate = "about/about"
	// TeamTemplate is the team page template.
	TeamTemplate = "about/team"
)

// Service is the static pages handler service.
type Service struct {
	handler.Service
	db *gorm.DB
}

// Handler is the static pages handler.
var Handler = Service{}

// Init initializes the static pages handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.db = db

	app.Get(AboutPath, s.About)
	app.Get(TeamPath, s.Team)
}

// About renders the about page with the active team.
func (s *Service) About(c *fiber.Ctx) error {
	nav := navigation.NewContext("About Us", "about", "about").
		AddBreadcrumb("Home", handler.RootPath, false).
		AddBreadcrumb("About", AboutPath, true)

	members, err := display.TeamMembers(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to load team members")
		return fiber.ErrInternalServerError
	}

	return handler.Render(c, AboutTemplate, nav, fiber.Map{
		"TeamMembers": members,
	})
}

// Team renders the team page with team members and supporters.
func (s *Service) Team(c *fiber.Ctx) error {
	nav := navigation.NewContext("Our Team", "about", "team").
		AddBreadcrumb("Home", handler.RootPath, false).
		AddBreadcrumb("About", AboutPath, false).
		AddBreadcrumb("Team", TeamPath, true)

	members, err := display.TeamMembers(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to load team members")
		return fiber.ErrInternalServerError
	}

	supporters, err := display.Supporters(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to load supporters")
		return fiber.ErrInternalServerError
	}

	return handler.Render(c, TeamTemplate, nav, fiber.Map{
		"TeamMembers": members,
		"Supporters":  supporters,
	})
}
