// Package admin serves the staff dashboard below /admin.
package admin

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/gywan/gywan-site/internal/config"
	"github.com/gywan/gywan-site/internal/db/controller/catalog"
	"github.com/gywan/gywan-site/internal/db/controller/donation"
	"github.com/gywan/gywan-site/internal/db/controller/intake"
	"github.com/gywan/gywan-site/internal/web/handler"
	"github.com/gywan/gywan-site/internal/web/middleware/auth"
	"github.com/gywan/gywan-site/internal/web/navigation"
	"github.com/gywan/gywan-site/internal/web/session"
)

const (
	// Path is the dashboard.
	Path = handler.RootPath + "admin"

	// TogglePath flips the visibility of a catalog item.
	TogglePath = "/:kind/:id<int>/toggle"

	// TemplateName is the dashboard template.
	TemplateName = "admin/dashboard"

	// ListSize is the number of rows per dashboard table.
	ListSize = 10
)

// Kinds lists the catalog sections in dashboard order.
var Kinds = []catalog.Kind{catalog.KindEvent, catalog.KindStory, catalog.KindBlogPost, catalog.KindResource}

// Section is one catalog table on the dashboard.
type Section struct {
	Kind  catalog.Kind
	Total int64
	Rows  []catalog.Row
}

// Service is the admin handler service.
type Service struct {
	handler.Service
	db *gorm.DB
}

// Handler is the admin handler.
var Handler = Service{}

// Init registers the admin routes. Access control is done by the auth middleware.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.db = db

	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RouterRootPath, s.Get)
		router.Post(TogglePath, s.Toggle)
	})
}

// Get renders the dashboard.
func (s *Service) Get(c *fiber.Ctx) error {
	counts, err := catalog.CountAll(s.db)
	if err != nil {
		return s.internal(err, "failed to count catalog")
	}

	sections := make([]Section, 0, len(Kinds))

	for _, kind := range Kinds {
		rows, err := catalog.Latest(s.db, kind, ListSize)
		if err != nil {
			return s.internal(err, "failed to load "+string(kind))
		}

		sections = append(sections, Section{Kind: kind, Total: counts[kind], Rows: rows})
	}

	donations, err := donation.Recent(s.db, ListSize)
	if err != nil {
		return s.internal(err, "failed to load donations")
	}

	donationCount, err := donation.Count(s.db)
	if err != nil {
		return s.internal(err, "failed to count donations")
	}

	messages, err := intake.RecentMessages(s.db, ListSize)
	if err != nil {
		return s.internal(err, "failed to load messages")
	}

	subscribers, err := intake.CountSubscribers(s.db)
	if err != nil {
		return s.internal(err, "failed to count subscribers")
	}

	user, _ := auth.CurrentUser(c)

	nav := navigation.NewContext("Dashboard", "admin", "dashboard").
		AddBreadcrumb("Home", handler.RootPath, false).
		AddBreadcrumb("Dashboard", Path, true)

	return handler.Render(c, TemplateName, nav, fiber.Map{
		"User":          user,
		"Sections":      sections,
		"Donations":     donations,
		"DonationCount": donationCount,
		"Messages":      messages,
		"Subscribers":   subscribers,
	})
}

// Toggle flips is_active of the item and returns to the dashboard.
func (s *Service) Toggle(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return err
	}

	kind := catalog.Kind(c.Params("kind"))

	active, err := catalog.ToggleActive(s.db, kind, id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) || errors.Is(err, catalog.ErrUnknownKind) {
			return fiber.ErrNotFound
		}

		return s.internal(err, "failed to toggle item")
	}

	state := "hidden"
	if active {
		state = "visible"
	}

	log.Info().Str("kind", string(kind)).Uint64("id", id).Bool("active", active).Msg("item visibility changed")
	session.AddFlash(c, session.LevelSuccess, fmt.Sprintf("%s #%d is now %s.", kind, id, state))

	return c.Redirect(Path)
}

func (s *Service) internal(err error, msg string) error {
	log.Error().Err(err).Msg(msg)
	return fiber.ErrInternalServerError
}
