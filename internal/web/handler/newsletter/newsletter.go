// Package newsletter handles newsletter signups and cancellations.
package newsletter

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/gywan/gywan-site/internal/config"
	"github.com/gywan/gywan-site/internal/db/controller/intake"
	"github.com/gywan/gywan-site/internal/validation"
	"github.com/gywan/gywan-site/internal/web/handler"
	"github.com/gywan/gywan-site/internal/web/navigation"
)

const (
	// Path is the base path of the newsletter routes.
	Path = handler.RootPath + "newsletter"

	// LegacySubscribePath is the signup address used by older page scripts.
	LegacySubscribePath = handler.RootPath + "newsletter-subscribe"

	// UnsubscribedTemplate confirms a cancellation.
	UnsubscribedTemplate = "newsletter/unsubscribed"

	// SuccessMessage is returned after a signup.
	SuccessMessage = "Thank you for subscribing!"
)

// Service is the newsletter handler service.
type Service struct {
	handler.Service
	db *gorm.DB
}

// Handler is the newsletter handler.
var Handler = Service{}

// Init initializes the newsletter handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.db = db

	app.Route(Path, func(router fiber.Router) {
		router.Post("/subscribe", s.Subscribe)
		router.Get("/unsubscribe/:token", s.Unsubscribe)
	})
	app.Post(LegacySubscribePath, s.Subscribe)
}

// Subscribe adds the posted address. It answers with JSON in every case.
func (s *Service) Subscribe(c *fiber.Ctx) error {
	form := intake.NewsletterForm{}

	if err := c.BodyParser(&form); err != nil {
		return handler.JSONError(c, fiber.StatusBadRequest, "Invalid request")
	}

	if _, err := intake.Subscribe(s.db, form); err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			return c.JSON(fiber.Map{
				"success": false,
				"errors":  verrs,
			})
		}

		log.Error().Err(err).Msg("failed to store subscriber")

		return handler.JSONError(c, fiber.StatusInternalServerError, "Subscription failed, please try again later.")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": SuccessMessage,
	})
}

// Unsubscribe removes the subscriber owning the token.
func (s *Service) Unsubscribe(c *fiber.Ctx) error {
	sub, err := intake.Unsubscribe(s.db, c.Params("token"))
	if err != nil {
		if errors.Is(err, intake.ErrSubscriberNotFound) {
			return fiber.ErrNotFound
		}

		log.Error().Err(err).Msg("failed to remove subscriber")

		return fiber.ErrInternalServerError
	}

	log.Info().Uint64("subscriber_id", sub.ID).Msg("newsletter subscription cancelled")

	nav := navigation.NewContext("Newsletter", "newsletter", "unsubscribe").
		AddBreadcrumb("Home", handler.RootPath, false).
		AddBreadcrumb("Unsubscribed", c.Path(), true)

	return handler.Render(c, UnsubscribedTemplate, nav, fiber.Map{
		"Email": sub.Email,
	})
}
