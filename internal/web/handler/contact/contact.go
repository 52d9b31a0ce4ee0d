// Package contact handles the contact form.
package contact

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/gywan/gywan-site/internal/config"
	"github.com/gywan/gywan-site/internal/db/controller/intake"
	"github.com/gywan/gywan-site/internal/mail"
	"github.com/gywan/gywan-site/internal/validation"
	"github.com/gywan/gywan-site/internal/web/handler"
	"github.com/gywan/gywan-site/internal/web/navigation"
	"github.com/gywan/gywan-site/internal/web/session"
)

const (
	// Path is the contact page.
	Path = handler.RootPath + "contact"

	// TemplateName is the contact page template.
	TemplateName = "contact"

	// SuccessMessage is flashed after a stored submission.
	SuccessMessage = "Thank you for your message! We will get back to you soon."
)

// Service is the contact handler service.
type Service struct {
	handler.Service
	db     *gorm.DB
	mailer mail.Mailer
}

// Handler is the contact handler.
var Handler = Service{}

// Init initializes the contact handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, mailer mail.Mailer) {
	if app == nil || cfg == nil || db == nil || mailer == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.db = db
	s.mailer = mailer

	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RouterRootPath, s.Get)
		router.Post(handler.RouterRootPath, s.Post)
	})
}

func nav() *navigation.Context {
	return navigation.NewContext("Contact Us", "contact", "contact").
		AddBreadcrumb("Home", handler.RootPath, false).
		AddBreadcrumb("Contact", Path, true)
}

// Get renders an empty contact form.
func (s *Service) Get(c *fiber.Ctx) error {
	return handler.Render(c, TemplateName, nav(), fiber.Map{
		"Form": intake.ContactForm{},
	})
}

// Post stores the message and notifies the operators. A failing
// notification is logged and does not affect the visitor.
func (s *Service) Post(c *fiber.Ctx) error {
	form := intake.ContactForm{}

	if err := c.BodyParser(&form); err != nil {
		log.Warn().Err(err).Msg("unreadable contact form")
		return fiber.ErrBadRequest
	}

	msg, err := intake.SubmitContact(s.db, form)
	if err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			return handler.Render(c.Status(fiber.StatusUnprocessableEntity), TemplateName, nav(), fiber.Map{
				"Form":   form,
				"Errors": verrs,
			})
		}

		log.Error().Err(err).Msg("failed to store contact message")

		return fiber.ErrInternalServerError
	}

	if err := s.mailer.Send(c.UserContext(), mail.ContactNotification(msg)); err != nil {
		log.Error().Err(err).
			Uint64("contact_id", msg.ID).
			Str("subject", msg.Subject).
			Str("email", msg.Email).
			Msg("failed to queue contact notification")
	}

	session.AddFlash(c, session.LevelSuccess, SuccessMessage)

	return c.Redirect(Path)
}
