// Package donate serves the donation page, the card payment endpoint and
// offline pledges.
package donate

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/gywan/gywan-site/internal/config"
	"github.com/gywan/gywan-site/internal/db/controller/display"
	controller "github.com/gywan/gywan-site/internal/db/controller/donation"
	"github.com/gywan/gywan-site/internal/db/models"
	"github.com/gywan/gywan-site/internal/donation"
	"github.com/gywan/gywan-site/internal/validation"
	"github.com/gywan/gywan-site/internal/web/handler"
	"github.com/gywan/gywan-site/internal/web/navigation"
	"github.com/gywan/gywan-site/internal/web/session"
)

const (
	// Path is the donation page.
	Path = handler.RootPath + "donate"
	// ProcessPath creates a card payment intent.
	ProcessPath = Path + "/process"
	// LegacyProcessPath is the intent address used by older page scripts.
	LegacyProcessPath = Path + "/create-payment-intent"
	// PledgePath records an offline pledge.
	PledgePath = Path + "/pledge"
	// ThankYouPath is shown after a donation.
	ThankYouPath = Path + "/thank-you"

	// TemplateName is the donation page template.
	TemplateName = "donate/donate"
	// ThankYouTemplate is the thank-you page template.
	ThankYouTemplate = "donate/thank-you"

	// ImpactStoryLimit caps the stories shown next to the form.
	ImpactStoryLimit = 4

	// PledgeMessage is flashed after a recorded pledge.
	PledgeMessage = "Thank you for your pledge! We will contact you with payment instructions."
)

// Service is the donation handler service.
type Service struct {
	handler.Service
	cfg      *config.Config
	db       *gorm.DB
	pipeline *donation.Pipeline
}

// Handler is the donation handler.
var Handler = Service{}

// Init initializes the donation handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, pipeline *donation.Pipeline) {
	if app == nil || cfg == nil || db == nil || pipeline == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.db = db
	s.pipeline = pipeline

	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RouterRootPath, s.Get)
		router.Post("/process", s.Process)
		router.Post("/create-payment-intent", s.Process)
		router.Post("/pledge", s.Pledge)
		router.Get("/thank-you", s.ThankYou)
	})
}

func nav(title, page string) *navigation.Context {
	return navigation.NewContext(title, "donate", page).
		AddBreadcrumb("Home", handler.RootPath, false).
		AddBreadcrumb("Donate", Path, page == "donate")
}

func (s *Service) page(c *fiber.Ctx, form donation.PledgeForm, errs validation.Errors) error {
	stories, err := display.ImpactStories(s.db, ImpactStoryLimit)
	if err != nil {
		log.Error().Err(err).Msg("failed to load impact stories")
		return fiber.ErrInternalServerError
	}

	providers, err := display.MobileProviders(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to load mobile providers")
		return fiber.ErrInternalServerError
	}

	banks, err := display.Banks(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to load banks")
		return fiber.ErrInternalServerError
	}

	return handler.Render(c, TemplateName, nav("Donate", "donate"), fiber.Map{
		"StripePublicKey": s.cfg.Stripe.PublicKey,
		"Currency":        s.cfg.Stripe.Currency,
		"ImpactStories":   stories,
		"MobileProviders": providers,
		"Banks":           banks,
		"PledgeForm":      form,
		"Errors":          errs,
	})
}

// Get renders the donation page.
func (s *Service) Get(c *fiber.Ctx) error {
	return s.page(c, donation.PledgeForm{Frequency: string(models.DonationOneTime)}, nil)
}

// Process creates a payment intent for the posted JSON donation.
// Every failure is answered with 400 and the error kind.
func (s *Service) Process(c *fiber.Ctx) error {
	var req donation.Request

	var res *donation.Result

	err := c.BodyParser(&req)
	if err != nil {
		err = donation.MalformedRequest(err)
	} else {
		res, err = s.pipeline.Process(c.UserContext(), req)
	}

	if err != nil {
		var derr *donation.Error
		if !errors.As(err, &derr) {
			derr = &donation.Error{Kind: donation.KindStorageFailed, Msg: "Unexpected error.", Err: err}
		}

		body := fiber.Map{
			"success":    false,
			"error":      derr.Msg,
			"error_kind": derr.Kind,
		}

		if len(derr.Fields) > 0 {
			body["errors"] = derr.Fields
		}

		return c.Status(fiber.StatusBadRequest).JSON(body)
	}

	return c.JSON(fiber.Map{
		"success":           true,
		"client_secret":     res.ClientSecret,
		"donation_id":       res.DonationID,
		"payment_intent_id": res.PaymentIntentID,
	})
}

// Pledge records an offline mobile money or bank transfer donation.
func (s *Service) Pledge(c *fiber.Ctx) error {
	form := donation.PledgeForm{}

	if err := c.BodyParser(&form); err != nil {
		log.Warn().Err(err).Msg("unreadable pledge form")
		return fiber.ErrBadRequest
	}

	if _, err := s.pipeline.Pledge(c.UserContext(), form); err != nil {
		var derr *donation.Error
		if errors.As(err, &derr) && derr.Kind == donation.KindInvalidRequest {
			c.Status(fiber.StatusUnprocessableEntity)

			return s.page(c, form, derr.Fields)
		}

		session.AddFlash(c, session.LevelError, "Your pledge could not be recorded. Please try again.")

		return c.Redirect(Path)
	}

	session.AddFlash(c, session.LevelSuccess, PledgeMessage)

	return c.Redirect(ThankYouPath)
}

// ThankYou renders the confirmation page. A known payment_intent shows
// the matching donation.
func (s *Service) ThankYou(c *fiber.Ctx) error {
	data := fiber.Map{}

	if intentID := c.Query("payment_intent"); intentID != "" {
		d, err := controller.GetByPaymentIntent(s.db, intentID)

		switch {
		case err == nil:
			data["Donation"] = d
		case errors.Is(err, controller.ErrDonationNotFound):
			log.Warn().Str("payment_intent_id", intentID).Msg("thank-you page for unknown payment intent")
		default:
			log.Error().Err(err).Str("payment_intent_id", intentID).Msg("failed to load donation")
		}
	}

	n := nav("Thank You", "thank-you").AddBreadcrumb("Thank You", ThankYouPath, true)

	return handler.Render(c, ThankYouTemplate, n, data)
}
