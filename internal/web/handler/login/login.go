// Package login signs site administrators in.
package login

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/gywan/gywan-site/internal/auth"
	"github.com/gywan/gywan-site/internal/config"
	"github.com/gywan/gywan-site/internal/web/handler"
	"github.com/gywan/gywan-site/internal/web/navigation"
	"github.com/gywan/gywan-site/internal/web/session"
)

const (
	// Path is the path to the login page.
	Path = handler.RootPath + "login"

	// TemplateName is the login page template.
	TemplateName = "login"

	// SuccessPath is where a successful login lands.
	SuccessPath = handler.RootPath + "admin"
)

// Form is the posted login form.
type Form struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

// Service is the login handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	localAuth *auth.LocalProvider
}

// Handler is the login handler.
var Handler = Service{}

// Init initializes the login handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.localAuth = auth.NewLocalProvider(db)

	// register routes
	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RouterRootPath, s.Get)
		router.Post(handler.RouterRootPath, s.Post)
	})
}

func nav() *navigation.Context {
	return navigation.NewContext("Admin login", "admin", "login").
		AddBreadcrumb("Home", handler.RootPath, false).
		AddBreadcrumb("Login", Path, true)
}

// Get handles the login page rendering.
func (s *Service) Get(c *fiber.Ctx) error {
	return handler.Render(c, TemplateName, nav(), nil)
}

func (s *Service) fail(c *fiber.Ctx, username string, err error) error {
	return handler.Render(c, TemplateName, nav(), fiber.Map{
		"username": username,
		"error":    err.Error(),
	})
}

// Post handles the login form submission.
func (s *Service) Post(c *fiber.Ctx) error {
	form := new(Form)

	if err := c.BodyParser(form); err != nil {
		return s.fail(c, "", ErrInvalidFormData)
	}

	user, err := s.localAuth.Authenticate(form.Username, form.Password)
	if err != nil {
		if !errors.Is(err, auth.ErrUserNotFound) &&
			!errors.Is(err, auth.ErrInvalidPassword) &&
			!errors.Is(err, auth.ErrUserAccountDisabled) &&
			!errors.Is(err, auth.ErrEmptyCredentials) {
			log.Error().Err(err).Str("username", form.Username).Msg("login failed")

			return s.fail(c, form.Username, ErrInternalServerError)
		}

		log.Warn().Err(err).Str("username", form.Username).Str("ip", c.IP()).Msg("rejected login")

		return s.fail(c, form.Username, ErrInvalidCredentials)
	}

	sessionID, err := session.GenerateSessionID()
	if err != nil {
		log.Error().Err(err).Msg("failed to generate session ID")
		return s.fail(c, form.Username, ErrInternalServerError)
	}

	userSession := &session.Data{
		User: session.User{ID: user.ID, Username: user.Username},
	}

	if err = userSession.Write(sessionID, s.cfg.Webserver.Session.ExpiryTime); err != nil {
		log.Error().Err(err).Msg("failed to write session")
		return s.fail(c, form.Username, ErrInternalServerError)
	}

	// set login cookie
	cookieSettings := &fiber.Cookie{
		Name:     session.CookieName,
		Value:    sessionID,
		MaxAge:   int(s.cfg.Webserver.Session.ExpiryTime.Seconds()),
		Secure:   true,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	}

	if s.cfg.DevMode {
		cookieSettings.Secure = false
	}

	c.Cookie(cookieSettings)

	log.Info().Str("username", user.Username).Msg("admin logged in")

	return c.Redirect(SuccessPath)
}
