// Package web assembles the fiber application serving the public site and the admin area.
package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/template/html/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/gywan/gywan-site/internal/config"
	"github.com/gywan/gywan-site/internal/donation"
	accesslog "github.com/gywan/gywan-site/internal/logger/adapter/fiber"
	"github.com/gywan/gywan-site/internal/mail"
	"github.com/gywan/gywan-site/internal/storage"
	"github.com/gywan/gywan-site/internal/web/handler"
	"github.com/gywan/gywan-site/internal/web/handler/admin"
	"github.com/gywan/gywan-site/internal/web/handler/blog"
	"github.com/gywan/gywan-site/internal/web/handler/contact"
	"github.com/gywan/gywan-site/internal/web/handler/donate"
	"github.com/gywan/gywan-site/internal/web/handler/events"
	"github.com/gywan/gywan-site/internal/web/handler/home"
	"github.com/gywan/gywan-site/internal/web/handler/login"
	"github.com/gywan/gywan-site/internal/web/handler/logout"
	"github.com/gywan/gywan-site/internal/web/handler/newsletter"
	"github.com/gywan/gywan-site/internal/web/handler/pages"
	"github.com/gywan/gywan-site/internal/web/handler/resources"
	"github.com/gywan/gywan-site/internal/web/handler/stories"
	"github.com/gywan/gywan-site/internal/web/middleware/auth"
	"github.com/gywan/gywan-site/internal/web/navigation"
)

const (
	// CheckAlivePath answers 503 while the service shuts down.
	CheckAlivePath = "/checkalive"

	// MetricsPath exposes prometheus metrics.
	MetricsPath = "/metrics"
)

// Deps are the services the handlers need besides the database.
type Deps struct {
	Mailer   mail.Mailer
	Pipeline *donation.Pipeline
	Store    storage.Store
}

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
	db           *gorm.DB
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown blocks until SIGINT or SIGTERM and stops the http server.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	// stop fiber http server
	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		err := s.App.Shutdown()
		if err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped ... good bye...")
}

// Alive reports whether the service accepts traffic.
func (s *Service) Alive() bool { return s.alive.Load() }

// SetFastShutDown skips the checkalive grace period on shutdown.
func (s *Service) SetFastShutDown(fast bool) { s.fastShutDown = fast }

func (s *Service) checkAlive(c *fiber.Ctx) error {
	if !s.alive.Load() {
		return c.SendStatus(fiber.StatusServiceUnavailable)
	}

	return c.SendString("ok")
}

// errorHandler renders the not found page and falls back to fiber's default handler.
func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code == fiber.StatusNotFound {
		nav := navigation.NewContext("Page not found", "", "").
			AddBreadcrumb("Home", handler.RootPath, false)

		c.Status(fiber.StatusNotFound)

		if rerr := handler.Render(c, handler.NotFoundTemplate, nav, nil); rerr == nil {
			return nil
		}
	}

	return fiber.DefaultErrorHandler(c, err)
}

// New creates the web service with all routes registered.
func New(cfg *config.Config, db *gorm.DB, deps Deps) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if db == nil {
		panic("db cannot be nil")
	}

	if deps.Mailer == nil {
		deps.Mailer = mail.Noop{}
	}

	if deps.Pipeline == nil || deps.Store == nil {
		panic("donation pipeline and storage cannot be nil")
	}

	templateEngine := html.NewFileSystem(templatesFS(), ".gohtml")

	// in debug mode, use local filesystem for templates
	if cfg.DevMode {
		templateEngine = html.New("./internal/web/templates", ".gohtml")
		templateEngine.ShouldReload = true

		log.Warn().Msg("debug mode enabled: using local filesystem for templates")
	}

	templateEngine.AddFuncMap(templateFuncs())

	// create fiber app
	app := fiber.New(
		fiber.Config{
			ReadBufferSize:    8192,
			AppName:           cfg.Title,
			CaseSensitive:     true,
			Prefork:           false,
			Immutable:         true,
			Views:             templateEngine,
			PassLocalsToViews: true,
			ErrorHandler:      errorHandler,
		},
	)

	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New(recover.Config{EnableStackTrace: cfg.DevMode}))
	}

	app.Use(accesslog.New(accesslog.Config{
		Config:        cfg.Log,
		CheckAliveURI: CheckAlivePath,
	}))

	service := &Service{
		cfg: cfg,
		App: app,
		db:  db,
	}
	service.alive.Store(true)

	app.Get(CheckAlivePath, service.checkAlive)
	app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))

	// serve embedded static files
	app.Use("/static",
		filesystem.New(
			filesystem.Config{
				Root:   staticFS(),
				Browse: cfg.Webserver.BrowseStatic,
			},
		),
	)

	// uploaded files of the local backend; s3 hands out presigned urls instead
	if local, ok := deps.Store.(*storage.Local); ok {
		app.Static(cfg.Storage.URLPrefix, local.Root())
	}

	app.Use(auth.Middleware)

	handler.InitAll(app, cfg, db, &home.Handler, &pages.Handler)
	events.Init(app, cfg, db)
	stories.Init(app, cfg, db)
	blog.Init(app, cfg, db)
	resources.Handler.Init(app, cfg, db, deps.Store)
	contact.Handler.Init(app, cfg, db, deps.Mailer)
	donate.Handler.Init(app, cfg, db, deps.Pipeline)
	handler.InitAll(app, cfg, db, &newsletter.Handler, &login.Handler, &admin.Handler)
	logout.Handler.Init(app, cfg)

	return service
}
