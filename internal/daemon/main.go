// Package daemon wires configuration, database and services into the running web site.
package daemon

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	sessionmysql "github.com/gofiber/storage/mysql/v2"
	sessionpostgres "github.com/gofiber/storage/postgres/v3"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/gywan/gywan-site/internal/config"
	"github.com/gywan/gywan-site/internal/db"
	"github.com/gywan/gywan-site/internal/db/dsn"
	"github.com/gywan/gywan-site/internal/donation"
	"github.com/gywan/gywan-site/internal/mail"
	"github.com/gywan/gywan-site/internal/payment"
	"github.com/gywan/gywan-site/internal/storage"
	"github.com/gywan/gywan-site/internal/web"
	"github.com/gywan/gywan-site/internal/web/session"
)

const (
	// MailQueueSize is the number of notifications waiting for delivery.
	MailQueueSize = 100

	sessionTable = "sessions"
)

// Daemon represents the main application daemon.
type Daemon struct {
	cfg            *config.Config
	db             *gorm.DB
	webService     *web.Service
	mailer         *mail.Async
	sessionStorage fiber.Storage
}

// Start serves http until SIGINT or SIGTERM and shuts down gracefully.
func (d *Daemon) Start() error {
	addr := fmt.Sprintf(":%d", d.cfg.Webserver.Port)

	go func() {
		log.Info().Str("addr", addr).Str("url", d.cfg.Webserver.URL).Msg("starting web service")

		if err := d.webService.Start(addr); err != nil {
			log.Error().Err(err).Msg("web service stopped")
		}
	}()

	d.webService.WaitShutdown()

	return d.Close()
}

// Close flushes queued mail and releases the storage connections.
func (d *Daemon) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), d.cfg.Mail.Timeout*2)
	defer cancel()

	if err := d.mailer.Close(ctx); err != nil {
		log.Error().Err(err).Msg("mail queue not drained")
	}

	if d.sessionStorage != nil {
		if err := d.sessionStorage.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close session storage")
		}
	}

	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

// OpenDB connects, migrates and seeds the configured database.
func OpenDB(cfg *config.Config) (*gorm.DB, error) {
	gdb, err := db.Open(cfg)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(gdb); err != nil {
		return nil, err
	}

	if err := Seed(cfg, gdb); err != nil {
		return nil, err
	}

	return gdb, nil
}

// newSessionStorage keeps sessions in the site database. SQLite sites use
// fiber's in-memory storage.
func newSessionStorage(cfg *config.Config) fiber.Storage {
	switch cfg.DB.GormEngine {
	case config.EngineMySQL:
		return sessionmysql.New(sessionmysql.Config{
			ConnectionURI: dsn.MySQL(cfg),
			Table:         sessionTable,
		})
	case config.EnginePostgres:
		return sessionpostgres.New(sessionpostgres.Config{
			ConnectionURI: dsn.Postgres(cfg),
			Table:         sessionTable,
		})
	default:
		return nil
	}
}

// New creates a Daemon with all services configured in cfg.
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		log.Fatal().Msg("config is nil")
		return nil, nil
	}

	gdb, err := OpenDB(cfg)
	if err != nil {
		return nil, err
	}

	sessionStorage := newSessionStorage(cfg)
	session.Init(sessionStorage, cfg.Webserver.Session.ExpiryTime)

	smtp, err := mail.New(cfg.Mail)
	if err != nil {
		return nil, fmt.Errorf("configure mail: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("configure storage: %w", err)
	}

	if cfg.Stripe.SecretKey == "" {
		log.Warn().Msg("stripe secret key is empty, card donations will fail")
	}

	provider := payment.NewStripe(cfg.Stripe.SecretKey, cfg.Stripe.Timeout)
	mailer := mail.NewAsync(smtp, MailQueueSize)

	return &Daemon{
		cfg:            cfg,
		db:             gdb,
		mailer:         mailer,
		sessionStorage: sessionStorage,
		webService: web.New(cfg, gdb, web.Deps{
			Mailer:   mailer,
			Pipeline: donation.New(gdb, provider, cfg.Stripe.Currency),
			Store:    store,
		}),
	}, nil
}
