package config

import (
	"time"

	"github.com/gywan/gywan-site/internal/logger"
)

// Session settings.
type Session struct {
	ExpiryTime time.Duration
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Webserver Webserver
	Stripe    Stripe
	Mail      Mail
	Storage   Storage
	Admin     Admin
}

// Webserver implement webserver settings.
type Webserver struct {
	BrowseStatic   bool    // enable static file browsing (for development purposes only)
	DisableRecover bool    // disable recover middleware
	Domain         string  // domain name for the webserver
	Port           int     // listening port for the webserver
	ShutDownTime   int     // wait time for shutdown
	URL            string  // base url for the webserver
	Session        Session // session settings
}

// Stripe holds the payment provider settings.
type Stripe struct {
	PublicKey string
	SecretKey string
	Currency  string        // ISO currency code, lower case
	Timeout   time.Duration // upper bound for a single provider call
}

// Mail holds the outgoing mail settings used for contact notifications.
type Mail struct {
	Enabled  bool
	Host     string
	Port     int
	Username string
	Password string
	From     string   // sender address
	To       []string // recipients of contact notifications
	TLS      bool
	Timeout  time.Duration
}

// Storage backends.
const (
	StorageLocal = "local"
	StorageS3    = "s3"
)

// Storage selects where resource files are kept.
type Storage struct {
	Backend    string // "local" or "s3"
	LocalPath  string // media directory for the local backend
	URLPrefix  string // public prefix the local backend serves files under
	Bucket     string
	Region     string
	PresignTTL time.Duration
}

// Admin holds the bootstrap settings for the admin account.
type Admin struct {
	Username        string
	InitialPassword string
}
