// Package config handles input from etc/*.toml files
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// EnvConfigJSON is the environment variable holding a JSON config override.
const EnvConfigJSON = "NONPROFIT_SITE_CONFIG_JSON"

const (
	defaultShutDownTime  = 5
	defaultCurrency      = "usd"
	defaultStripeTimeout = 30 * time.Second
	defaultMailTimeout   = 10 * time.Second
	defaultPresignTTL    = 15 * time.Minute
	defaultMediaPath     = "./media"
	defaultMediaPrefix   = "/media"
	defaultSessionExpiry = 24 * time.Hour
)

// ReadConfig from config file.
func ReadConfig(path string) (Config, error) {
	var (
		c             Config
		JSONConfigEnv string
		err           error
	)

	// Read main configuration
	if path == "" {
		path = "./etc/"
	}

	// secrets usually come from .env files in development, missing files are fine
	_ = godotenv.Load(".env", ".env.local")

	if _, err = toml.DecodeFile(path+"main.toml", &c); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	// override it from env
	JSONConfigEnv = os.Getenv(EnvConfigJSON)

	if JSONConfigEnv != "" {
		c, err = decodeAndMergeConfig(c, JSONConfigEnv)
		if err != nil {
			return c, err
		}
	}

	return c, validate(&c)
}

func decodeAndMergeConfig(c Config, configAsJSON string) (Config, error) {
	err := json.Unmarshal([]byte(configAsJSON), &c)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to decode "+EnvConfigJSON)
	}

	return c, nil
}

// DumpConfig config as TOML String.
func DumpConfig(c *Config) (string, error) {
	var buffer bytes.Buffer
	t := toml.NewEncoder(&buffer)

	if err := t.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// DumpConfigJSON config as JSON String.
func DumpConfigJSON(c *Config) (string, error) {
	var buffer bytes.Buffer
	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// validate checks the settings the daemon can not start without
// and fills in defaults for the optional ones.
func validate(c *Config) error {
	invalidErrMessage := "invalid config"

	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalidErrMessage)
	}

	if c.Webserver.URL == "" {
		return errors.Wrap(ErrEmptyURL, invalidErrMessage)
	}

	switch strings.ToLower(c.DB.GormEngine) {
	case "":
		c.DB.GormEngine = EngineSQLite
	case EngineSQLite, EngineMySQL, EnginePostgres:
		c.DB.GormEngine = strings.ToLower(c.DB.GormEngine)
	default:
		return errors.Wrap(ErrUnknownGormEngine, invalidErrMessage)
	}

	switch c.Storage.Backend {
	case "":
		c.Storage.Backend = StorageLocal
	case StorageLocal:
	case StorageS3:
		if c.Storage.Bucket == "" {
			return errors.Wrap(ErrMissingBucket, invalidErrMessage)
		}
	default:
		return errors.Wrap(ErrUnknownStorageBackend, invalidErrMessage)
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = defaultShutDownTime
	}

	if c.Webserver.Session.ExpiryTime == 0 {
		c.Webserver.Session.ExpiryTime = defaultSessionExpiry
	}

	if c.Stripe.Currency == "" {
		c.Stripe.Currency = defaultCurrency
	}

	c.Stripe.Currency = strings.ToLower(c.Stripe.Currency)

	if c.Stripe.Timeout == 0 {
		c.Stripe.Timeout = defaultStripeTimeout
	}

	if c.Mail.Timeout == 0 {
		c.Mail.Timeout = defaultMailTimeout
	}

	if c.Storage.LocalPath == "" {
		c.Storage.LocalPath = defaultMediaPath
	}

	if c.Storage.URLPrefix == "" {
		c.Storage.URLPrefix = defaultMediaPrefix
	}

	if c.Storage.PresignTTL == 0 {
		c.Storage.PresignTTL = defaultPresignTTL
	}

	return nil
}
