package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("toml config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("toml config webserver.port listening port can not be 0")

	// ErrUnknownGormEngine error if config db.gormengine is not supported.
	ErrUnknownGormEngine = errors.New("toml config db.gormengine must be one of sqlite, mysql, postgres")

	// ErrUnknownStorageBackend error if config storage.backend is not supported.
	ErrUnknownStorageBackend = errors.New("toml config storage.backend must be local or s3")

	// ErrMissingBucket error if the s3 storage backend has no bucket.
	ErrMissingBucket = errors.New("toml config storage.bucket can not be empty for the s3 backend")
)
