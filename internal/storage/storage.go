// Package storage keeps uploaded resource files on local disk or in S3.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/gywan/gywan-site/internal/config"
	"github.com/gywan/gywan-site/internal/uniuri"
)

// ErrInvalidKey is returned for keys escaping the storage root.
var ErrInvalidKey = errors.New("invalid storage key")

// Store saves files and hands out URLs to download them.
type Store interface {
	Put(ctx context.Context, key string, body io.Reader, contentType string) error
	URL(ctx context.Context, key string) (string, error)
}

// New creates the store configured in cfg.
func New(ctx context.Context, cfg config.Storage) (Store, error) {
	switch cfg.Backend {
	case config.StorageS3:
		return NewS3(ctx, cfg)
	case config.StorageLocal, "":
		return NewLocal(cfg.LocalPath, cfg.URLPrefix), nil
	default:
		return nil, config.ErrUnknownStorageBackend
	}
}

// NewKey builds a unique key below prefix keeping the file extension.
func NewKey(prefix, filename string) string {
	ext := strings.ToLower(path.Ext(filename))

	return path.Join(prefix, uniuri.Key()+ext)
}

func cleanKey(key string) (string, error) {
	k := path.Clean("/" + key)[1:]
	if k == "" || k != strings.TrimPrefix(key, "/") {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}

	return k, nil
}
