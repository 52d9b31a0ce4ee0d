package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Local stores files below a directory served by the web server.
type Local struct {
	root      string
	urlPrefix string
}

// NewLocal creates a store writing to root and linking below urlPrefix.
func NewLocal(root, urlPrefix string) *Local {
	return &Local{root: root, urlPrefix: strings.TrimSuffix(urlPrefix, "/")}
}

// Root returns the directory files are written to.
func (l *Local) Root() string { return l.root }

// Put writes body to the file for key, creating directories as needed.
func (l *Local) Put(_ context.Context, key string, body io.Reader, _ string) error {
	k, err := cleanKey(key)
	if err != nil {
		return err
	}

	dst := filepath.Join(l.root, filepath.FromSlash(k))
	if err := os.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	f, err := os.Create(dst) //nolint:gosec // key is cleaned above
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}

	if _, err := io.Copy(f, body); err != nil {
		_ = f.Close()
		return fmt.Errorf("write file: %w", err)
	}

	return f.Close()
}

// URL returns the public path of key.
func (l *Local) URL(_ context.Context, key string) (string, error) {
	k, err := cleanKey(key)
	if err != nil {
		return "", err
	}

	return l.urlPrefix + "/" + k, nil
}
