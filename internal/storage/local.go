package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Local stores files on the local filesystem under a base directory and
// serves them from a base URL (the router exposes the directory as static
// content).
type Local struct {
	baseDir string
	baseURL string
}

var _ Storage = (*Local)(nil)

// NewLocal creates a local storage rooted at baseDir.
func NewLocal(baseDir, baseURL string) *Local {
	return &Local{
		baseDir: baseDir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (l *Local) path(key string) string {
	return filepath.Join(l.baseDir, filepath.FromSlash(key))
}

// Save writes data to baseDir/key, creating parent directories as needed.
func (l *Local) Save(ctx context.Context, key string, data []byte, contentType string) error {
	path := l.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create media dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write media file: %w", err)
	}
	return nil
}

// Delete removes the file for key. A missing file is not an error.
func (l *Local) Delete(ctx context.Context, key string) error {
	if err := os.Remove(l.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove media file: %w", err)
	}
	return nil
}

// URL returns the public path the router serves the file under.
func (l *Local) URL(key string) string {
	return l.baseURL + "/" + strings.TrimLeft(key, "/")
}
