package fetch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Store persists fetched pages by key.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, body []byte) error
}

// FSStore keeps one .html file per key in a directory.
type FSStore struct {
	Dir string
}

// NewFSStore creates the cache directory if needed.
func NewFSStore(dir string) (*FSStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}
	return &FSStore{Dir: dir}, nil
}

func (s *FSStore) path(key string) string {
	return filepath.Join(s.Dir, key+".html")
}

// Get returns the cached body for key, if present.
func (s *FSStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	body, err := os.ReadFile(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading cache entry %s: %w", key, err)
	}
	return body, true, nil
}

// Put writes body through a temp file so readers never see a partial page.
func (s *FSStore) Put(_ context.Context, key string, body []byte) error {
	tmp, err := os.CreateTemp(s.Dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("creating cache entry: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		return fmt.Errorf("writing cache entry %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing cache entry %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), s.path(key)); err != nil {
		return fmt.Errorf("storing cache entry %s: %w", key, err)
	}
	return nil
}
