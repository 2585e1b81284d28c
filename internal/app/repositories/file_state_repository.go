package repositories

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/yigit/uniconnect/internal/pkg/apperrors"
)

// FileStateRepository keeps client state in a YAML document on disk.
// Every write rewrites the whole file through a temp file and rename.
type FileStateRepository struct {
	path string

	mu     sync.Mutex
	loaded bool
	values map[string]string
}

// NewFileStateRepository creates a repository backed by path. The file and
// its directory are created on first write.
func NewFileStateRepository(path string) *FileStateRepository {
	return &FileStateRepository{path: path}
}

// load reads the file once; a missing file is an empty state
func (r *FileStateRepository) load() error {
	if r.loaded {
		return nil
	}

	values := make(map[string]string)
	content, err := os.ReadFile(r.path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return fmt.Errorf("%w: read %s: %v", apperrors.ErrStorageUnavailable, r.path, err)
	default:
		if err := yaml.Unmarshal(content, &values); err != nil {
			return fmt.Errorf("%w: parse %s: %v", apperrors.ErrStorageUnavailable, r.path, err)
		}
		if values == nil {
			values = make(map[string]string)
		}
	}

	r.values = values
	r.loaded = true
	return nil
}

func (r *FileStateRepository) flush() error {
	content, err := yaml.Marshal(r.values)
	if err != nil {
		return fmt.Errorf("failed to encode client state: %w", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: create %s: %v", apperrors.ErrStorageUnavailable, dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".client_state-*.yaml")
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrStorageUnavailable, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: write state: %v", apperrors.ErrStorageUnavailable, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close state: %v", apperrors.ErrStorageUnavailable, err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("%w: replace state: %v", apperrors.ErrStorageUnavailable, err)
	}
	return nil
}

// Get returns the value stored under key
func (r *FileStateRepository) Get(_ context.Context, key string) (string, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.load(); err != nil {
		return "", false, err
	}
	value, ok := r.values[key]
	return value, ok, nil
}

// Set stores value under key and rewrites the file
func (r *FileStateRepository) Set(_ context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.load(); err != nil {
		return err
	}
	previous, existed := r.values[key]
	r.values[key] = value
	if err := r.flush(); err != nil {
		if existed {
			r.values[key] = previous
		} else {
			delete(r.values, key)
		}
		return err
	}
	return nil
}

// Remove deletes key and rewrites the file when it was present
func (r *FileStateRepository) Remove(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.load(); err != nil {
		return err
	}
	previous, existed := r.values[key]
	if !existed {
		return nil
	}
	delete(r.values, key)
	if err := r.flush(); err != nil {
		r.values[key] = previous
		return err
	}
	return nil
}
