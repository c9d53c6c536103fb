package out

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	statsout "cigbreak/internal/modules/stats/port/out"
	apperrors "cigbreak/internal/platform/errors"
)

var validKey = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// FileKeyValueStore keeps one file per key under dir.
type FileKeyValueStore struct {
	dir string
}

func NewFileKeyValueStore(dir string) statsout.KeyValueStore {
	return &FileKeyValueStore{dir: dir}
}

func (s *FileKeyValueStore) path(key string) (string, error) {
	if !validKey.MatchString(key) {
		return "", fmt.Errorf("key %q: %w", key, apperrors.ErrInvalidInput)
	}
	return filepath.Join(s.dir, key+".json"), nil
}

func (s *FileKeyValueStore) Get(_ context.Context, key string) ([]byte, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}
	payload, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return payload, nil
}

// Put writes through a temp file and rename so a crash never leaves a torn record.
func (s *FileKeyValueStore) Put(_ context.Context, key string, value []byte) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create kv dir: %w", err)
	}
	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", key, err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("commit %s: %w", key, err)
	}
	return nil
}
