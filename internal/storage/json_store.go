package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sandeepkv93/habitd/internal/model"
)

type JSONStore struct {
	path string
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

// Load reads and decodes the state file. A file that exists but cannot be
// decoded is copied to <path>.bak first so the next Save cannot lose it.
func (s *JSONStore) Load(ctx context.Context) (*model.Tracker, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read state: %w", err)
	}
	tracker, err := Decode(data)
	if err != nil {
		if bakErr := os.WriteFile(s.path+".bak", data, 0o600); bakErr != nil {
			return nil, errors.Join(err, fmt.Errorf("backup state: %w", bakErr))
		}
		return nil, err
	}
	return tracker, nil
}

func (s *JSONStore) Save(ctx context.Context, tracker *model.Tracker) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := Encode(tracker)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create state dir: %w", err)
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return os.Rename(tmp, s.path)
}

func (s *JSONStore) Close() error {
	return nil
}
