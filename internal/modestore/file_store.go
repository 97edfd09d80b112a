package modestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spec-kit/capture-portal/internal/domain"
)

// FileStore keeps the mode in a small text file replaced atomically on write.
type FileStore struct {
	path string
	mu   sync.RWMutex
}

// NewFileStore returns a store backed by path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Get(_ context.Context) (domain.Mode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.DefaultMode, nil
	}
	if err != nil {
		return "", fmt.Errorf("read mode file: %w", err)
	}
	return domain.ParseMode(strings.TrimSpace(string(raw))), nil
}

func (s *FileStore) Set(_ context.Context, mode domain.Mode) error {
	if !mode.Valid() {
		return domain.ErrInvalidMode
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create mode dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".mode-*")
	if err != nil {
		return fmt.Errorf("create temp mode file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(string(mode)); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp mode file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace mode file: %w", err)
	}
	return nil
}
