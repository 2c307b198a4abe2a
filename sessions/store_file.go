package sessions

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var _ TokenStore = (*FileStore)(nil)

// FileStore keeps the token in a 0600 file named TokenKey inside a directory.
type FileStore struct {
	path string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{path: filepath.Join(dir, TokenKey)}
}

func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) Load() (string, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("[FileStore Load] %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Save writes through a temp file and rename so a reader never sees a partial token.
func (f *FileStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("[FileStore Save] create dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(f.path), TokenKey+".*")
	if err != nil {
		return fmt.Errorf("[FileStore Save] %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("[FileStore Save] chmod: %w", err)
	}
	if _, err := tmp.WriteString(token); err != nil {
		tmp.Close()
		return fmt.Errorf("[FileStore Save] write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("[FileStore Save] close: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("[FileStore Save] rename: %w", err)
	}
	return nil
}

func (f *FileStore) Clear() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("[FileStore Clear] %w", err)
	}
	return nil
}
