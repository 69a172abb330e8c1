package inputs

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/mozilla-ai/mcpscout/internal/files"
	"github.com/mozilla-ai/mcpscout/internal/perms"
)

// storeFile is the on-disk layout of a FileStore.
type storeFile struct {
	Workspace string            `toml:"workspace,omitempty"`
	Inputs    map[string]string `toml:"inputs"`
}

// FileStore persists input values for a single workspace as a TOML file readable only by the owner.
// Every mutation is written through to disk. It is safe for concurrent use.
type FileStore struct {
	mu   sync.Mutex
	path string
	data storeFile
}

// DefaultStorePath returns the location of the input store for the workspace at root.
// Stores are kept in the user's state directory, one file per workspace, named by a hash of the root.
func DefaultStorePath(root string) (string, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return "", fmt.Errorf("workspace root cannot be empty")
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("could not resolve workspace root '%s': %w", root, err)
	}

	dir, err := files.UserSpecificStateDir()
	if err != nil {
		return "", err
	}

	hash := sha256.Sum256([]byte(abs))
	return filepath.Join(dir, "workspaces", hex.EncodeToString(hash[:])+".toml"), nil
}

// OpenFileStore loads the store at path. A missing file yields an empty store that is created on first write.
func OpenFileStore(path string, workspace string) (*FileStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}

	s := &FileStore{
		path: path,
		data: storeFile{
			Workspace: workspace,
			Inputs:    map[string]string{},
		},
	}

	if _, err := toml.DecodeFile(path, &s.data); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("input store file '%s' could not be parsed: %w", path, err)
		}
	}

	if s.data.Inputs == nil {
		s.data.Inputs = map[string]string{}
	}
	if workspace != "" {
		s.data.Workspace = workspace
	}

	return s, nil
}

// Path returns the file backing the store.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.data.Inputs[key]
	return v, ok, nil
}

func (s *FileStore) Set(key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, had := s.data.Inputs[key]
	if had && prev == value {
		return nil
	}

	s.data.Inputs[key] = value
	if err := s.save(); err != nil {
		if had {
			s.data.Inputs[key] = prev
		} else {
			delete(s.data.Inputs, key)
		}
		return err
	}
	return nil
}

func (s *FileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.data.Inputs[key]
	if !ok {
		return nil
	}

	delete(s.data.Inputs, key)
	if err := s.save(); err != nil {
		s.data.Inputs[key] = prev
		return err
	}
	return nil
}

func (s *FileStore) List() (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return maps.Clone(s.data.Inputs), nil
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.data.Inputs
	s.data.Inputs = map[string]string{}
	if err := s.save(); err != nil {
		s.data.Inputs = prev
		return err
	}
	return nil
}

// save writes the store to a temporary file in the same directory and renames it into place,
// so readers never observe a partially written store.
func (s *FileStore) save() (err error) {
	dir := filepath.Dir(s.path)
	if err := files.EnsureAtLeastSecureDir(dir); err != nil {
		return fmt.Errorf("could not ensure input store directory exists for '%s': %w", s.path, err)
	}

	f, err := os.CreateTemp(dir, ".inputs-*.toml")
	if err != nil {
		return fmt.Errorf("could not create temporary input store in '%s': %w", dir, err)
	}
	tmp := f.Name()

	defer func() {
		if err != nil {
			_ = os.Remove(tmp)
		}
	}()

	if err := f.Chmod(perms.SecureFile); err != nil {
		_ = f.Close()
		return fmt.Errorf("could not secure temporary input store '%s': %w", tmp, err)
	}

	if err := toml.NewEncoder(f).Encode(s.data); err != nil {
		_ = f.Close()
		return fmt.Errorf("could not encode input store to file '%s': %w", tmp, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("could not close temporary input store '%s': %w", tmp, err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("could not replace input store '%s': %w", s.path, err)
	}

	return nil
}
