package baseline

import (
	"context"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/matzehuels/stadump/pkg/errors"
)

// FileStore implements a file-based store for CLI usage.
// Each baseline is a JSON file named by the hash of its name, so arbitrary
// names never become arbitrary paths.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-based store in the given directory.
// The directory will be created if it doesn't exist.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create baseline dir %s", dir)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the store directory.
func (s *FileStore) Dir() string { return s.dir }

// Get retrieves a baseline from disk.
func (s *FileStore) Get(ctx context.Context, name string) (*Record, error) {
	data, err := os.ReadFile(s.path(name))
	if os.IsNotExist(err) {
		return nil, notFound(name)
	}
	if err != nil {
		return nil, err
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "corrupt baseline %q", name)
	}
	return &rec, nil
}

// Put writes a baseline to disk.
func (s *FileStore) Put(ctx context.Context, rec *Record) error {
	if err := errors.ValidateBaselineName(rec.Name); err != nil {
		return err
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}

	path := s.path(rec.Name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	// Write via rename so a crashed write never leaves a truncated baseline.
	// Each writer gets its own temp file; concurrent puts race only on rename.
	tmp, err := os.CreateTemp(filepath.Dir(path), "*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Delete removes a baseline file.
func (s *FileStore) Delete(ctx context.Context, name string) error {
	err := os.Remove(s.path(name))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// List reads the name of every stored baseline.
func (s *FileStore) List(ctx context.Context) ([]string, error) {
	var names []string
	err := filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		var rec struct {
			Name string `json:"name"`
		}
		if json.Unmarshal(data, &rec) == nil && rec.Name != "" {
			names = append(names, rec.Name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(names)
	return names, nil
}

// Close does nothing for file store.
func (s *FileStore) Close() error {
	return nil
}

// path converts a baseline name to a file path.
// Uses a hash-based directory structure to avoid too many files in one dir.
func (s *FileStore) path(name string) string {
	hash := Hash([]byte(name))
	return filepath.Join(s.dir, hash[:2], hash[2:]+".json")
}

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
