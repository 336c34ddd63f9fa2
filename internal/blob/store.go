// Package blob stores photo objects and hands back retrievable URLs.
package blob

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store is the blob boundary the photo pipeline talks to. Save returns a
// public URL; Delete accepts a URL previously returned by Save.
type Store interface {
	Save(ctx context.Context, data []byte) (string, error)
	Delete(ctx context.Context, url string) error
}

// FSStore keeps objects on the local filesystem, served under
// baseURL/uploads/.
type FSStore struct {
	Dir     string
	BaseURL string
}

func NewFSStore(dir, baseURL string) (*FSStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &FSStore{Dir: dir, BaseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *FSStore) Save(_ context.Context, data []byte) (string, error) {
	name := uuid.NewString() + ".jpg"
	if err := os.WriteFile(filepath.Join(s.Dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write blob: %w", err)
	}
	return s.BaseURL + "/uploads/" + name, nil
}

func (s *FSStore) Delete(_ context.Context, url string) error {
	name := path.Base(url)
	// refuse anything that could escape the upload dir
	if name == "" || name == "." || name == "/" || strings.Contains(name, "..") {
		return fmt.Errorf("invalid blob url %q", url)
	}
	err := os.Remove(filepath.Join(s.Dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
