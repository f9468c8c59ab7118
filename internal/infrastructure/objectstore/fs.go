package objectstore

import (
	"bytes"
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"

	"github.com/blankbits/reup/pkg/errors"
)

// FSStore is a filesystem-backed ObjectStore rooted at a directory. Keys map
// to file paths relative to the root.
type FSStore struct {
	root string
}

var _ ObjectStore = (*FSStore)(nil)

// NewFSStore creates an FSStore rooted at the given directory, creating it if
// necessary.
func NewFSStore(root string) (*FSStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, errors.TracerFromError(err)
	}
	return &FSStore{root: root}, nil
}

// Get returns the decompressed contents of the object at key.
func (s *FSStore) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.root, filepath.FromSlash(key)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewErrorDetails("object does not exist", errors.ErrArtifactNotFound, key)
		}
		return nil, errors.TracerFromError(err)
	}

	if !strings.HasSuffix(key, ".gz") {
		return data, nil
	}

	reader, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	defer reader.Close()

	decompressed, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	return decompressed, nil
}

// Put writes data to key, compressing when the key ends in ".gz".
func (s *FSStore) Put(_ context.Context, key string, data []byte) error {
	if strings.HasSuffix(key, ".gz") {
		var buf bytes.Buffer
		writer := gzip.NewWriter(&buf)
		if _, err := writer.Write(data); err != nil {
			return errors.TracerFromError(err)
		}
		if err := writer.Close(); err != nil {
			return errors.TracerFromError(err)
		}
		data = buf.Bytes()
	}

	path := filepath.Join(s.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.TracerFromError(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.TracerFromError(err)
	}
	return nil
}

// List returns all keys under the given prefix in lexical order.
func (s *FSStore) List(_ context.Context, prefix string) ([]string, error) {
	var keys []string
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
		return nil
	})
	if err != nil {
		return nil, errors.TracerFromError(err)
	}

	sort.Strings(keys)
	return keys, nil
}

// Download materializes the object at key into a unique scratch file.
func (s *FSStore) Download(ctx context.Context, key string) (string, error) {
	data, err := s.Get(ctx, key)
	if err != nil {
		return "", err
	}

	localPath := filepath.Join(os.TempDir(), "reup-"+uuid.NewString())
	if err := os.WriteFile(localPath, data, 0o644); err != nil {
		return "", errors.TracerFromError(err)
	}
	return localPath, nil
}
