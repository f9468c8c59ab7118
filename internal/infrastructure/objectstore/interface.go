package objectstore

import (
	"context"
)

//go:generate mockgen -source=interface.go -destination=mock/interface_mock.go -package=mock

// ObjectStore is the artifact storage the pipeline reads inputs from and
// writes outputs to. Keys ending in ".gz" are stored gzip-compressed and
// returned decompressed.
type ObjectStore interface {
	// Get returns the decompressed contents of the object at key.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put writes data to key, compressing when the key calls for it.
	Put(ctx context.Context, key string, data []byte) error
	// List returns all keys under the given prefix in lexical order.
	List(ctx context.Context, prefix string) ([]string, error)
	// Download materializes the object at key into a unique scratch file and
	// returns its local path. The caller owns the file.
	Download(ctx context.Context, key string) (string, error)
}
