package storage

import (
	"context"
	"io"
)

// StorageInterface is the attachment store behind the upload endpoints.
// The shipped implementation is local-filesystem; the interface leaves
// room for an object-store backend.
type StorageInterface interface {
	// SaveFile writes the file under the given key, replacing any
	// previous content.
	SaveFile(ctx context.Context, key string, reader io.Reader) error

	// ReadFile opens a stored file for streaming to a client.
	ReadFile(ctx context.Context, key string) (io.ReadCloser, error)

	// DeleteFile removes a stored file. Missing files are not an error.
	DeleteFile(ctx context.Context, key string) error

	// FileExists checks if a file exists and returns its size.
	FileExists(ctx context.Context, key string) (exists bool, size int64, err error)
}
