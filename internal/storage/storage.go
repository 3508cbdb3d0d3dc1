// Package storage is the opaque blob-storage collaborator. The trust core
// never reads document bytes; it only stores keys and hands out time-limited
// download URLs once the access evaluator allows it.
package storage

import (
	"context"
	"io"
	"time"
)

// PutOptions define optional parameters for uploading objects. Size should
// be the exact number of bytes if known; -1 lets the backend chunk.
type PutOptions struct {
	Size        int64
	ContentType string
}

// Storage is an S3-compatible object store. Implementations must stream;
// no local disk.
type Storage interface {
	// Put uploads an object under the given key and returns the stored key.
	Put(ctx context.Context, key string, r io.Reader, opt PutOptions) (string, error)
	// PresignGet returns a time-limited URL for downloading the object
	// without credentials.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
	// Delete removes an object by key.
	Delete(ctx context.Context, key string) error
}
