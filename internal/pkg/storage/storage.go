// Package storage writes objects to S3-compatible buckets and hands out
// time-limited download links.
package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrObjectNotFound is returned by Stat for a missing key.
var ErrObjectNotFound = errors.New("storage: object not found")

// Storage is the object store used for export archives.
type Storage interface {
	io.Closer

	// EnsureBucket creates bucket when it does not exist.
	EnsureBucket(ctx context.Context, bucket string) error
	// Put uploads r under key.
	Put(ctx context.Context, bucket, key string, r io.Reader, opts PutOptions) (ObjectInfo, error)
	// Stat returns metadata for key or ErrObjectNotFound.
	Stat(ctx context.Context, bucket, key string) (ObjectInfo, error)
	// Delete removes key. Missing keys are not an error.
	Delete(ctx context.Context, bucket, key string) error
	// PresignGet returns a download URL valid for expiry.
	PresignGet(ctx context.Context, bucket, key string, expiry time.Duration) (string, error)
}

// PutOptions describe an upload.
type PutOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	Bucket      string
	Key         string
	Size        int64
	ETag        string
	ContentType string
	Metadata    map[string]string
	UpdatedAt   time.Time
}
