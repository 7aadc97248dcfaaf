package storage

import (
	"context"
	"io"
	"time"
)

// FileInfo represents metadata about a file
type FileInfo struct {
	Path    string
	Size    int64
	ModTime time.Time
	IsDir   bool
	Regular bool
}

// Backend defines the interface for file access during a merge.
// The engine is written against this interface so the filesystem can
// be swapped out in tests or replaced with remote storage.
type Backend interface {
	// Stat returns file metadata
	Stat(ctx context.Context, path string) (*FileInfo, error)

	// Open opens a file for reading
	Open(ctx context.Context, path string) (io.ReadCloser, error)

	// Create opens a file for writing, creating or truncating it
	Create(ctx context.Context, path string) (io.WriteCloser, error)

	// Close releases any resources held by the backend
	Close() error
}
