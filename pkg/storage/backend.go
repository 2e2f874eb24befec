package storage

import (
	"context"
	"io"
	"time"
)

// FileInfo represents metadata about an input file
type FileInfo struct {
	Path    string
	Size    int64
	ModTime time.Time
	IsDir   bool
}

// Backend defines the read-only file access used while grouping.
// Paths are interpreted relative to the backend root.
type Backend interface {
	// Read opens a file for reading
	Read(ctx context.Context, path string) (io.ReadCloser, error)

	// Exists checks if a file exists
	Exists(ctx context.Context, path string) (bool, error)

	// Stat returns file metadata
	Stat(ctx context.Context, path string) (*FileInfo, error)

	// Close releases any resources held by the backend
	Close() error
}
