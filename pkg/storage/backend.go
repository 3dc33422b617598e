package storage

import (
	"context"
	"io"
	"time"
)

// FileInfo represents metadata about a directory entry
type FileInfo struct {
	Name    string
	Path    string
	Size    int64
	ModTime time.Time
	IsDir   bool
}

// Backend defines the interface for table directory access
// Implementations include the local filesystem
type Backend interface {
	// List returns the immediate entries of the root directory, sorted by
	// name. A missing root yields *models.DirectoryNotFoundError.
	List(ctx context.Context) ([]FileInfo, error)

	// Read opens an entry for reading; the caller closes it
	Read(ctx context.Context, name string) (io.ReadCloser, error)

	// Write creates or fully replaces an entry with the given content
	Write(ctx context.Context, name string, reader io.Reader) error

	// Exists checks if an entry exists
	Exists(ctx context.Context, name string) (bool, error)

	// Stat returns entry metadata
	Stat(ctx context.Context, name string) (*FileInfo, error)

	// Root returns the absolute root path
	Root() string

	// Close releases any resources held by the backend
	Close() error
}
