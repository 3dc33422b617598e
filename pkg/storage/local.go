package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/sdejongh/tablediff/pkg/models"
)

// Local is a filesystem-based storage backend
type Local struct {
	rootPath string
}

// NewLocal creates a new local filesystem backend. The root does not have
// to exist yet; List reports a missing root.
func NewLocal(rootPath string) (*Local, error) {
	if rootPath == "" {
		return nil, fmt.Errorf("root path is empty")
	}

	absPath, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	return &Local{rootPath: absPath}, nil
}

// Root returns the absolute root path
func (l *Local) Root() string {
	return l.rootPath
}

// List returns the immediate entries of the root directory, not recursing
func (l *Local) List(ctx context.Context) ([]FileInfo, error) {
	entries, err := os.ReadDir(l.rootPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &models.DirectoryNotFoundError{Path: l.rootPath}
		}
		return nil, &models.IOError{Op: "list", Path: l.rootPath, Err: err}
	}

	files := make([]FileInfo, 0, len(entries))
	for _, d := range entries {
		// Check context cancellation
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		info, err := d.Info()
		if err != nil {
			// Entry vanished between ReadDir and Info
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, &models.IOError{Op: "stat", Path: filepath.Join(l.rootPath, d.Name()), Err: err}
		}

		files = append(files, FileInfo{
			Name:    d.Name(),
			Path:    filepath.Join(l.rootPath, d.Name()),
			Size:    info.Size(),
			ModTime: info.ModTime(),
			IsDir:   d.IsDir(),
		})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

// Read opens an entry for reading
func (l *Local) Read(ctx context.Context, name string) (io.ReadCloser, error) {
	fullPath := filepath.Join(l.rootPath, name)

	file, err := os.Open(fullPath)
	if err != nil {
		return nil, &models.IOError{Op: "open", Path: fullPath, Err: err}
	}

	return file, nil
}

// Write replaces an entry atomically: content goes to a temporary file in
// the same directory which is then renamed over the destination
func (l *Local) Write(ctx context.Context, name string, reader io.Reader) error {
	fullPath := filepath.Join(l.rootPath, name)

	// Ensure parent directory exists
	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(fullPath)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op after a successful rename

	if _, err := io.Copy(tmp, reader); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := os.Rename(tmpPath, fullPath); err != nil {
		return fmt.Errorf("failed to replace %s: %w", fullPath, err)
	}

	return nil
}

// Exists checks if an entry exists
func (l *Local) Exists(ctx context.Context, name string) (bool, error) {
	fullPath := filepath.Join(l.rootPath, name)

	_, err := os.Stat(fullPath)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check existence: %w", err)
}

// Stat returns entry metadata
func (l *Local) Stat(ctx context.Context, name string) (*FileInfo, error) {
	fullPath := filepath.Join(l.rootPath, name)

	info, err := os.Stat(fullPath)
	if err != nil {
		return nil, &models.IOError{Op: "stat", Path: fullPath, Err: err}
	}

	return &FileInfo{
		Name:    info.Name(),
		Path:    fullPath,
		Size:    info.Size(),
		ModTime: info.ModTime(),
		IsDir:   info.IsDir(),
	}, nil
}

// Close releases resources (no-op for local filesystem)
func (l *Local) Close() error {
	return nil
}
