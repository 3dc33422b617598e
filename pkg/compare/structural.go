package compare

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/sdejongh/tablediff/pkg/diff"
	"github.com/sdejongh/tablediff/pkg/document"
	"github.com/sdejongh/tablediff/pkg/models"
	"github.com/sdejongh/tablediff/pkg/storage"
)

// StructuralComparator parses both tables and diffs their structures,
// ignoring key order and sequence order
type StructuralComparator struct {
	differ *diff.Differ
}

// NewStructuralComparator creates a comparator using the given diff options
func NewStructuralComparator(opts diff.Options) *StructuralComparator {
	return &StructuralComparator{differ: diff.New(opts)}
}

// Compare loads name from both backends and diffs local against remote
func (c *StructuralComparator) Compare(ctx context.Context, local, remote storage.Backend, name string) (*Comparison, error) {
	localDoc, err := load(ctx, local, name)
	if err != nil {
		return nil, err
	}

	remoteDoc, err := load(ctx, remote, name)
	if err != nil {
		return nil, err
	}

	cmp := &Comparison{
		Name:       name,
		LocalPath:  filepath.Join(local.Root(), name),
		RemotePath: filepath.Join(remote.Root(), name),
		Diff:       c.differ.Diff(localDoc, remoteDoc),
		Result:     Same,
	}
	if !cmp.Diff.Empty() {
		cmp.Result = Different
	}
	return cmp, nil
}

// Name returns the comparator name
func (c *StructuralComparator) Name() string {
	return "structural"
}

var errIsDirectory = errors.New("is a directory")

// load parses one table. A shared subdirectory cannot be parsed and fails
// the run like any other unreadable entry.
func load(ctx context.Context, backend storage.Backend, name string) (diff.Value, error) {
	info, err := backend.Stat(ctx, name)
	if err != nil {
		return diff.Value{}, err
	}
	if info.IsDir {
		return diff.Value{}, &models.IOError{Op: "open", Path: info.Path, Err: errIsDirectory}
	}

	reader, err := backend.Read(ctx, name)
	if err != nil {
		return diff.Value{}, err
	}
	defer reader.Close()

	return document.Load(reader, filepath.Join(backend.Root(), name))
}
