// Package compare partitions two table directories by file name and
// compares the tables present on both sides.
package compare

import (
	"context"

	"github.com/sdejongh/tablediff/pkg/diff"
	"github.com/sdejongh/tablediff/pkg/storage"
)

// Result represents the outcome of comparing one table name
type Result string

const (
	// Same indicates both tables parse to equal structures
	Same Result = "same"
	// Different indicates the parsed structures differ
	Different Result = "different"
	// LocalOnly indicates the table exists only in the local directory
	LocalOnly Result = "local_only"
	// RemoteOnly indicates the table exists only in the remote directory
	RemoteOnly Result = "remote_only"
)

// Comparison holds the result of comparing one shared table
type Comparison struct {
	Name       string
	LocalPath  string
	RemotePath string
	Result     Result
	Diff       diff.Result
}

// Comparator defines the interface for table comparison algorithms
type Comparator interface {
	// Compare loads the named table from both backends and compares them.
	// Load failures are returned as errors and abort the run.
	Compare(ctx context.Context, local, remote storage.Backend, name string) (*Comparison, error)

	// Name returns the name of the comparison method
	Name() string
}
