package models

import (
	"sort"
	"time"

	"github.com/sdejongh/tablediff/pkg/diff"
)

// Report is the aggregated result of one comparison run.
// Only the tagged fields are written to the output artifact.
type Report struct {
	// Operation details
	OperationID string        `json:"-"`
	LocalDir    string        `json:"-"`
	RemoteDir   string        `json:"-"`
	StartTime   time.Time     `json:"-"`
	EndTime     time.Time     `json:"-"`
	Duration    time.Duration `json:"-"`

	SharedFiles  map[string]FileDiff `json:"shared_files"`
	OnlyInLocal  []string            `json:"only_in_local"`
	OnlyInRemote []string            `json:"only_in_remote"`
}

// FileDiff holds the structural difference of one shared file
type FileDiff struct {
	Diff diff.Result `json:"diff"`
}

// NewReport creates an empty report for the given operation
func NewReport(op *CompareOperation) *Report {
	r := &Report{
		SharedFiles:  make(map[string]FileDiff),
		OnlyInLocal:  []string{},
		OnlyInRemote: []string{},
	}
	if op != nil {
		r.OperationID = op.ID
		r.LocalDir = op.LocalDir
		r.RemoteDir = op.RemoteDir
	}
	return r
}

// DifferingFiles returns the sorted names of shared files whose contents differ
func (r *Report) DifferingFiles() []string {
	var names []string
	for name, fd := range r.SharedFiles {
		if fd.Diff.Len() > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// HasDifferences reports whether the two table sets differ in any way
func (r *Report) HasDifferences() bool {
	return len(r.OnlyInLocal) > 0 || len(r.OnlyInRemote) > 0 || len(r.DifferingFiles()) > 0
}

// Status returns the overall outcome of the run
func (r *Report) Status() CompareStatus {
	if r.HasDifferences() {
		return StatusDifferent
	}
	return StatusIdentical
}

// CompareStatus represents the overall result
type CompareStatus string

const (
	// StatusIdentical indicates both table sets match
	StatusIdentical CompareStatus = "identical"
	// StatusDifferent indicates at least one difference was found
	StatusDifferent CompareStatus = "different"
)

// ExitCode returns the exit code used by compare --exit-code
func (s CompareStatus) ExitCode() int {
	switch s {
	case StatusIdentical:
		return 0
	default:
		return 1
	}
}
