package output

import (
	"github.com/sdejongh/tablediff/pkg/compare"
	"github.com/sdejongh/tablediff/pkg/models"
)

// ProgressUpdate represents a progress notification during a comparison run
type ProgressUpdate struct {
	Type        string // "compare_start", "compare_complete"
	FilePath    string
	CurrentFile int
	TotalFiles  int
	Changes     int // number of non-empty diff categories, set on compare_complete
}

// Formatter defines the interface for console output
// Implementations include human-readable, progress bar and JSON formatters
type Formatter interface {
	// Start announces the partition of the two table directories
	Start(partition compare.Partition) error

	// Progress reports progress during the run
	Progress(update ProgressUpdate) error

	// Complete finalizes output and displays summary
	Complete(report *models.Report) error

	// Error reports a diagnostic. Recovered errors such as a missing
	// directory are reported here before Start.
	Error(err error) error

	// Name returns the formatter name
	Name() string
}
