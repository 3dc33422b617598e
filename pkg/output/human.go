package output

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sdejongh/tablediff/pkg/compare"
	"github.com/sdejongh/tablediff/pkg/models"
)

// HumanFormatter formats output in human-readable format
type HumanFormatter struct {
	writer     io.Writer
	totalFiles int
}

// NewHumanFormatter creates a new human-readable formatter writing to w.
// A nil writer discards output.
func NewHumanFormatter(w io.Writer) *HumanFormatter {
	if w == nil {
		w = io.Discard
	}
	return &HumanFormatter{writer: w}
}

// Start prints the three name sets
func (f *HumanFormatter) Start(partition compare.Partition) error {
	f.totalFiles = len(partition.Shared)

	fmt.Fprintf(f.writer, "Shared files: %s\n", formatList(partition.Shared))
	fmt.Fprintf(f.writer, "Only in local: %s\n", formatList(partition.OnlyA))
	fmt.Fprintf(f.writer, "Only in remote: %s\n", formatList(partition.OnlyB))

	return nil
}

// Progress reports each shared file as it is compared
func (f *HumanFormatter) Progress(update ProgressUpdate) error {
	switch update.Type {
	case "compare_start":
		fmt.Fprintf(f.writer, "Comparing file: %s\n", update.FilePath)
	}
	return nil
}

// Complete finalizes output and displays summary
func (f *HumanFormatter) Complete(report *models.Report) error {
	differing := report.DifferingFiles()

	fmt.Fprintf(f.writer, "\n")
	fmt.Fprintf(f.writer, "Comparison completed in %s\n", report.Duration.Round(time.Millisecond))
	fmt.Fprintf(f.writer, "\n")
	fmt.Fprintf(f.writer, "Summary:\n")
	fmt.Fprintf(f.writer, "  Shared files:     %d (%d differ)\n", len(report.SharedFiles), len(differing))
	fmt.Fprintf(f.writer, "  Only in local:    %d\n", len(report.OnlyInLocal))
	fmt.Fprintf(f.writer, "  Only in remote:   %d\n", len(report.OnlyInRemote))

	if len(differing) > 0 {
		fmt.Fprintf(f.writer, "\nDiffering files:\n")
		for _, name := range differing {
			fmt.Fprintf(f.writer, "  %s: %d changes\n", name, report.SharedFiles[name].Diff.Count())
		}
	}

	fmt.Fprintf(f.writer, "\n")
	fmt.Fprintf(f.writer, "Status: %s\n", report.Status())

	return nil
}

// Error reports an error
func (f *HumanFormatter) Error(err error) error {
	var notFound *models.DirectoryNotFoundError
	if errors.As(err, &notFound) {
		fmt.Fprintf(f.writer, "Error: Directory not found - %s\n", notFound.Path)
		return nil
	}
	fmt.Fprintf(f.writer, "Error: %v\n", err)
	return nil
}

// Name returns the formatter name
func (f *HumanFormatter) Name() string {
	return "human"
}

// formatList renders names as ['a', 'b']
func formatList(names []string) string {
	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = "'" + name + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
