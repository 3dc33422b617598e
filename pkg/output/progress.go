package output

import (
	"io"
	"os"

	"github.com/cheggaaa/pb/v3"
	"golang.org/x/term"

	"github.com/sdejongh/tablediff/pkg/compare"
	"github.com/sdejongh/tablediff/pkg/models"
)

const progressTemplate = `Comparing {{counters . }} {{bar . }} {{percent . }} {{string . "file"}}`

// ProgressFormatter renders a progress bar on terminals and falls back to
// human-readable lines otherwise
type ProgressFormatter struct {
	*HumanFormatter

	writer   io.Writer
	terminal bool
	bar      *pb.ProgressBar
}

// NewProgressFormatter creates a new progress bar formatter writing to w
func NewProgressFormatter(w io.Writer) *ProgressFormatter {
	if w == nil {
		w = os.Stdout
	}
	return &ProgressFormatter{
		HumanFormatter: NewHumanFormatter(w),
		writer:         w,
		terminal:       isTerminal(w),
	}
}

// isTerminal reports whether w is an interactive terminal
func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}

// Start prints the name sets and starts the bar
func (f *ProgressFormatter) Start(partition compare.Partition) error {
	if err := f.HumanFormatter.Start(partition); err != nil {
		return err
	}
	if !f.terminal || len(partition.Shared) == 0 {
		return nil
	}

	f.bar = pb.New(len(partition.Shared))
	f.bar.SetWriter(f.writer)
	f.bar.SetTemplateString(progressTemplate)
	f.bar.Start()
	return nil
}

// Progress advances the bar, or prints a line when there is none
func (f *ProgressFormatter) Progress(update ProgressUpdate) error {
	if f.bar == nil {
		return f.HumanFormatter.Progress(update)
	}

	switch update.Type {
	case "compare_start":
		f.bar.Set("file", update.FilePath)
	case "compare_complete":
		f.bar.Increment()
	}
	return nil
}

// Complete stops the bar and prints the summary
func (f *ProgressFormatter) Complete(report *models.Report) error {
	if f.bar != nil {
		f.bar.Finish()
		f.bar = nil
	}
	return f.HumanFormatter.Complete(report)
}

// Name returns the formatter name
func (f *ProgressFormatter) Name() string {
	return "progress"
}
