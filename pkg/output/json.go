package output

import (
	"encoding/json"
	"io"
	"time"

	"github.com/sdejongh/tablediff/pkg/compare"
	"github.com/sdejongh/tablediff/pkg/models"
)

// JSONFormatter formats output as JSON for automation and scripting.
// Nothing is printed until Complete.
type JSONFormatter struct {
	writer io.Writer
	errors []string
}

// JSONReportData represents the final summary
type JSONReportData struct {
	OperationID  string         `json:"operation_id"`
	Status       string         `json:"status"`
	LocalDir     string         `json:"local_dir"`
	RemoteDir    string         `json:"remote_dir"`
	Duration     string         `json:"duration"`
	DurationMs   int64          `json:"duration_ms"`
	Stats        JSONStatsData  `json:"stats"`
	Differing    []JSONFileData `json:"differing_files,omitempty"`
	OnlyInLocal  []string       `json:"only_in_local"`
	OnlyInRemote []string       `json:"only_in_remote"`
	Errors       []string       `json:"errors,omitempty"`
}

// JSONStatsData represents counts in JSON format
type JSONStatsData struct {
	SharedFiles    int `json:"shared_files"`
	DifferingFiles int `json:"differing_files"`
	OnlyInLocal    int `json:"only_in_local"`
	OnlyInRemote   int `json:"only_in_remote"`
}

// JSONFileData represents one differing file
type JSONFileData struct {
	Name    string `json:"name"`
	Changes int    `json:"changes"`
}

// NewJSONFormatter creates a new JSON formatter writing to w
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	if w == nil {
		w = io.Discard
	}
	return &JSONFormatter{writer: w}
}

// Start initializes the formatter
func (f *JSONFormatter) Start(partition compare.Partition) error {
	return nil
}

// Progress is not streamed to keep the output parseable
func (f *JSONFormatter) Progress(update ProgressUpdate) error {
	return nil
}

// Complete writes the summary object
func (f *JSONFormatter) Complete(report *models.Report) error {
	differing := report.DifferingFiles()

	data := JSONReportData{
		OperationID: report.OperationID,
		Status:      string(report.Status()),
		LocalDir:    report.LocalDir,
		RemoteDir:   report.RemoteDir,
		Duration:    report.Duration.Round(time.Millisecond).String(),
		DurationMs:  report.Duration.Milliseconds(),
		Stats: JSONStatsData{
			SharedFiles:    len(report.SharedFiles),
			DifferingFiles: len(differing),
			OnlyInLocal:    len(report.OnlyInLocal),
			OnlyInRemote:   len(report.OnlyInRemote),
		},
		OnlyInLocal:  report.OnlyInLocal,
		OnlyInRemote: report.OnlyInRemote,
		Errors:       f.errors,
	}
	for _, name := range differing {
		data.Differing = append(data.Differing, JSONFileData{
			Name:    name,
			Changes: report.SharedFiles[name].Diff.Count(),
		})
	}

	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// Error records an error for the summary
func (f *JSONFormatter) Error(err error) error {
	f.errors = append(f.errors, err.Error())
	return nil
}

// Name returns the formatter name
func (f *JSONFormatter) Name() string {
	return "json"
}
