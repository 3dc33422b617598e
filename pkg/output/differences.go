package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sdejongh/tablediff/pkg/diff"
	"github.com/sdejongh/tablediff/pkg/models"
)

// WriteDifferencesReport writes the differences report to a file, or to
// stdout when path is empty. Format can be "human" or "json".
func WriteDifferencesReport(report *models.Report, path string, format string) error {
	if !report.HasDifferences() {
		// No differences - don't create empty file
		return nil
	}

	var w io.Writer = os.Stdout
	if path != "" {
		file, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create differences file: %w", err)
		}
		defer file.Close()
		w = file
	}

	switch format {
	case "json":
		return writeDifferencesJSON(report, w)
	default: // "human"
		return writeDifferencesHuman(report, w)
	}
}

// writeDifferencesHuman writes differences in human-readable format
func writeDifferencesHuman(report *models.Report, w io.Writer) error {
	differing := report.DifferingFiles()

	fmt.Fprintf(w, "Differences Report\n")
	fmt.Fprintf(w, "==================\n\n")
	fmt.Fprintf(w, "Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(w, "Local: %s\n", report.LocalDir)
	fmt.Fprintf(w, "Remote: %s\n\n", report.RemoteDir)

	fmt.Fprintf(w, "Total Differences: %d\n\n", len(differing)+len(report.OnlyInLocal)+len(report.OnlyInRemote))

	writeSection(w, "Only in Local", report.OnlyInLocal)
	writeSection(w, "Only in Remote", report.OnlyInRemote)

	if len(differing) == 0 {
		return nil
	}

	label := fmt.Sprintf("Content Differences (%d files)", len(differing))
	fmt.Fprintf(w, "%s\n", label)
	fmt.Fprintf(w, "%s\n", strings.Repeat("-", len(label)))

	for _, name := range differing {
		fmt.Fprintf(w, "  %s\n", name)
		for _, rec := range report.SharedFiles[name].Diff.Records() {
			fmt.Fprintf(w, "    %s %s", changeSymbol(rec.Type), rec.Path)
			switch rec.Type {
			case diff.ValuesChanged:
				fmt.Fprintf(w, ": %s -> %s", rec.Old, rec.New)
			case diff.IterableItemAdded:
				fmt.Fprintf(w, ": %s", rec.New)
			case diff.IterableItemRemoved:
				fmt.Fprintf(w, ": %s", rec.Old)
			}
			fmt.Fprintf(w, "\n")
		}
		fmt.Fprintf(w, "\n")
	}

	return nil
}

func writeSection(w io.Writer, title string, names []string) {
	if len(names) == 0 {
		return
	}
	label := fmt.Sprintf("%s (%d files)", title, len(names))
	fmt.Fprintf(w, "%s\n", label)
	fmt.Fprintf(w, "%s\n", strings.Repeat("-", len(label)))
	for _, name := range names {
		fmt.Fprintf(w, "  %s\n", name)
	}
	fmt.Fprintf(w, "\n")
}

func changeSymbol(t diff.ChangeType) string {
	switch t {
	case diff.DictionaryItemAdded, diff.IterableItemAdded:
		return "+"
	case diff.DictionaryItemRemoved, diff.IterableItemRemoved:
		return "-"
	default:
		return "~"
	}
}

// writeDifferencesJSON writes differences in JSON format
func writeDifferencesJSON(report *models.Report, w io.Writer) error {
	type change struct {
		Type     diff.ChangeType `json:"type"`
		Path     string          `json:"path"`
		OldValue *diff.Value     `json:"old_value,omitempty"`
		NewValue *diff.Value     `json:"new_value,omitempty"`
	}
	type fileChanges struct {
		Name    string   `json:"name"`
		Changes []change `json:"changes"`
	}

	output := struct {
		Generated    string        `json:"generated"`
		LocalDir     string        `json:"local_dir"`
		RemoteDir    string        `json:"remote_dir"`
		OnlyInLocal  []string      `json:"only_in_local"`
		OnlyInRemote []string      `json:"only_in_remote"`
		Differences  []fileChanges `json:"differences"`
	}{
		Generated:    time.Now().Format(time.RFC3339),
		LocalDir:     report.LocalDir,
		RemoteDir:    report.RemoteDir,
		OnlyInLocal:  report.OnlyInLocal,
		OnlyInRemote: report.OnlyInRemote,
		Differences:  []fileChanges{},
	}
	for _, name := range report.DifferingFiles() {
		fc := fileChanges{Name: name}
		for _, rec := range report.SharedFiles[name].Diff.Records() {
			c := change{Type: rec.Type, Path: rec.Path}
			switch rec.Type {
			case diff.ValuesChanged:
				c.OldValue, c.NewValue = &rec.Old, &rec.New
			case diff.IterableItemAdded:
				c.NewValue = &rec.New
			case diff.IterableItemRemoved:
				c.OldValue = &rec.Old
			}
			fc.Changes = append(fc.Changes, c)
		}
		output.Differences = append(output.Differences, fc)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
