// Package engine orchestrates a table comparison run: list both
// directories, partition the names, diff every shared table and assemble
// the report.
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sdejongh/tablediff/pkg/compare"
	"github.com/sdejongh/tablediff/pkg/logging"
	"github.com/sdejongh/tablediff/pkg/models"
	"github.com/sdejongh/tablediff/pkg/output"
	"github.com/sdejongh/tablediff/pkg/storage"
)

// Engine orchestrates the comparison
type Engine struct {
	local      storage.Backend
	remote     storage.Backend
	comparator compare.Comparator
	formatter  output.Formatter
	logger     logging.Logger
	operation  *models.CompareOperation
}

// NewEngine creates a new comparison engine. A nil logger discards logs.
func NewEngine(
	local, remote storage.Backend,
	comparator compare.Comparator,
	formatter output.Formatter,
	logger logging.Logger,
	operation *models.CompareOperation,
) *Engine {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Engine{
		local:      local,
		remote:     remote,
		comparator: comparator,
		formatter:  formatter,
		logger:     logger.WithFields(logging.Fields{"operation_id": operation.ID}),
		operation:  operation,
	}
}

// Run executes the comparison. Shared tables are compared one at a time in
// name order. Any error other than a missing directory aborts the run and
// no report is returned.
func (e *Engine) Run(ctx context.Context) (*models.Report, error) {
	startTime := time.Now()
	e.operation.StartedAt = &startTime

	report := models.NewReport(e.operation)
	report.StartTime = startTime

	e.logger.Info(ctx, "Starting table comparison", logging.Fields{
		"local":      e.local.Root(),
		"remote":     e.remote.Root(),
		"comparator": e.comparator.Name(),
	})

	localSnap, err := e.snapshot(ctx, e.local)
	if err != nil {
		return nil, fmt.Errorf("failed to list local directory: %w", err)
	}
	remoteSnap, err := e.snapshot(ctx, e.remote)
	if err != nil {
		return nil, fmt.Errorf("failed to list remote directory: %w", err)
	}

	partition := compare.PartitionSnapshots(localSnap, remoteSnap)
	report.OnlyInLocal = partition.OnlyA
	report.OnlyInRemote = partition.OnlyB

	e.logger.Info(ctx, "Partitioned table directories", logging.Fields{
		"shared":         len(partition.Shared),
		"only_in_local":  len(partition.OnlyA),
		"only_in_remote": len(partition.OnlyB),
	})

	if err := e.formatter.Start(partition); err != nil {
		return nil, fmt.Errorf("failed to start output: %w", err)
	}

	total := len(partition.Shared)
	for i, name := range partition.Shared {
		e.formatter.Progress(output.ProgressUpdate{
			Type:        "compare_start",
			FilePath:    name,
			CurrentFile: i + 1,
			TotalFiles:  total,
		})

		cmp, err := e.comparator.Compare(ctx, e.local, e.remote, name)
		if err != nil {
			e.logger.Error(ctx, "Failed to compare table", err, logging.Fields{"file": name})
			return nil, fmt.Errorf("failed to compare %s: %w", name, err)
		}

		report.SharedFiles[name] = models.FileDiff{Diff: cmp.Diff}

		e.logger.Debug(ctx, "Compared table", logging.Fields{
			"file":    name,
			"result":  string(cmp.Result),
			"changes": cmp.Diff.Count(),
		})

		e.formatter.Progress(output.ProgressUpdate{
			Type:        "compare_complete",
			FilePath:    name,
			CurrentFile: i + 1,
			TotalFiles:  total,
			Changes:     cmp.Diff.Len(),
		})
	}

	endTime := time.Now()
	e.operation.CompletedAt = &endTime
	report.EndTime = endTime
	report.Duration = endTime.Sub(startTime)

	e.logger.Info(ctx, "Table comparison completed", logging.Fields{
		"duration":        report.Duration.String(),
		"status":          string(report.Status()),
		"differing_files": len(report.DifferingFiles()),
	})

	if err := e.formatter.Complete(report); err != nil {
		return nil, fmt.Errorf("failed to complete output: %w", err)
	}

	return report, nil
}

// snapshot lists a backend. A missing directory is reported and yields an
// empty snapshot; every other failure is returned.
func (e *Engine) snapshot(ctx context.Context, backend storage.Backend) (compare.Snapshot, error) {
	entries, err := backend.List(ctx)
	if err != nil {
		var notFound *models.DirectoryNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}

		e.formatter.Error(err)
		e.logger.Warn(ctx, "Table directory not found, treating as empty", logging.Fields{
			"path": notFound.Path,
		})
		return compare.NewSnapshot(), nil
	}

	return compare.SnapshotFromEntries(entries, e.operation.ExcludePatterns), nil
}
