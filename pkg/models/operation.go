package models

import (
	"time"
)

// CompareOperation represents a single table comparison run
type CompareOperation struct {
	ID              string
	LocalDir        string
	RemoteDir       string
	OutputPath      string
	ExcludePatterns []string
	PairCutoff      float64 // distance at or below which unmatched sequence items are paired
	CreatedAt       time.Time
	StartedAt       *time.Time
	CompletedAt     *time.Time
}

// Validate checks if the operation configuration is valid
func (op *CompareOperation) Validate() error {
	if op.LocalDir == "" {
		return &ValidationError{Field: "LocalDir", Message: "local table directory is required"}
	}
	if op.RemoteDir == "" {
		return &ValidationError{Field: "RemoteDir", Message: "remote table directory is required"}
	}
	if op.OutputPath == "" {
		return &ValidationError{Field: "OutputPath", Message: "output path is required"}
	}
	if op.PairCutoff < 0 || op.PairCutoff > 1 {
		return &ValidationError{Field: "PairCutoff", Message: "pair cutoff must be between 0 and 1"}
	}
	return nil
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
