package models

import (
	"io/fs"
)

// DirectoryNotFoundError is returned when a table directory does not exist.
// It is the only error a comparison run recovers from.
type DirectoryNotFoundError struct {
	Path string
}

func (e *DirectoryNotFoundError) Error() string {
	return "directory not found: " + e.Path
}

// Is lets errors.Is(err, fs.ErrNotExist) match.
func (e *DirectoryNotFoundError) Is(target error) bool {
	return target == fs.ErrNotExist
}

// ParseError reports a table file that is not valid YAML
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return "failed to parse " + e.Path + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IOError reports a table file or directory that could not be read
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *IOError) Unwrap() error {
	return e.Err
}
