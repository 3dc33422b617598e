package logging

import "context"

var _ Logger = NullLogger{}

// NullLogger discards everything. It is the logger used when logging is
// disabled and the fallback for components given a nil logger.
type NullLogger struct{}

// NewNullLogger returns a logger that discards all entries
func NewNullLogger() NullLogger {
	return NullLogger{}
}

func (NullLogger) Debug(context.Context, string, Fields)        {}
func (NullLogger) Info(context.Context, string, Fields)         {}
func (NullLogger) Warn(context.Context, string, Fields)         {}
func (NullLogger) Error(context.Context, string, error, Fields) {}

// WithFields returns the receiver; there is nothing to annotate
func (l NullLogger) WithFields(Fields) Logger { return l }

// Close is a no-op
func (NullLogger) Close() error { return nil }
