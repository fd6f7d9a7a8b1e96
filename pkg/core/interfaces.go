package core

import (
	"io"
	"log"
	"os"
)

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// DefaultLogger implements Logger on top of the standard log package.
// It writes to stderr so that image data on stdout stays clean.
type DefaultLogger struct {
	logger *log.Logger
}

// NewDefaultLogger creates a logger writing to stderr
func NewDefaultLogger() Logger {
	return NewWriterLogger(os.Stderr)
}

// NewWriterLogger creates a logger writing to w without timestamps
func NewWriterLogger(w io.Writer) Logger {
	return &DefaultLogger{logger: log.New(w, "", 0)}
}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	dl.logger.Printf(format, args...)
}

// NopLogger discards everything
type NopLogger struct{}

func (NopLogger) Printf(string, ...interface{}) {}
