// Package logging implements dura's small leveled stderr logger, in the
// style of distr1-distri's cmd/distri/log.go: a thin wrapper around the
// standard library's *log.Logger rather than a third-party logging
// framework, matching the ambient logging style of every repo in the
// example pack.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
)

// Logger emits leveled, human-readable lines to an underlying writer.
type Logger struct {
	out *log.Logger
}

// New returns a Logger writing to w with the given prefix (e.g. "dura: ").
func New(w io.Writer, prefix string) *Logger {
	return &Logger{out: log.New(w, prefix, 0)}
}

// Default returns a Logger writing to os.Stderr with dura's standard
// prefix.
func Default() *Logger {
	return New(os.Stderr, "dura: ")
}

// Discard returns a Logger that drops everything written to it, for use
// as a zero-configuration default in library code.
func Discard() *Logger {
	return New(io.Discard, "")
}

// Infof logs an informational message.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.out.Print("info: " + fmt.Sprintf(format, args...))
}

// Warnf logs a warning: a condition the caller should know about but that
// doesn't abort the current operation.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.out.Print("warning: " + fmt.Sprintf(format, args...))
}

// Errorf logs an error that the caller is about to return or abort on.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.out.Print("error: " + fmt.Sprintf(format, args...))
}
