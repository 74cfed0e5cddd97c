package core

import (
	"fmt"
	"os"
)

// StdoutLogger is the default Logger, writing directly to stdout.
type StdoutLogger struct{}

// NewStdoutLogger returns a Logger that writes to os.Stdout.
func NewStdoutLogger() *StdoutLogger { return &StdoutLogger{} }

// Printf implements Logger.
func (StdoutLogger) Printf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stdout, format, args...)
}

var _ Logger = StdoutLogger{}
