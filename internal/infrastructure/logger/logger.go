package logger

import (
	"fmt"
	"io"
	"log"
	"os"

	usecasecontract "github.com/natybkl/Inklet/internal/usecase/contract"
)

// StdLogger writes leveled, component-prefixed lines through the standard
// log package. Each subsystem gets its own instance so log lines can be
// traced back to the usecase that emitted them.
type StdLogger struct {
	component string
	out       *log.Logger
}

var _ usecasecontract.IAppLogger = (*StdLogger)(nil)

// NewStdLogger creates a logger for the named component, writing to stderr.
// An empty component yields unprefixed lines.
func NewStdLogger(component string) *StdLogger {
	return newStdLogger(component, os.Stderr)
}

func newStdLogger(component string, w io.Writer) *StdLogger {
	return &StdLogger{
		component: component,
		out:       log.New(w, "", log.LstdFlags),
	}
}

func (l *StdLogger) logf(level, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if l.component != "" {
		l.out.Printf("[%s] %s: %s", level, l.component, msg)
		return
	}
	l.out.Printf("[%s] %s", level, msg)
}

// Debugf logs a debug message.
func (l *StdLogger) Debugf(format string, args ...interface{}) {
	l.logf("DEBUG", format, args...)
}

// Infof logs an info message.
func (l *StdLogger) Infof(format string, args ...interface{}) {
	l.logf("INFO", format, args...)
}

// Warnf logs a warning message.
func (l *StdLogger) Warnf(format string, args ...interface{}) {
	l.logf("WARN", format, args...)
}

// Warningf logs a warning message.
func (l *StdLogger) Warningf(format string, args ...interface{}) {
	l.logf("WARNING", format, args...)
}

// Errorf logs an error message.
func (l *StdLogger) Errorf(format string, args ...interface{}) {
	l.logf("ERROR", format, args...)
}

// Fatalf logs a fatal message and exits.
func (l *StdLogger) Fatalf(format string, args ...interface{}) {
	l.logf("FATAL", format, args...)
	os.Exit(1)
}
