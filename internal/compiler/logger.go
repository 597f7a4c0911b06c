package compiler

import (
	"fmt"
	"io"
	"os"
)

const logPrefix = "[regcraft] "

// Logger reports what the compiler does with each definition: one block per
// definition with its position, rendered source and engine check.
type Logger struct {
	enabled bool
	out     io.Writer
	current string // definition whose block is open
}

// NewLogger creates a new logger instance writing to stderr.
func NewLogger(enabled bool) *Logger {
	return &Logger{
		enabled: enabled,
		out:     os.Stderr,
	}
}

// SetOutput sets the output writer for the logger.
func (l *Logger) SetOutput(w io.Writer) {
	l.out = w
}

// Log prints a formatted message if verbose mode is enabled.
func (l *Logger) Log(format string, args ...interface{}) {
	if l.enabled {
		fmt.Fprintf(l.out, logPrefix+format+"\n", args...)
	}
}

// Section prints a section header if verbose mode is enabled.
func (l *Logger) Section(name string) {
	l.current = ""
	if l.enabled {
		fmt.Fprintf(l.out, "\n"+logPrefix+"=== %s ===\n", name)
	}
}

// Definition opens the block of the named definition declared at pos.
func (l *Logger) Definition(name, pos string) {
	l.current = name
	if l.enabled {
		fmt.Fprintf(l.out, logPrefix+"--- %s (%s)\n", name, pos)
	}
}

// Detail prints an indented line of the open definition block.
func (l *Logger) Detail(format string, args ...interface{}) {
	if !l.enabled {
		return
	}
	if l.current == "" {
		l.Log(format, args...)
		return
	}
	fmt.Fprintf(l.out, logPrefix+"    "+format+"\n", args...)
}

// Enabled returns whether the logger is enabled.
func (l *Logger) Enabled() bool {
	return l.enabled
}
