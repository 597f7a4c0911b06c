package pattern

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidArgument is returned when a node is constructed from malformed input.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidPattern is returned when a tree cannot be rendered.
	ErrInvalidPattern = errors.New("invalid pattern")

	// ErrRecursion is returned when a node (transitively) contains itself.
	ErrRecursion = errors.New("recursive pattern")
)

// ArgumentError reports a construction-time validation failure.
type ArgumentError struct {
	Arg    string
	Value  string
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %s %q: %s", e.Arg, e.Value, e.Reason)
}

func (e *ArgumentError) Unwrap() error { return ErrInvalidArgument }

func argError(arg, value, reason string) error {
	return &ArgumentError{Arg: arg, Value: value, Reason: reason}
}

// PatternError reports a node that cannot be rendered.
type PatternError struct {
	Node   Pattern
	Reason string
}

func (e *PatternError) Error() string {
	if e.Node == nil {
		return "invalid pattern: " + e.Reason
	}
	return fmt.Sprintf("invalid pattern %s: %s", nodeName(e.Node), e.Reason)
}

func (e *PatternError) Unwrap() error { return ErrInvalidPattern }

func patternError(p Pattern, format string, args ...interface{}) error {
	return &PatternError{Node: p, Reason: fmt.Sprintf(format, args...)}
}

// RecursionError reports a node found on the active traversal stack.
// Path lists the in-progress nodes from the root, ending with Node.
type RecursionError struct {
	Query string
	Path  []Pattern
	Node  Pattern
}

func (e *RecursionError) Error() string {
	names := make([]string, len(e.Path))
	for i, p := range e.Path {
		names[i] = nodeName(p)
	}
	if len(names) > 0 {
		names[len(names)-1] = "[" + names[len(names)-1] + "]"
	}
	return fmt.Sprintf("recursive pattern while computing %s: %s", e.Query, strings.Join(names, " > "))
}

func (e *RecursionError) Unwrap() error { return ErrRecursion }
