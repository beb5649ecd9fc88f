// Package errz defines the structured errors reported by fnord.
package errz

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// ErrorKind represents the category of an error.
type ErrorKind int

const (
	// ErrStructural indicates unbalanced loop brackets.
	ErrStructural ErrorKind = iota
	// ErrRuntime indicates a failure while executing a program.
	ErrRuntime
)

// String returns the string representation of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrStructural:
		return "structural error"
	case ErrRuntime:
		return "runtime error"
	default:
		return "error"
	}
}

// StructuredError is an error with a kind and a source location.
type StructuredError struct {
	Message  string
	Kind     ErrorKind
	Location SourceLocation
	Cause    error
}

// Error implements the error interface.
func (e *StructuredError) Error() string {
	if e.Location.IsZero() {
		return fmt.Sprintf("%s: %s", e.Kind.String(), e.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Kind.String(), e.Message, e.Location.String())
}

// Unwrap returns the underlying cause of the error.
func (e *StructuredError) Unwrap() error {
	return e.Cause
}

// FriendlyErrorMessage returns a human-friendly error message with the
// offending source line and a caret under the reported column.
func (e *StructuredError) FriendlyErrorMessage() string {
	var msg bytes.Buffer
	msg.WriteString(e.Error())
	msg.WriteString("\n")
	if e.Location.Source != "" {
		msg.WriteString(" | ")
		msg.WriteString(e.Location.Source)
		msg.WriteString("\n")
		if e.Location.Column > 0 {
			msg.WriteString(" | ")
			msg.WriteString(strings.Repeat(" ", e.Location.Column-1))
			msg.WriteString("^\n")
		}
	}
	return msg.String()
}

// NewStructuredError creates a new StructuredError with the given parameters.
func NewStructuredError(kind ErrorKind, message string, loc SourceLocation) *StructuredError {
	return &StructuredError{
		Message:  message,
		Kind:     kind,
		Location: loc,
	}
}

// NewStructuredErrorf creates a new StructuredError with a formatted message.
func NewStructuredErrorf(kind ErrorKind, loc SourceLocation, format string, args ...any) *StructuredError {
	return &StructuredError{
		Message:  fmt.Sprintf(format, args...),
		Kind:     kind,
		Location: loc,
	}
}

// WithCause wraps the error with a cause.
func (e *StructuredError) WithCause(cause error) *StructuredError {
	e.Cause = cause
	return e
}

// IsStructural reports whether err is, or wraps, a structural error.
func IsStructural(err error) bool {
	var se *StructuredError
	return errors.As(err, &se) && se.Kind == ErrStructural
}

// StructuralErrors returns every structural error carried by err, in the
// order they were reported. err may be a single StructuredError or an
// aggregate built with go-multierror.
func StructuralErrors(err error) []*StructuredError {
	if err == nil {
		return nil
	}
	var merr *multierror.Error
	if errors.As(err, &merr) {
		var out []*StructuredError
		for _, e := range merr.Errors {
			out = append(out, StructuralErrors(e)...)
		}
		return out
	}
	var se *StructuredError
	if errors.As(err, &se) && se.Kind == ErrStructural {
		return []*StructuredError{se}
	}
	return nil
}

// FriendlyErrorMessage renders err for humans. Structured errors, alone or
// aggregated, include source snippets; other errors use Error().
func FriendlyErrorMessage(err error) string {
	var merr *multierror.Error
	if errors.As(err, &merr) {
		var b strings.Builder
		for _, e := range merr.Errors {
			b.WriteString(FriendlyErrorMessage(e))
		}
		return b.String()
	}
	var se *StructuredError
	if errors.As(err, &se) {
		return se.FriendlyErrorMessage()
	}
	return err.Error() + "\n"
}
