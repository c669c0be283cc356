// Package errors defines the structured error type shared across themer. A
// run fails with exactly one ThemerError at the top; the Kind distinguishes
// user-facing configuration problems from internal defects so the CLI can
// phrase them differently.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Kind categorizes an error for reporting and exit handling.
type Kind string

const (
	KindConfig   Kind = "config"
	KindTheme    Kind = "theme"
	KindScheme   Kind = "scheme"
	KindTemplate Kind = "template"
	KindManifest Kind = "manifest"
	KindProvider Kind = "provider"
	KindRender   Kind = "render"
	KindInternal Kind = "internal"
	KindIO       Kind = "io"
)

// ThemerError is a structured error with a kind, optional file path context,
// and an optional wrapped cause.
type ThemerError struct {
	Kind    Kind
	Message string
	Path    string
	Module  string
	Cause   error
}

// Error implements the error interface.
func (e *ThemerError) Error() string {
	var parts []string

	if e.Kind == KindInternal {
		parts = append(parts, fmt.Sprintf("internal error in %s:", e.Module))
	} else {
		parts = append(parts, fmt.Sprintf("%s error:", e.Kind))
	}

	parts = append(parts, e.Message)

	if e.Path != "" {
		parts = append(parts, fmt.Sprintf("(%s)", e.Path))
	}

	result := strings.Join(parts, " ")

	if e.Kind == KindInternal {
		result += "! this is a bug"
	}

	if e.Cause != nil {
		result += fmt.Sprintf(": %v", e.Cause)
	}

	return result
}

// Unwrap returns the wrapped cause.
func (e *ThemerError) Unwrap() error {
	return e.Cause
}

// Is matches two ThemerErrors by kind.
func (e *ThemerError) Is(target error) bool {
	var t *ThemerError
	if errors.As(target, &t) {
		return e.Kind == t.Kind
	}

	return false
}

// WithPath attaches the offending file path.
func (e *ThemerError) WithPath(path string) *ThemerError {
	e.Path = path

	return e
}

// New creates an error of the given kind.
func New(kind Kind, message string) *ThemerError {
	return &ThemerError{Kind: kind, Message: message}
}

// Newf creates an error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...any) *ThemerError {
	return &ThemerError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an error of the given kind around a cause.
func Wrap(kind Kind, cause error, message string) *ThemerError {
	return &ThemerError{Kind: kind, Message: message, Cause: cause}
}

// Wrapf creates an error of the given kind around a cause with a formatted
// message.
func Wrapf(kind Kind, cause error, format string, args ...any) *ThemerError {
	return &ThemerError{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// InternalBug reports a defect in themer itself rather than bad user input.
// module names the package at fault.
func InternalBug(module, reason string) *ThemerError {
	return &ThemerError{Kind: KindInternal, Module: module, Message: reason}
}

// IsKind reports whether err is (or wraps) a ThemerError of the given kind.
func IsKind(err error, kind Kind) bool {
	var t *ThemerError
	return errors.As(err, &t) && t.Kind == kind
}
