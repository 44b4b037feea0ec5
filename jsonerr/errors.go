// Package jsonerr defines the failure taxonomy for the JSON codec.
//
// Every error returned by the parser, the value tree, or the file
// wrappers maps to exactly one Kind. Parse errors additionally carry
// the byte offset of the offending position and a rendered excerpt of
// the surrounding source, so callers get a usable diagnostic without
// re-reading the input themselves.
package jsonerr

import (
	"errors"
	"fmt"
)

// Kind is a stable failure category.
type Kind string

const (
	// UnexpectedByte: the parser saw a byte not valid for the current
	// production.
	UnexpectedByte Kind = "UNEXPECTED_BYTE"

	// UnexpectedEnd: the buffer ran out mid-token, mid-string,
	// mid-escape, mid-literal, or between elements.
	UnexpectedEnd Kind = "UNEXPECTED_END"

	// BadEscape: unknown character after '\', or a malformed \uXXXX.
	BadEscape Kind = "BAD_ESCAPE"

	// BadControlChar: unescaped U+0000..U+001F inside a string.
	BadControlChar Kind = "BAD_CONTROL_CHAR"

	// NumberFormat: numeric token not parseable as a double.
	NumberFormat Kind = "NUMBER_FORMAT"

	// NumberRange: numeric token out of representable range.
	NumberRange Kind = "NUMBER_RANGE"

	// DepthExceeded: nesting deeper than the configured recursion limit.
	DepthExceeded Kind = "DEPTH_EXCEEDED"

	// TrailingData: non-whitespace after the top-level value.
	TrailingData Kind = "TRAILING_DATA"

	// FileAccess: cannot open, read, or write the file.
	FileAccess Kind = "FILE_ACCESS"

	// WrongKind: typed accessor called on a value of another alternative.
	WrongKind Kind = "WRONG_KIND"

	// KeyNotFound: lookup of a missing key via a checked accessor.
	KeyNotFound Kind = "KEY_NOT_FOUND"
)

// Error is the structured error type for all codec failures.
//
// Offset is the byte position in the source buffer for parse errors,
// or -1 when no position applies (value-tree and file errors).
// Excerpt, when non-empty, is a rendered multi-line view of the source
// around Offset (see the Excerpt function).
type Error struct {
	Kind    Kind
	Offset  int
	Message string
	Excerpt string
	Cause   error
}

func (e *Error) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("json: %s at byte %d: %s%s", e.Kind, e.Offset, e.Message, e.Excerpt)
	}
	return fmt.Sprintf("json: %s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates an Error with no source position.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Offset: -1, Message: message}
}

// At creates an Error positioned at the given byte offset of src,
// with the source excerpt rendered immediately.
func At(kind Kind, src []byte, offset int, message string) *Error {
	return &Error{Kind: kind, Offset: offset, Message: message, Excerpt: Excerpt(src, offset)}
}

// Wrap creates an Error wrapping an existing cause.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Offset: -1, Message: message, Cause: cause}
}

// IsKind reports whether err is (or wraps) a *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
