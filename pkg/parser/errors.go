package parser

import (
	"errors"
	"fmt"
)

// Kind classifies a ParseError
type Kind int

const (
	KindMalformed Kind = iota + 1
	KindMissingField
	KindHunkLineCountMismatch
	KindUnexpectedMarker
)

// Sentinels matched by errors.Is against any ParseError of the same kind
var (
	ErrMalformed             = errors.New("malformed input")
	ErrMissingField          = errors.New("missing required field")
	ErrHunkLineCountMismatch = errors.New("hunk line count mismatch")
	ErrUnexpectedMarker      = errors.New("unexpected line marker")
)

func (k Kind) sentinel() error {
	switch k {
	case KindMalformed:
		return ErrMalformed
	case KindMissingField:
		return ErrMissingField
	case KindHunkLineCountMismatch:
		return ErrHunkLineCountMismatch
	case KindUnexpectedMarker:
		return ErrUnexpectedMarker
	default:
		return nil
	}
}

// ParseError is returned by every parser in this package. Only the fields
// relevant to Kind are set; Line is 1-based and 0 when unknown.
type ParseError struct {
	Kind Kind

	Fragment string // Malformed, UnexpectedMarker: offending input
	Line     int    // Malformed, UnexpectedMarker

	Field      string // MissingField: "name" or "version"
	EntryIndex int    // MissingField: 0-based entry position

	HunkIndex int    // HunkLineCountMismatch, UnexpectedMarker: 0-based hunk position
	Side      string // HunkLineCountMismatch: "source" or "target"
	Expected  int    // HunkLineCountMismatch
	Actual    int    // HunkLineCountMismatch
	Marker    string // UnexpectedMarker
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case KindMalformed:
		if e.Line > 0 {
			return fmt.Sprintf("%s at line %d: %q", ErrMalformed, e.Line, e.Fragment)
		}
		return fmt.Sprintf("%s: %q", ErrMalformed, e.Fragment)
	case KindMissingField:
		return fmt.Sprintf("%s %q in entry %d", ErrMissingField, e.Field, e.EntryIndex)
	case KindHunkLineCountMismatch:
		return fmt.Sprintf("%s in hunk %d: %s expects %d lines, got %d",
			ErrHunkLineCountMismatch, e.HunkIndex, e.Side, e.Expected, e.Actual)
	case KindUnexpectedMarker:
		return fmt.Sprintf("%s %q in hunk %d at line %d", ErrUnexpectedMarker, e.Marker, e.HunkIndex, e.Line)
	default:
		return "parse error"
	}
}

// Unwrap exposes the kind sentinel to errors.Is
func (e *ParseError) Unwrap() error {
	return e.Kind.sentinel()
}

func malformed(fragment string, line int) *ParseError {
	return &ParseError{Kind: KindMalformed, Fragment: fragment, Line: line}
}

func missingField(field string, entryIndex int) *ParseError {
	return &ParseError{Kind: KindMissingField, Field: field, EntryIndex: entryIndex}
}

// IsParseError reports whether err carries a ParseError
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
