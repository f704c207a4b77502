package parser

import (
	"slices"

	"github.com/m-mizutani/depdiff/pkg/domain/model"
)

// Format selects the lockfile grammar
type Format string

const (
	// FormatLock is a Poetry poetry.lock document
	FormatLock Format = "lock"
	// FormatResult is pinned requirements output such as `pip freeze`
	FormatResult Format = "result"
)

// LockfileParser turns lockfile text into packages in declaration order.
// Implementations are atomic: any bad entry fails the whole parse.
type LockfileParser interface {
	Parse(text string) ([]model.Package, error)
}

var lockfileParsers = map[Format]LockfileParser{
	FormatLock:   poetryParser{},
	FormatResult: requirementsParser{},
}

// Formats returns every supported format, sorted by name
func Formats() []Format {
	formats := make([]Format, 0, len(lockfileParsers))
	for f := range lockfileParsers {
		formats = append(formats, f)
	}
	slices.Sort(formats)
	return formats
}

// ParseFormat validates a format name
func ParseFormat(name string) (Format, error) {
	f := Format(name)
	if _, ok := lockfileParsers[f]; !ok {
		return "", malformed(name, 0)
	}
	return f, nil
}

// ParseLockfile parses text with the grammar of the given format
func ParseLockfile(format Format, text string) ([]model.Package, error) {
	p, ok := lockfileParsers[format]
	if !ok {
		return nil, malformed(string(format), 0)
	}
	return p.Parse(text)
}
