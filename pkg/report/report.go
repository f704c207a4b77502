package report

import (
	"io"
	"sort"

	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/depdiff/pkg/domain/model"
)

// Format selects how a scan report is rendered
type Format string

const (
	FormatText  Format = "text"
	FormatJSON  Format = "json"
	FormatPatch Format = "patch"
)

// Writer renders a scan report
type Writer interface {
	Write(w io.Writer, report *model.ScanReport) error
}

type options struct {
	color bool
}

// Option is a functional option for report writers
type Option func(*options)

// WithColor enables ANSI colors in the text format
func WithColor(enabled bool) Option {
	return func(o *options) {
		o.color = enabled
	}
}

// New creates a Writer for the given format name
func New(format string, opts ...Option) (Writer, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	switch Format(format) {
	case FormatText:
		return newTextWriter(o.color), nil
	case FormatJSON:
		return &jsonWriter{}, nil
	case FormatPatch:
		return &patchWriter{}, nil
	default:
		return nil, goerr.New("unsupported report format",
			goerr.V("format", format),
			goerr.V("supported", Formats()),
		)
	}
}

// Formats returns the supported format names in sorted order
func Formats() []string {
	formats := []string{string(FormatText), string(FormatJSON), string(FormatPatch)}
	sort.Strings(formats)
	return formats
}
