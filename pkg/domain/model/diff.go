package model

import "github.com/m-mizutani/goerr/v2"

// LineKind classifies a single line of a hunk
type LineKind int

const (
	LineContext LineKind = iota
	LineAdded
	LineRemoved
)

// String returns the kind name used in reports
func (k LineKind) String() string {
	switch k {
	case LineContext:
		return "context"
	case LineAdded:
		return "added"
	case LineRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Marker returns the unified-diff prefix character for the kind
func (k LineKind) Marker() byte {
	switch k {
	case LineAdded:
		return '+'
	case LineRemoved:
		return '-'
	default:
		return ' '
	}
}

// MarshalText encodes the kind by name
func (k LineKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name written by MarshalText
func (k *LineKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "context":
		*k = LineContext
	case "added":
		*k = LineAdded
	case "removed":
		*k = LineRemoved
	default:
		return goerr.New("unknown line kind", goerr.V("kind", string(text)))
	}
	return nil
}

// Range is a (start line, line count) pair from a hunk header
type Range struct {
	Start int `json:"start"`
	Count int `json:"count"`
}

// DiffLine is one line of a hunk without its leading marker
type DiffLine struct {
	Kind    LineKind `json:"kind"`
	Content string   `json:"content"`
}

// Hunk is a contiguous block of changes
type Hunk struct {
	Source  Range      `json:"source"`
	Target  Range      `json:"target"`
	Section string     `json:"section,omitempty"` // Text following the closing @@, e.g. a function name
	Lines   []DiffLine `json:"lines"`
}

// LineCounts returns the number of lines seen on the source and target side
func (h *Hunk) LineCounts() (source, target int) {
	for _, line := range h.Lines {
		switch line.Kind {
		case LineContext:
			source++
			target++
		case LineRemoved:
			source++
		case LineAdded:
			target++
		}
	}
	return source, target
}

// FileDiff holds the parsed hunks of one changed file
type FileDiff struct {
	Filename string `json:"filename"`
	Hunks    []Hunk `json:"hunks"`
}

// Stats returns the number of added and removed lines across all hunks
func (d *FileDiff) Stats() (added, removed int) {
	for _, h := range d.Hunks {
		for _, line := range h.Lines {
			switch line.Kind {
			case LineAdded:
				added++
			case LineRemoved:
				removed++
			}
		}
	}
	return added, removed
}
