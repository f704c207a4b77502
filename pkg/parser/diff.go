package parser

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/m-mizutani/depdiff/pkg/domain/model"
)

var hunkHeaderPattern = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@ ?(.*)$`)

// Extended header lines that git may put in front of the first hunk
var patchPreamble = []string{
	"diff ", "index ", "--- ", "+++ ",
	"new file mode", "deleted file mode", "old mode", "new mode",
	"similarity index", "dissimilarity index", "rename from", "rename to",
	"copy from", "copy to", "Binary files",
}

type diffState int

const (
	stateHeader diffState = iota // expecting a hunk header
	stateContent                 // reading lines of the current hunk
)

// ParsePatch parses the unified-diff body of a single file. Empty text yields
// a FileDiff without hunks.
func ParsePatch(filename, text string) (*model.FileDiff, error) {
	diff := &model.FileDiff{
		Filename: filename,
		Hunks:    []model.Hunk{},
	}

	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	var (
		state   = stateHeader
		current *model.Hunk
	)

	finalize := func() error {
		if current == nil {
			return nil
		}
		if err := validateHunk(current, len(diff.Hunks)); err != nil {
			return err
		}
		diff.Hunks = append(diff.Hunks, *current)
		current = nil
		return nil
	}

	for i, line := range lines {
		lineNo := i + 1

		if strings.HasPrefix(line, "@@") {
			hunk, ok := parseHunkHeader(strings.TrimRight(line, "\r"))
			if !ok {
				return nil, malformed(line, lineNo)
			}
			if err := finalize(); err != nil {
				return nil, err
			}
			current = hunk
			state = stateContent
			continue
		}

		switch state {
		case stateHeader:
			if strings.TrimSpace(line) == "" || hasPreamblePrefix(line) {
				continue
			}
			return nil, malformed(line, lineNo)

		case stateContent:
			if line == "" {
				// A bare empty line is a context line whose space was stripped,
				// unless the hunk is already complete. Lines after it still
				// count against the current hunk.
				if hunkComplete(current) {
					continue
				}
				current.Lines = append(current.Lines, model.DiffLine{Kind: model.LineContext})
				continue
			}

			switch line[0] {
			case ' ':
				current.Lines = append(current.Lines, model.DiffLine{Kind: model.LineContext, Content: line[1:]})
			case '+':
				current.Lines = append(current.Lines, model.DiffLine{Kind: model.LineAdded, Content: line[1:]})
			case '-':
				current.Lines = append(current.Lines, model.DiffLine{Kind: model.LineRemoved, Content: line[1:]})
			case '\\':
				// "\ No newline at end of file" closes the line group
				continue
			default:
				return nil, &ParseError{
					Kind:      KindUnexpectedMarker,
					Marker:    string(line[0]),
					Fragment:  line,
					Line:      lineNo,
					HunkIndex: len(diff.Hunks),
				}
			}
		}
	}

	if err := finalize(); err != nil {
		return nil, err
	}

	return diff, nil
}

func parseHunkHeader(line string) (*model.Hunk, bool) {
	m := hunkHeaderPattern.FindStringSubmatch(line)
	if m == nil {
		return nil, false
	}

	var nums [4]int
	for i, raw := range []string{m[1], m[2], m[3], m[4]} {
		if raw == "" {
			nums[i] = 1
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n > math.MaxInt32 {
			return nil, false
		}
		nums[i] = n
	}

	return &model.Hunk{
		Source:  model.Range{Start: nums[0], Count: nums[1]},
		Target:  model.Range{Start: nums[2], Count: nums[3]},
		Section: m[5],
		Lines:   []model.DiffLine{},
	}, true
}

func hunkComplete(h *model.Hunk) bool {
	source, target := h.LineCounts()
	return source >= h.Source.Count && target >= h.Target.Count
}

func validateHunk(h *model.Hunk, index int) error {
	source, target := h.LineCounts()
	if source != h.Source.Count {
		return &ParseError{
			Kind:      KindHunkLineCountMismatch,
			HunkIndex: index,
			Side:      "source",
			Expected:  h.Source.Count,
			Actual:    source,
		}
	}
	if target != h.Target.Count {
		return &ParseError{
			Kind:      KindHunkLineCountMismatch,
			HunkIndex: index,
			Side:      "target",
			Expected:  h.Target.Count,
			Actual:    target,
		}
	}
	return nil
}

func hasPreamblePrefix(line string) bool {
	for _, p := range patchPreamble {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}
