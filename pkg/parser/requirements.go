package parser

import (
	"strings"

	"github.com/m-mizutani/depdiff/pkg/domain/model"
)

// requirementsParser reads pinned `name==version` lines as produced by pip freeze
type requirementsParser struct{}

type logicalLine struct {
	text string
	line int // first physical line
}

func (requirementsParser) Parse(text string) ([]model.Package, error) {
	var packages []model.Package

	for _, ll := range joinContinuations(text) {
		req := stripComment(ll.text)
		req = strings.TrimSpace(req)
		if req == "" || strings.HasPrefix(req, "-") {
			continue
		}

		// Environment markers and per-requirement options never affect the pin
		if i := strings.Index(req, ";"); i >= 0 {
			req = req[:i]
		}
		if i := strings.Index(req, " --"); i >= 0 {
			req = req[:i]
		}
		req = strings.TrimSpace(req)

		name, version, ok := splitPin(req)
		if !ok {
			return nil, malformed(strings.TrimSpace(ll.text), ll.line)
		}

		idx := len(packages)
		if name == "" {
			return nil, missingField("name", idx)
		}
		if version == "" {
			return nil, missingField("version", idx)
		}

		packages = append(packages, model.Package{
			Name:           name,
			CurrentVersion: version,
		})
	}

	return packages, nil
}

// splitPin splits `name[extras]==version`. ok is false when the line is not an
// exact pin at all, e.g. `name>=1.0` or a direct URL reference.
func splitPin(req string) (name, version string, ok bool) {
	sep := "=="
	if strings.Contains(req, "===") {
		sep = "==="
	}
	name, version, found := strings.Cut(req, sep)
	if !found {
		return "", "", false
	}

	name = strings.TrimSpace(name)
	version = strings.TrimSpace(version)
	if strings.ContainsAny(name, "<>!~=@ ") || strings.ContainsAny(version, "<>!~=,* ") {
		return "", "", false
	}

	if i := strings.Index(name, "["); i >= 0 {
		if !strings.HasSuffix(name, "]") {
			return "", "", false
		}
		name = strings.TrimSpace(name[:i])
	}

	return name, version, true
}

// stripComment removes a `#` comment that starts the line or follows whitespace
func stripComment(line string) string {
	if strings.HasPrefix(strings.TrimSpace(line), "#") {
		return ""
	}
	for i := 1; i < len(line); i++ {
		if line[i] == '#' && (line[i-1] == ' ' || line[i-1] == '\t') {
			return line[:i]
		}
	}
	return line
}

func joinContinuations(text string) []logicalLine {
	var (
		result  []logicalLine
		current strings.Builder
		start   int
	)

	for i, raw := range strings.Split(text, "\n") {
		raw = strings.TrimRight(raw, "\r")
		if current.Len() == 0 {
			start = i + 1
		}

		if strings.HasSuffix(raw, "\\") {
			current.WriteString(strings.TrimSuffix(raw, "\\"))
			current.WriteString(" ")
			continue
		}

		current.WriteString(raw)
		result = append(result, logicalLine{text: current.String(), line: start})
		current.Reset()
	}

	if current.Len() > 0 {
		result = append(result, logicalLine{text: current.String(), line: start})
	}

	return result
}
