package parser

import (
	"errors"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/m-mizutani/depdiff/pkg/domain/model"
)

type poetryLock struct {
	Package []poetryPackage `toml:"package"`
}

type poetryPackage struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// poetryParser reads the [[package]] tables of a poetry.lock file
type poetryParser struct{}

func (poetryParser) Parse(text string) ([]model.Package, error) {
	var lock poetryLock
	if err := toml.Unmarshal([]byte(text), &lock); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, _ := derr.Position()
			return nil, malformed(lineAt(text, row), row)
		}
		// Type mismatches, e.g. `package = "x"`, carry no position
		return nil, malformed(err.Error(), 0)
	}

	packages := make([]model.Package, 0, len(lock.Package))
	for i, entry := range lock.Package {
		name := strings.TrimSpace(entry.Name)
		version := strings.TrimSpace(entry.Version)
		if name == "" {
			return nil, missingField("name", i)
		}
		if version == "" {
			return nil, missingField("version", i)
		}
		packages = append(packages, model.Package{
			Name:           name,
			CurrentVersion: version,
		})
	}

	return packages, nil
}

// lineAt returns the 1-based line of text, or "" when out of range
func lineAt(text string, row int) string {
	if row < 1 {
		return ""
	}
	lines := strings.Split(text, "\n")
	if row > len(lines) {
		return ""
	}
	return strings.TrimRight(lines[row-1], "\r")
}
