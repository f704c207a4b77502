package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/sourcegraph/go-diff/diff"

	"github.com/m-mizutani/depdiff/pkg/domain/model"
)

type patchWriter struct{}

// Write emits the diffs of every compared package as one git-style patch.
// Each package is introduced by a comment line that patch tools ignore.
func (x *patchWriter) Write(w io.Writer, report *model.ScanReport) error {
	for _, p := range report.Packages {
		if len(p.Files) == 0 {
			continue
		}

		if _, err := fmt.Fprintf(w, "# %s %s -> %s\n", p.Package.Name, p.Package.CurrentVersion, p.Package.LatestVersion); err != nil {
			return goerr.Wrap(err, "failed to write patch header")
		}
		if err := WriteFileDiffs(w, p.Files); err != nil {
			return goerr.Wrap(err, "failed to write patch", goerr.V("package", p.Package.Name))
		}
	}
	return nil
}

// WriteFileDiffs renders parsed file diffs back into unified-diff text
func WriteFileDiffs(w io.Writer, files []model.FileDiff) error {
	diffs := make([]*diff.FileDiff, 0, len(files))
	for _, f := range files {
		diffs = append(diffs, toFileDiff(f))
	}

	out, err := diff.PrintMultiFileDiff(diffs)
	if err != nil {
		return goerr.Wrap(err, "failed to print diff")
	}
	if _, err := w.Write(out); err != nil {
		return goerr.Wrap(err, "failed to write diff")
	}
	return nil
}

func toFileDiff(f model.FileDiff) *diff.FileDiff {
	fd := &diff.FileDiff{
		OrigName: "a/" + f.Filename,
		NewName:  "b/" + f.Filename,
		Extended: []string{fmt.Sprintf("diff --git a/%s b/%s", f.Filename, f.Filename)},
	}

	for _, h := range f.Hunks {
		var body strings.Builder
		for _, line := range h.Lines {
			body.WriteByte(line.Kind.Marker())
			body.WriteString(line.Content)
			body.WriteByte('\n')
		}

		fd.Hunks = append(fd.Hunks, &diff.Hunk{
			OrigStartLine: int32(h.Source.Start),
			OrigLines:     int32(h.Source.Count),
			NewStartLine:  int32(h.Target.Start),
			NewLines:      int32(h.Target.Count),
			Section:       h.Section,
			Body:          []byte(body.String()),
		})
	}

	return fd
}
