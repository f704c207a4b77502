package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/depdiff/pkg/domain/model"
)

type textWriter struct {
	header  *color.Color
	added   *color.Color
	removed *color.Color
	hunk    *color.Color
	skipped *color.Color
	failed  *color.Color
}

func newTextWriter(enabled bool) *textWriter {
	x := &textWriter{
		header:  color.New(color.Bold),
		added:   color.New(color.FgGreen),
		removed: color.New(color.FgRed),
		hunk:    color.New(color.FgCyan),
		skipped: color.New(color.FgYellow),
		failed:  color.New(color.FgRed, color.Bold),
	}

	for _, c := range []*color.Color{x.header, x.added, x.removed, x.hunk, x.skipped, x.failed} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return x
}

func (x *textWriter) Write(w io.Writer, report *model.ScanReport) error {
	var b strings.Builder

	for _, p := range report.Packages {
		x.writePackage(&b, &p)
	}

	fmt.Fprintf(&b, "%d packages scanned, %d compared\n", len(report.Packages), report.Compared())

	if _, err := io.WriteString(w, b.String()); err != nil {
		return goerr.Wrap(err, "failed to write text report")
	}
	return nil
}

func (x *textWriter) writePackage(b *strings.Builder, p *model.PackageReport) {
	pkg := p.Package
	version := pkg.CurrentVersion
	if pkg.HasLatestVersion() && pkg.LatestVersion != pkg.CurrentVersion {
		version += " -> " + pkg.LatestVersion
	}
	b.WriteString(x.header.Sprintf("== %s %s", pkg.Name, version))
	b.WriteString("\n")

	switch {
	case p.Error != "":
		b.WriteString(x.failed.Sprintf("  error: %s", p.Error))
		b.WriteString("\n\n")
		return
	case p.Decision == nil:
		b.WriteString("\n")
		return
	case !p.Decision.IsCompare():
		b.WriteString(x.skipped.Sprintf("  skipped: %s", p.Decision.String()))
		b.WriteString("\n\n")
		return
	}

	fmt.Fprintf(b, "  %s\n", p.Decision.String())
	if p.Summary != "" {
		for _, line := range strings.Split(strings.TrimSpace(p.Summary), "\n") {
			fmt.Fprintf(b, "  | %s\n", line)
		}
	}

	for _, f := range p.Files {
		added, removed := f.Stats()
		fmt.Fprintf(b, "  %s %s %s\n", f.Filename,
			x.added.Sprintf("+%d", added),
			x.removed.Sprintf("-%d", removed),
		)

		for _, h := range f.Hunks {
			header := fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.Source.Start, h.Source.Count, h.Target.Start, h.Target.Count)
			if h.Section != "" {
				header += " " + h.Section
			}
			fmt.Fprintf(b, "    %s\n", x.hunk.Sprint(header))

			for _, line := range h.Lines {
				text := string(line.Kind.Marker()) + line.Content
				switch line.Kind {
				case model.LineAdded:
					text = x.added.Sprint(text)
				case model.LineRemoved:
					text = x.removed.Sprint(text)
				}
				fmt.Fprintf(b, "    %s\n", text)
			}
		}
	}

	for _, fe := range p.FileErrors {
		b.WriteString(x.failed.Sprintf("  %s: %s", fe.Filename, fe.Error))
		b.WriteString("\n")
	}
	b.WriteString("\n")
}
