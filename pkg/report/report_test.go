package report_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/depdiff/pkg/domain/model"
	"github.com/m-mizutani/depdiff/pkg/parser"
	"github.com/m-mizutani/depdiff/pkg/report"
)

func sampleReport(t *testing.T) *model.ScanReport {
	t.Helper()

	diff, err := parser.ParsePatch("src/requests/adapters.py",
		"@@ -10,3 +10,3 @@ class HTTPAdapter:\n     def send(self):\n-        timeout = 10\n+        timeout = 30\n         return self\n")
	gt.NoError(t, err)

	compare := model.Compare("aaaaaaaaaa", "bbbbbbbbbb")
	latest := model.Skip(model.SkipAlreadyLatest)
	missing := model.SkipMissingTag(model.MissingLatestTag)

	return &model.ScanReport{
		Format:    "result",
		Extension: ".py",
		StartedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Packages: []model.PackageReport{
			{
				Package:  model.Package{Name: "requests", CurrentVersion: "2.31.0", LatestVersion: "2.32.0"},
				Decision: &compare,
				Files:    []model.FileDiff{*diff},
				FileErrors: []model.FileError{
					{Filename: "src/requests/broken.py", Error: "hunk line count mismatch"},
				},
				Summary: "Raises the default timeout.",
			},
			{
				Package:  model.Package{Name: "certifi", CurrentVersion: "2024.2.2", LatestVersion: "2024.2.2"},
				Decision: &latest,
			},
			{
				Package:  model.Package{Name: "idna", CurrentVersion: "3.6", LatestVersion: "3.7"},
				Decision: &missing,
			},
			{
				Package: model.Package{Name: "unknown", CurrentVersion: "1.0"},
				Error:   "failed to look up package",
			},
		},
	}
}

func TestNew(t *testing.T) {
	for _, format := range report.Formats() {
		w, err := report.New(format)
		gt.NoError(t, err)
		gt.V(t, w).NotNil()
	}

	_, err := report.New("xml")
	gt.Error(t, err)

	gt.V(t, report.Formats()).Equal([]string{"json", "patch", "text"})
}

func TestTextWriter(t *testing.T) {
	w, err := report.New("text", report.WithColor(false))
	gt.NoError(t, err)

	var buf bytes.Buffer
	gt.NoError(t, w.Write(&buf, sampleReport(t)))

	want := `== requests 2.31.0 -> 2.32.0
  compare aaaaaaa...bbbbbbb
  | Raises the default timeout.
  src/requests/adapters.py +1 -1
    @@ -10,3 +10,3 @@ class HTTPAdapter:
         def send(self):
    -        timeout = 10
    +        timeout = 30
             return self
  src/requests/broken.py: hunk line count mismatch

== certifi 2024.2.2
  skipped: already_latest

== idna 3.6 -> 3.7
  skipped: tag_not_found (latest)

== unknown 1.0
  error: failed to look up package

4 packages scanned, 1 compared
`
	gt.V(t, buf.String()).Equal(want)
}

func TestTextWriter_Color(t *testing.T) {
	w, err := report.New("text", report.WithColor(true))
	gt.NoError(t, err)

	var buf bytes.Buffer
	gt.NoError(t, w.Write(&buf, sampleReport(t)))
	gt.True(t, strings.Contains(buf.String(), "\x1b["))
}

func TestJSONWriter(t *testing.T) {
	w, err := report.New("json")
	gt.NoError(t, err)

	var buf bytes.Buffer
	gt.NoError(t, w.Write(&buf, sampleReport(t)))

	var decoded struct {
		Format   string `json:"format"`
		Packages []struct {
			Package struct {
				Name string `json:"name"`
			} `json:"package"`
			Decision *struct {
				SkipReason string `json:"skip_reason"`
				From       string `json:"from"`
			} `json:"decision"`
			Files []struct {
				Filename string `json:"filename"`
				Hunks    []struct {
					Lines []struct {
						Kind string `json:"kind"`
					} `json:"lines"`
				} `json:"hunks"`
			} `json:"files"`
			Error string `json:"error"`
		} `json:"packages"`
	}
	gt.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	gt.V(t, decoded.Format).Equal("result")
	gt.A(t, decoded.Packages).Length(4)
	gt.V(t, decoded.Packages[0].Decision.From).Equal("aaaaaaaaaa")
	gt.V(t, decoded.Packages[0].Files[0].Hunks[0].Lines[1].Kind).Equal("removed")
	gt.V(t, decoded.Packages[1].Decision.SkipReason).Equal("already_latest")
	gt.V(t, decoded.Packages[3].Decision).Nil()
	gt.V(t, decoded.Packages[3].Error).Equal("failed to look up package")
}

func TestPatchWriter(t *testing.T) {
	w, err := report.New("patch")
	gt.NoError(t, err)

	var buf bytes.Buffer
	gt.NoError(t, w.Write(&buf, sampleReport(t)))

	out := buf.String()
	gt.True(t, strings.HasPrefix(out, "# requests 2.31.0 -> 2.32.0\n"))
	gt.True(t, strings.Contains(out, "--- a/src/requests/adapters.py\n"))
	gt.True(t, strings.Contains(out, "+++ b/src/requests/adapters.py\n"))
	gt.True(t, strings.Contains(out, "@@ -10,3 +10,3 @@ class HTTPAdapter:\n"))
	// Skipped packages have no files and produce nothing
	gt.False(t, strings.Contains(out, "certifi"))
}

func TestWriteFileDiffs_RoundTrip(t *testing.T) {
	text := "@@ -1,3 +1,4 @@ import os\n import sys\n-import json\n+import ujson as json\n+import yaml\n \n"
	original, err := parser.ParsePatch("main.py", text)
	gt.NoError(t, err)

	var buf bytes.Buffer
	gt.NoError(t, report.WriteFileDiffs(&buf, []model.FileDiff{*original}))

	reparsed, err := parser.ParsePatch("main.py", buf.String())
	gt.NoError(t, err)
	gt.V(t, reparsed).Equal(original)
}
