package model

import "time"

// FileError records a changed file whose patch could not be parsed
type FileError struct {
	Filename string `json:"filename"`
	Error    string `json:"error"`
}

// PackageReport is the scan result of a single package
type PackageReport struct {
	Package    Package     `json:"package"`
	Decision   *Decision   `json:"decision,omitempty"` // Nil when the scan failed before deciding
	Files      []FileDiff  `json:"files,omitempty"`
	FileErrors []FileError `json:"file_errors,omitempty"`
	Summary    string      `json:"summary,omitempty"`
	Error      string      `json:"error,omitempty"` // Collaborator failure, e.g. registry lookup
}

// ScanReport aggregates the reports of all packages in one lockfile
type ScanReport struct {
	Format     string          `json:"format"`
	Extension  string          `json:"extension"`
	Packages   []PackageReport `json:"packages"`
	StartedAt  time.Time       `json:"started_at"`
	FinishedAt time.Time       `json:"finished_at"`
}

// Compared returns the number of packages for which a diff was fetched
func (r *ScanReport) Compared() int {
	n := 0
	for _, p := range r.Packages {
		if p.Decision != nil && p.Decision.IsCompare() && p.Error == "" {
			n++
		}
	}
	return n
}
