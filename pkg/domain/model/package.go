package model

import (
	"net/url"
	"strings"
)

// Package is a single dependency declared in a lockfile
type Package struct {
	Name           string `json:"name"`
	CurrentVersion string `json:"current_version"`
	LatestVersion  string `json:"latest_version,omitempty"` // Empty until resolved by a registry
	Homepage       string `json:"homepage,omitempty"`       // Source repository URL, if known
}

// HasLatestVersion reports whether a registry has resolved the latest release
func (p *Package) HasLatestVersion() bool {
	return p.LatestVersion != ""
}

// Repository extracts owner and repository name from the homepage
func (p *Package) Repository() (owner, repo string, ok bool) {
	return ParseGitHubRepository(p.Homepage)
}

// ParseGitHubRepository extracts owner and repository name from a GitHub URL
// such as https://github.com/psf/requests or git+https://github.com/psf/requests.git
func ParseGitHubRepository(rawURL string) (owner, repo string, ok bool) {
	raw := strings.TrimPrefix(strings.TrimSpace(rawURL), "git+")
	if raw == "" {
		return "", "", false
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", "", false
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	if host != "github.com" {
		return "", "", false
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}

	return parts[0], strings.TrimSuffix(parts[1], ".git"), true
}

// Tag is a named pointer to a commit in a source repository
type Tag struct {
	Name      string `json:"name"`
	CommitSHA string `json:"commit_sha"`
}

// ChangedFile is a file entry returned by a source-host comparison
type ChangedFile struct {
	Filename string
	Status   string // "added", "modified", "removed", "renamed"
	Patch    string // Unified-diff body for this file; empty for binary changes
}
