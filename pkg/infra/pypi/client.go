package pypi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/depdiff/pkg/domain/interfaces"
	"github.com/m-mizutani/depdiff/pkg/domain/model"
)

// DefaultBaseURL is the public Python Package Index
const DefaultBaseURL = "https://pypi.org"

// ErrPackageNotFound is returned when the registry has no such project
var ErrPackageNotFound = errors.New("package not found in registry")

// project_urls keys checked first, compared case-insensitively
var preferredURLKeys = []string{"source", "source code", "repository", "code", "github", "homepage"}

type projectResponse struct {
	Info struct {
		Version     string            `json:"version"`
		HomePage    string            `json:"home_page"`
		ProjectURLs map[string]string `json:"project_urls"`
	} `json:"info"`
}

type client struct {
	baseURL    string
	httpClient *http.Client
}

// Option is a functional option for the PyPI client
type Option func(*client)

// WithBaseURL points the client at a mirror or a test server
func WithBaseURL(baseURL string) Option {
	return func(c *client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a PyPI JSON API client
func NewClient(opts ...Option) interfaces.Registry {
	c := &client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Lookup fetches the latest version and source repository URL of a project
func (c *client) Lookup(ctx context.Context, name string) (*interfaces.PackageInfo, error) {
	endpoint := fmt.Sprintf("%s/pypi/%s/json", c.baseURL, url.PathEscape(name))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create PyPI request", goerr.V("url", endpoint))
	}
	req.Header.Set("Accept", "application/json")

	ctxlog.From(ctx).Debug("Fetching package metadata", "package", name, "url", endpoint)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch package metadata", goerr.V("package", name))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, goerr.Wrap(ErrPackageNotFound, "PyPI returned 404", goerr.V("package", name))
	case resp.StatusCode != http.StatusOK:
		return nil, goerr.New("unexpected status code from PyPI",
			goerr.V("package", name),
			goerr.V("status", resp.StatusCode),
		)
	}

	var project projectResponse
	if err := json.NewDecoder(resp.Body).Decode(&project); err != nil {
		return nil, goerr.Wrap(err, "failed to decode PyPI response", goerr.V("package", name))
	}

	return &interfaces.PackageInfo{
		LatestVersion: project.Info.Version,
		Homepage:      sourceURL(project.Info.ProjectURLs, project.Info.HomePage),
	}, nil
}

// sourceURL picks the first GitHub repository URL among the project links
func sourceURL(projectURLs map[string]string, homePage string) string {
	byKey := make(map[string]string, len(projectURLs))
	var rest []string
	for k, v := range projectURLs {
		key := strings.ToLower(strings.TrimSpace(k))
		byKey[key] = v
		if !slices.Contains(preferredURLKeys, key) {
			rest = append(rest, key)
		}
	}
	slices.Sort(rest)

	candidates := make([]string, 0, len(projectURLs)+1)
	for _, key := range preferredURLKeys {
		if v, ok := byKey[key]; ok {
			candidates = append(candidates, v)
		}
	}
	for _, key := range rest {
		candidates = append(candidates, byKey[key])
	}
	candidates = append(candidates, homePage)

	for _, candidate := range candidates {
		if _, _, ok := model.ParseGitHubRepository(candidate); ok {
			return candidate
		}
	}
	return ""
}
