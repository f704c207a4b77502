package github

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/depdiff/pkg/domain/interfaces"
	"github.com/m-mizutani/depdiff/pkg/domain/model"
)

const tagsPerPage = 100

type config struct {
	token          string
	appID          int64
	installationID int64
	privateKey     []byte
	baseURL        string
	httpClient     *http.Client
}

// Option is a functional option for the GitHub client
type Option func(*config)

// WithToken authenticates with a personal access token
func WithToken(token string) Option {
	return func(c *config) {
		c.token = token
	}
}

// WithApp authenticates as a GitHub App installation
func WithApp(appID, installationID int64, privateKey []byte) Option {
	return func(c *config) {
		c.appID = appID
		c.installationID = installationID
		c.privateKey = privateKey
	}
}

// WithBaseURL overrides the REST API endpoint, e.g. for GitHub Enterprise
func WithBaseURL(baseURL string) Option {
	return func(c *config) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets the underlying HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *config) {
		c.httpClient = httpClient
	}
}

type client struct {
	githubClient *github.Client
}

// NewClient creates a GitHub client. App credentials take precedence over a
// token; without either the client is anonymous and heavily rate limited.
func NewClient(opts ...Option) (interfaces.SourceHost, error) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	httpClient := cfg.httpClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	if cfg.appID != 0 {
		base := httpClient.Transport
		if base == nil {
			base = http.DefaultTransport
		}
		itr, err := ghinstallation.New(base, cfg.appID, cfg.installationID, cfg.privateKey)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create GitHub App transport",
				goerr.V("app_id", cfg.appID),
				goerr.V("installation_id", cfg.installationID),
			)
		}
		if cfg.baseURL != "" {
			itr.BaseURL = strings.TrimRight(cfg.baseURL, "/")
		}
		httpClient = &http.Client{Transport: itr, Timeout: httpClient.Timeout}
	}

	githubClient := github.NewClient(httpClient)
	if cfg.appID == 0 && cfg.token != "" {
		githubClient = githubClient.WithAuthToken(cfg.token)
	}

	if cfg.baseURL != "" {
		u, err := url.Parse(strings.TrimRight(cfg.baseURL, "/") + "/")
		if err != nil {
			return nil, goerr.Wrap(err, "invalid GitHub base URL", goerr.V("base_url", cfg.baseURL))
		}
		githubClient.BaseURL = u
	}

	return &client{githubClient: githubClient}, nil
}

// ListTags returns every tag of the repository, following pagination
func (c *client) ListTags(ctx context.Context, owner, repo string) ([]model.Tag, error) {
	logger := ctxlog.From(ctx)

	var tags []model.Tag
	opts := &github.ListOptions{PerPage: tagsPerPage}

	for {
		page, resp, err := c.githubClient.Repositories.ListTags(ctx, owner, repo, opts)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list tags",
				goerr.V("owner", owner),
				goerr.V("repo", repo),
				goerr.V("page", opts.Page),
			)
		}

		for _, tag := range page {
			tags = append(tags, model.Tag{
				Name:      tag.GetName(),
				CommitSHA: tag.GetCommit().GetSHA(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	logger.Debug("Listed tags", "owner", owner, "repo", repo, "count", len(tags))
	return tags, nil
}

// Compare returns the files changed from base to head. GitHub only lists
// changed files on the first page of a comparison.
func (c *client) Compare(ctx context.Context, owner, repo, base, head string) ([]model.ChangedFile, error) {
	comparison, _, err := c.githubClient.Repositories.CompareCommits(ctx, owner, repo, base, head, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to compare commits",
			goerr.V("owner", owner),
			goerr.V("repo", repo),
			goerr.V("base", base),
			goerr.V("head", head),
		)
	}

	files := make([]model.ChangedFile, 0, len(comparison.Files))
	for _, f := range comparison.Files {
		files = append(files, model.ChangedFile{
			Filename: f.GetFilename(),
			Status:   f.GetStatus(),
			Patch:    f.GetPatch(),
		})
	}

	ctxlog.From(ctx).Debug("Compared commits",
		"owner", owner,
		"repo", repo,
		"base", base,
		"head", head,
		"files", len(files),
	)

	return files, nil
}
