package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/depdiff/pkg/domain/interfaces"
	"github.com/m-mizutani/depdiff/pkg/infra/github"
)

// GitHub holds GitHub API configuration. A GitHub App takes precedence over a
// token; without either the API is used anonymously.
type GitHub struct {
	Token          string `masq:"secret"`
	AppID          int64
	InstallationID int64
	PrivateKey     string `masq:"secret"`
	PrivateKeyFile string
	BaseURL        string
}

// Flags returns CLI flags for GitHub configuration
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub personal access token",
			Destination: &c.Token,
			Sources:     cli.EnvVars("DEPDIFF_GITHUB_TOKEN", "GITHUB_TOKEN"),
		},
		&cli.Int64Flag{
			Name:        "github-app-id",
			Usage:       "GitHub App ID",
			Destination: &c.AppID,
			Sources:     cli.EnvVars("DEPDIFF_GITHUB_APP_ID"),
		},
		&cli.Int64Flag{
			Name:        "github-app-installation-id",
			Usage:       "GitHub App installation ID",
			Destination: &c.InstallationID,
			Sources:     cli.EnvVars("DEPDIFF_GITHUB_APP_INSTALLATION_ID"),
		},
		&cli.StringFlag{
			Name:        "github-app-private-key",
			Usage:       "GitHub App private key (PEM)",
			Destination: &c.PrivateKey,
			Sources:     cli.EnvVars("DEPDIFF_GITHUB_APP_PRIVATE_KEY"),
		},
		&cli.StringFlag{
			Name:        "github-app-private-key-file",
			Usage:       "Path to the GitHub App private key (PEM)",
			Destination: &c.PrivateKeyFile,
			Sources:     cli.EnvVars("DEPDIFF_GITHUB_APP_PRIVATE_KEY_FILE"),
		},
		&cli.StringFlag{
			Name:        "github-base-url",
			Usage:       "GitHub API base URL (for GitHub Enterprise)",
			Destination: &c.BaseURL,
			Sources:     cli.EnvVars("DEPDIFF_GITHUB_BASE_URL"),
		},
	}
}

// NewClient creates a SourceHost from the configuration
func (c *GitHub) NewClient() (interfaces.SourceHost, error) {
	var opts []github.Option

	if c.AppID != 0 {
		key := []byte(c.PrivateKey)
		if len(key) == 0 && c.PrivateKeyFile != "" {
			raw, err := os.ReadFile(c.PrivateKeyFile)
			if err != nil {
				return nil, goerr.Wrap(err, "failed to read GitHub App private key", goerr.V("path", c.PrivateKeyFile))
			}
			key = raw
		}
		if c.InstallationID == 0 || len(key) == 0 {
			return nil, goerr.New("GitHub App requires installation ID and private key", goerr.V("app_id", c.AppID))
		}
		opts = append(opts, github.WithApp(c.AppID, c.InstallationID, key))
	} else if c.Token != "" {
		opts = append(opts, github.WithToken(c.Token))
	}

	if c.BaseURL != "" {
		opts = append(opts, github.WithBaseURL(c.BaseURL))
	}

	return github.NewClient(opts...)
}
