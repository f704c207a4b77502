package config

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem/llm/gemini"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/depdiff/pkg/domain/interfaces"
	"github.com/m-mizutani/depdiff/pkg/usecase"
)

// Gemini holds Gemini LLM configuration. Summaries are disabled unless a
// project ID is given.
type Gemini struct {
	ProjectID     string
	Location      string
	Model         string
	MaxPatchBytes int
}

// Flags returns CLI flags for Gemini configuration
func (c *Gemini) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "gemini-project-id",
			Usage:       "Google Cloud Project ID for Gemini; enables diff summaries",
			Destination: &c.ProjectID,
			Sources:     cli.EnvVars("DEPDIFF_GEMINI_PROJECT_ID"),
		},
		&cli.StringFlag{
			Name:        "gemini-location",
			Usage:       "Vertex AI location/region",
			Value:       "us-central1",
			Destination: &c.Location,
			Sources:     cli.EnvVars("DEPDIFF_GEMINI_LOCATION"),
		},
		&cli.StringFlag{
			Name:        "gemini-model",
			Usage:       "Gemini model to use",
			Value:       "gemini-2.5-flash",
			Destination: &c.Model,
			Sources:     cli.EnvVars("DEPDIFF_GEMINI_MODEL"),
		},
		&cli.IntFlag{
			Name:        "gemini-max-patch-bytes",
			Usage:       "Maximum diff size sent to Gemini per package",
			Value:       64 * 1024,
			Destination: &c.MaxPatchBytes,
			Sources:     cli.EnvVars("DEPDIFF_GEMINI_MAX_PATCH_BYTES"),
		},
	}
}

// Enabled reports whether summaries were requested
func (c *Gemini) Enabled() bool {
	return c.ProjectID != ""
}

// NewSummarizer creates a Summarizer, or returns nil when summaries are disabled
func (c *Gemini) NewSummarizer(ctx context.Context) (interfaces.Summarizer, error) {
	if !c.Enabled() {
		return nil, nil
	}

	client, err := gemini.New(ctx, c.ProjectID, c.Location, gemini.WithModel(c.Model))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Gemini client",
			goerr.V("project_id", c.ProjectID),
			goerr.V("location", c.Location),
		)
	}

	return usecase.NewSummarizer(client, usecase.WithMaxPatchBytes(c.MaxPatchBytes))
}
