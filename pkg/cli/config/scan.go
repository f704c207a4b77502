package config

import (
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/depdiff/pkg/usecase"
)

// Scan holds options shared by every scan regardless of the entry point
type Scan struct {
	Concurrency int
	TagPrefixes []string
}

// Flags returns CLI flags for scan configuration
func (c *Scan) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "concurrency",
			Usage:       "Number of packages processed in parallel",
			Value:       4,
			Destination: &c.Concurrency,
			Sources:     cli.EnvVars("DEPDIFF_CONCURRENCY"),
		},
		&cli.StringSliceFlag{
			Name:        "tag-prefix",
			Usage:       "Also match release tags named prefix+version, e.g. \"v\"",
			Destination: &c.TagPrefixes,
			Sources:     cli.EnvVars("DEPDIFF_TAG_PREFIX"),
		},
	}
}

// Options converts the configuration into scan use case options
func (c *Scan) Options() []usecase.ScanOption {
	opts := []usecase.ScanOption{
		usecase.WithConcurrency(c.Concurrency),
	}
	if len(c.TagPrefixes) > 0 {
		opts = append(opts, usecase.WithDecideOptions(usecase.WithTagPrefixes(c.TagPrefixes...)))
	}
	return opts
}
