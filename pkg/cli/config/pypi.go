package config

import (
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/depdiff/pkg/domain/interfaces"
	"github.com/m-mizutani/depdiff/pkg/infra/pypi"
)

// PyPI holds package registry configuration
type PyPI struct {
	BaseURL string
}

// Flags returns CLI flags for PyPI configuration
func (c *PyPI) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "pypi-url",
			Usage:       "PyPI base URL",
			Value:       pypi.DefaultBaseURL,
			Destination: &c.BaseURL,
			Sources:     cli.EnvVars("DEPDIFF_PYPI_URL"),
		},
	}
}

// NewClient creates a Registry from the configuration
func (c *PyPI) NewClient() interfaces.Registry {
	return pypi.NewClient(pypi.WithBaseURL(c.BaseURL))
}
