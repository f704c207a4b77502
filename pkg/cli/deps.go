package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/depdiff/pkg/cli/config"
	"github.com/m-mizutani/depdiff/pkg/domain/interfaces"
	"github.com/m-mizutani/depdiff/pkg/usecase"
)

// collaborators bundles the configuration shared by scan and serve
type collaborators struct {
	github config.GitHub
	pypi   config.PyPI
	gemini config.Gemini
	scan   config.Scan
}

func (x *collaborators) flags() []cli.Flag {
	var flags []cli.Flag
	flags = append(flags, x.scan.Flags()...)
	flags = append(flags, x.github.Flags()...)
	flags = append(flags, x.pypi.Flags()...)
	flags = append(flags, x.gemini.Flags()...)
	return flags
}

func (x *collaborators) newScanUseCase(ctx context.Context) (interfaces.ScanUseCase, error) {
	host, err := x.github.NewClient()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create GitHub client")
	}

	summarizer, err := x.gemini.NewSummarizer(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create summarizer")
	}

	opts := x.scan.Options()
	if summarizer != nil {
		opts = append(opts, usecase.WithSummarizer(summarizer))
	}

	return usecase.NewScan(x.pypi.NewClient(), host, opts...), nil
}
