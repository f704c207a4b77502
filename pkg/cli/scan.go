package cli

import (
	"context"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/depdiff/pkg/domain/interfaces"
	"github.com/m-mizutani/depdiff/pkg/domain/model"
	"github.com/m-mizutani/depdiff/pkg/report"
	"github.com/m-mizutani/depdiff/pkg/usecase"
)

func cmdScan() *cli.Command {
	var (
		deps    collaborators
		input   string
		format  string
		ext     string
		output  string
		outFile string
		noColor bool
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "input",
			Aliases:     []string{"i"},
			Usage:       "Lockfile path, or - for stdin",
			Required:    true,
			Destination: &input,
		},
		&cli.StringFlag{
			Name:        "format",
			Aliases:     []string{"f"},
			Usage:       "Lockfile format (lock: poetry.lock, result: pinned requirements)",
			Required:    true,
			Destination: &format,
		},
		&cli.StringFlag{
			Name:        "ext",
			Usage:       "Only changed files with this suffix are reported",
			Value:       usecase.DefaultExtension,
			Destination: &ext,
			Sources:     cli.EnvVars("DEPDIFF_EXT"),
		},
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "Report format (text, json, patch)",
			Value:       string(report.FormatText),
			Destination: &output,
			Sources:     cli.EnvVars("DEPDIFF_OUTPUT"),
		},
		&cli.StringFlag{
			Name:        "out",
			Usage:       "Write the report to this file instead of stdout",
			Destination: &outFile,
		},
		&cli.BoolFlag{
			Name:        "no-color",
			Usage:       "Disable colors in text output",
			Destination: &noColor,
		},
	}
	flags = append(flags, deps.flags()...)

	return &cli.Command{
		Name:    "scan",
		Usage:   "Scan a lockfile and report upstream diffs of outdated packages",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			writer, err := report.New(output, report.WithColor(!noColor && !color.NoColor))
			if err != nil {
				return err
			}

			lockfile, err := readInput(input)
			if err != nil {
				return err
			}

			scanUC, err := deps.newScanUseCase(ctx)
			if err != nil {
				return err
			}

			logger.Info("Starting scan", "input", input, "format", format, "ext", ext)

			result, err := scanUC.Scan(ctx, interfaces.ScanInput{
				Format:    format,
				Lockfile:  lockfile,
				Extension: ext,
			})
			if err != nil {
				return goerr.Wrap(err, "failed to scan lockfile", goerr.V("input", input))
			}

			if err := writeReport(writer, result, outFile); err != nil {
				return err
			}

			logger.Info("Scan finished",
				"packages", len(result.Packages),
				"compared", result.Compared(),
			)
			return nil
		},
	}
}

// writeReport writes to stdout when path is empty, otherwise to the file at path
func writeReport(writer report.Writer, result *model.ScanReport, path string) error {
	if path == "" {
		if err := writer.Write(os.Stdout, result); err != nil {
			return goerr.Wrap(err, "failed to write report")
		}
		return nil
	}

	f, err := os.Create(path)
	if err != nil {
		return goerr.Wrap(err, "failed to create report file", goerr.V("path", path))
	}
	if err := writer.Write(f, result); err != nil {
		_ = f.Close()
		return goerr.Wrap(err, "failed to write report", goerr.V("path", path))
	}
	if err := f.Close(); err != nil {
		return goerr.Wrap(err, "failed to close report file", goerr.V("path", path))
	}
	return nil
}

func readInput(path string) (string, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return "", goerr.Wrap(err, "failed to open lockfile", goerr.V("path", path))
		}
		defer f.Close()
		r = f
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return "", goerr.Wrap(err, "failed to read lockfile", goerr.V("path", path))
	}
	return string(raw), nil
}
