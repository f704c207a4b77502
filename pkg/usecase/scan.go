package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"

	"github.com/m-mizutani/depdiff/pkg/domain/interfaces"
	"github.com/m-mizutani/depdiff/pkg/domain/model"
	"github.com/m-mizutani/depdiff/pkg/parser"
)

const defaultConcurrency = 4

// DefaultExtension restricts diffs to Python sources when no extension is given
const DefaultExtension = ".py"

type scanUseCase struct {
	registry    interfaces.Registry
	host        interfaces.SourceHost
	summarizer  interfaces.Summarizer
	concurrency int
	decideOpts  []DecideOption
	now         func() time.Time
}

// ScanOption is a functional option for the scan use case
type ScanOption func(*scanUseCase)

// WithConcurrency limits how many packages are processed at once
func WithConcurrency(n int) ScanOption {
	return func(uc *scanUseCase) {
		if n > 0 {
			uc.concurrency = n
		}
	}
}

// WithSummarizer enables a review summary for every compared package
func WithSummarizer(s interfaces.Summarizer) ScanOption {
	return func(uc *scanUseCase) {
		uc.summarizer = s
	}
}

// WithDecideOptions passes tag matching options to Decide
func WithDecideOptions(opts ...DecideOption) ScanOption {
	return func(uc *scanUseCase) {
		uc.decideOpts = append(uc.decideOpts, opts...)
	}
}

// WithClock replaces time.Now for report timestamps
func WithClock(now func() time.Time) ScanOption {
	return func(uc *scanUseCase) {
		uc.now = now
	}
}

// NewScan creates a new ScanUseCase
func NewScan(registry interfaces.Registry, host interfaces.SourceHost, opts ...ScanOption) interfaces.ScanUseCase {
	uc := &scanUseCase{
		registry:    registry,
		host:        host,
		concurrency: defaultConcurrency,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Scan parses the lockfile and collects the upstream diff of every outdated
// package. Lockfile errors abort the scan; per-package failures are recorded
// on the package report and the scan continues.
func (uc *scanUseCase) Scan(ctx context.Context, input interfaces.ScanInput) (*model.ScanReport, error) {
	logger := ctxlog.From(ctx)

	format, err := parser.ParseFormat(input.Format)
	if err != nil {
		return nil, goerr.Wrap(err, "unsupported lockfile format", goerr.V("format", input.Format))
	}

	packages, err := parser.ParseLockfile(format, input.Lockfile)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse lockfile", goerr.V("format", input.Format))
	}

	ext := input.Extension
	if ext == "" {
		ext = DefaultExtension
	}

	logger.Info("Parsed lockfile",
		"format", format,
		"packages", len(packages),
		"extension", ext,
	)

	report := &model.ScanReport{
		Format:    string(format),
		Extension: ext,
		Packages:  make([]model.PackageReport, len(packages)),
		StartedAt: uc.now(),
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(uc.concurrency)
	for i, pkg := range packages {
		eg.Go(func() error {
			report.Packages[i] = uc.scanPackage(egCtx, pkg, ext)
			return nil
		})
	}
	_ = eg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, goerr.Wrap(err, "scan interrupted")
	}

	report.FinishedAt = uc.now()

	logger.Info("Scan completed",
		"packages", len(report.Packages),
		"compared", report.Compared(),
		"duration_ms", report.FinishedAt.Sub(report.StartedAt).Milliseconds(),
	)

	return report, nil
}

func (uc *scanUseCase) scanPackage(ctx context.Context, pkg model.Package, ext string) model.PackageReport {
	logger := ctxlog.From(ctx).With("package", pkg.Name)
	result := model.PackageReport{Package: pkg}

	info, err := uc.registry.Lookup(ctx, pkg.Name)
	if err != nil {
		return uc.fail(ctx, result, goerr.Wrap(err, "failed to look up package", goerr.V("package", pkg.Name)))
	}
	pkg.LatestVersion = info.LatestVersion
	pkg.Homepage = info.Homepage
	result.Package = pkg

	// Both checks are independent of tags, so no tag listing is needed
	if !pkg.HasLatestVersion() || pkg.LatestVersion == pkg.CurrentVersion {
		decision := Decide(pkg, nil, uc.decideOpts...)
		result.Decision = &decision
		logger.Info("Skipping package", "reason", decision.String())
		return result
	}

	owner, repo, ok := pkg.Repository()
	if !ok {
		return uc.fail(ctx, result, goerr.New("no GitHub repository for package",
			goerr.V("package", pkg.Name),
			goerr.V("homepage", pkg.Homepage),
		))
	}

	tags, err := uc.host.ListTags(ctx, owner, repo)
	if err != nil {
		return uc.fail(ctx, result, goerr.Wrap(err, "failed to fetch tags", goerr.V("package", pkg.Name)))
	}

	decision := Decide(pkg, tags, uc.decideOpts...)
	result.Decision = &decision
	if !decision.IsCompare() {
		logger.Info("Skipping package",
			"reason", decision.String(),
			"current", pkg.CurrentVersion,
			"latest", pkg.LatestVersion,
		)
		return result
	}

	files, err := uc.host.Compare(ctx, owner, repo, decision.From, decision.To)
	if err != nil {
		return uc.fail(ctx, result, goerr.Wrap(err, "failed to compare releases", goerr.V("package", pkg.Name)))
	}

	for _, file := range files {
		if !strings.HasSuffix(file.Filename, ext) {
			continue
		}

		diff, err := parser.ParsePatch(file.Filename, file.Patch)
		if err != nil {
			logger.Warn("Failed to parse patch", "file", file.Filename, "error", err)
			result.FileErrors = append(result.FileErrors, model.FileError{
				Filename: file.Filename,
				Error:    err.Error(),
			})
			continue
		}
		result.Files = append(result.Files, *diff)
	}

	logger.Info("Compared package",
		"current", pkg.CurrentVersion,
		"latest", pkg.LatestVersion,
		"changed_files", len(files),
		"matched_files", len(result.Files),
	)

	if uc.summarizer != nil && len(result.Files) > 0 {
		summary, err := uc.summarizer.Summarize(ctx, &result)
		if err != nil {
			logger.Warn("Failed to summarize package diff", "error", err)
			sentry.CaptureException(err)
		} else {
			result.Summary = summary
		}
	}

	return result
}

func (uc *scanUseCase) fail(ctx context.Context, result model.PackageReport, err error) model.PackageReport {
	ctxlog.From(ctx).Error("Failed to scan package",
		"package", result.Package.Name,
		"error", err,
	)
	sentry.CaptureException(err)
	result.Error = err.Error()
	return result
}
