package interfaces

import (
	"context"

	"github.com/m-mizutani/depdiff/pkg/domain/model"
)

// ScanInput is a lockfile to audit
type ScanInput struct {
	Format    string // "lock" or "result"
	Lockfile  string
	Extension string // Only changed files with this suffix are parsed, e.g. ".py"
}

// ScanUseCase audits the upstream changes of every outdated package in a lockfile
type ScanUseCase interface {
	Scan(ctx context.Context, input ScanInput) (*model.ScanReport, error)
}

// Summarizer condenses the diff of one package into a short review note
type Summarizer interface {
	Summarize(ctx context.Context, report *model.PackageReport) (string, error)
}

// JobStore keeps asynchronous scan jobs
type JobStore interface {
	Put(ctx context.Context, job *model.ScanJob) error
	Get(ctx context.Context, id string) (*model.ScanJob, error)
}

// JobUseCase runs scans in the background and tracks them as jobs
type JobUseCase interface {
	Submit(ctx context.Context, input ScanInput) (*model.ScanJob, error)
	Get(ctx context.Context, id string) (*model.ScanJob, error)
}
