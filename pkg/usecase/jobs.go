package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/depdiff/pkg/domain/interfaces"
	"github.com/m-mizutani/depdiff/pkg/domain/model"
	"github.com/m-mizutani/depdiff/pkg/parser"
	"github.com/m-mizutani/depdiff/pkg/utils/async"
)

type jobUseCase struct {
	scan  interfaces.ScanUseCase
	store interfaces.JobStore
}

// NewJobs creates a JobUseCase
func NewJobs(scan interfaces.ScanUseCase, store interfaces.JobStore) interfaces.JobUseCase {
	return &jobUseCase{
		scan:  scan,
		store: store,
	}
}

// Submit validates the lockfile, stores a pending job and starts the scan in
// the background. Lockfile errors are returned immediately instead of
// producing a failed job.
func (uc *jobUseCase) Submit(ctx context.Context, input interfaces.ScanInput) (*model.ScanJob, error) {
	format, err := parser.ParseFormat(input.Format)
	if err != nil {
		return nil, goerr.Wrap(err, "unsupported lockfile format", goerr.V("format", input.Format))
	}
	if _, err := parser.ParseLockfile(format, input.Lockfile); err != nil {
		return nil, goerr.Wrap(err, "failed to parse lockfile", goerr.V("format", input.Format))
	}

	now := time.Now()
	job := &model.ScanJob{
		ID:        uuid.NewString(),
		Status:    model.JobPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.store.Put(ctx, job); err != nil {
		return nil, goerr.Wrap(err, "failed to save job", goerr.V("job_id", job.ID))
	}

	ctx = ctxlog.With(ctx, ctxlog.From(ctx).With("job_id", job.ID))
	ctxlog.From(ctx).Info("Scan job submitted", "format", input.Format)

	pending := *job
	async.Dispatch(ctx, func(ctx context.Context) error {
		return uc.run(ctx, pending, input)
	})

	return job, nil
}

func (uc *jobUseCase) run(ctx context.Context, job model.ScanJob, input interfaces.ScanInput) error {
	logger := ctxlog.From(ctx)

	job.Status = model.JobRunning
	job.UpdatedAt = time.Now()
	if err := uc.store.Put(ctx, &job); err != nil {
		return goerr.Wrap(err, "failed to update job", goerr.V("job_id", job.ID))
	}

	report, scanErr := uc.scan.Scan(ctx, input)

	job.UpdatedAt = time.Now()
	if scanErr != nil {
		job.Status = model.JobFailed
		job.Error = scanErr.Error()
	} else {
		job.Status = model.JobSucceeded
		job.Report = report
	}

	if err := uc.store.Put(ctx, &job); err != nil {
		return goerr.Wrap(err, "failed to update job", goerr.V("job_id", job.ID))
	}
	if scanErr != nil {
		return goerr.Wrap(scanErr, "scan job failed", goerr.V("job_id", job.ID))
	}

	logger.Info("Scan job completed", "compared", report.Compared())
	return nil
}

func (uc *jobUseCase) Get(ctx context.Context, id string) (*model.ScanJob, error) {
	job, err := uc.store.Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get job", goerr.V("job_id", id))
	}
	return job, nil
}
