package jobstore

import (
	"context"
	"errors"
	"sync"

	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/depdiff/pkg/domain/interfaces"
	"github.com/m-mizutani/depdiff/pkg/domain/model"
)

// ErrJobNotFound is returned by Get for an unknown job ID
var ErrJobNotFound = errors.New("job not found")

type memoryStore struct {
	mu   sync.RWMutex
	jobs map[string]model.ScanJob
}

// NewMemory creates a process-local JobStore. Jobs are lost on restart.
func NewMemory() interfaces.JobStore {
	return &memoryStore{
		jobs: make(map[string]model.ScanJob),
	}
}

// Put inserts or replaces a job. The store keeps its own copy.
func (s *memoryStore) Put(ctx context.Context, job *model.ScanJob) error {
	if job == nil || job.ID == "" {
		return goerr.New("job ID is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = *job
	return nil
}

func (s *memoryStore) Get(ctx context.Context, id string) (*model.ScanJob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[id]
	if !ok {
		return nil, goerr.Wrap(ErrJobNotFound, "failed to get job", goerr.V("id", id))
	}
	return &job, nil
}
